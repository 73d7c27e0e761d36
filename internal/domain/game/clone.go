package game

// Clone returns a deep copy of the state. Every reducer works on a clone so
// a rejected action never leaves a partially mutated snapshot behind.
func (s *FarmState) Clone() *FarmState {
	if s == nil {
		return nil
	}

	out := &FarmState{
		Coins:     s.Coins,
		Balance:   s.Balance,
		Inventory: s.Inventory.Clone(),
		Stock:     s.Stock.Clone(),
		Bumpkin:   s.Bumpkin.clone(),
		VIP:       s.VIP.clone(),
		Faction:   s.Faction.clone(),
	}

	if s.Buildings != nil {
		out.Buildings = make(map[string][]*Building, len(s.Buildings))
		for name, instances := range s.Buildings {
			copies := make([]*Building, len(instances))
			for i, b := range instances {
				copies[i] = b.clone()
			}
			out.Buildings[name] = copies
		}
	}

	if s.Collectibles != nil {
		out.Collectibles = make(map[string][]*PlacedItem, len(s.Collectibles))
		for name, items := range s.Collectibles {
			copies := make([]*PlacedItem, len(items))
			for i, item := range items {
				if item != nil {
					c := *item
					copies[i] = &c
				}
			}
			out.Collectibles[name] = copies
		}
	}

	return out
}

func (b *Bumpkin) clone() *Bumpkin {
	if b == nil {
		return nil
	}
	out := *b
	out.Skills = cloneMap(b.Skills)
	out.Activity = cloneMap(b.Activity)
	return &out
}

func (b *Building) clone() *Building {
	if b == nil {
		return nil
	}
	out := *b
	if b.Crafting != nil {
		out.Crafting = make([]BuildingProduct, len(b.Crafting))
		for i, p := range b.Crafting {
			out.Crafting[i] = p.Clone()
		}
	}
	if b.Oil != nil {
		oil := *b.Oil
		out.Oil = &oil
	}
	out.Cancelled = cloneMap(b.Cancelled)
	return &out
}

// Clone returns a copy of the queue entry with its own boost map
func (p BuildingProduct) Clone() BuildingProduct {
	p.Boost = cloneMap(p.Boost)
	return p
}

func (v *VIP) clone() *VIP {
	if v == nil {
		return nil
	}
	out := *v
	out.Bundles = append([]VIPBundle(nil), v.Bundles...)
	return &out
}

func (f *Faction) clone() *Faction {
	if f == nil {
		return nil
	}
	out := *f
	if f.Kitchen != nil {
		k := *f.Kitchen
		k.Requests = make([]ResourceRequest, len(f.Kitchen.Requests))
		for i, r := range f.Kitchen.Requests {
			r.DailyFulfilled = cloneMap(r.DailyFulfilled)
			k.Requests[i] = r
		}
		out.Kitchen = &k
	}
	if f.Pet != nil {
		p := *f.Pet
		p.Requests = make([]PetRequest, len(f.Pet.Requests))
		for i, r := range f.Pet.Requests {
			r.DailyFulfilled = cloneMap(r.DailyFulfilled)
			p.Requests[i] = r
		}
		out.Pet = &p
	}
	if f.History != nil {
		out.History = make(map[string]FactionHistory, len(f.History))
		for week, h := range f.History {
			if h.CollectivePet != nil {
				pet := *h.CollectivePet
				h.CollectivePet = &pet
			}
			out.History[week] = h
		}
	}
	return &out
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
