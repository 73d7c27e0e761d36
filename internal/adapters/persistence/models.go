package persistence

import (
	"time"
)

// FarmModel represents the farms table. The game state is stored as one JSON document.
type FarmModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement:false"`
	State     string    `gorm:"column:state;type:jsonb;not null"` // JSON stored as string
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (FarmModel) TableName() string {
	return "farms"
}

// TxHashModel represents the tx_hashes table
type TxHashModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Event     string    `gorm:"column:event;not null;index"`
	Hash      string    `gorm:"column:hash;not null;uniqueIndex"`
	SessionID string    `gorm:"column:session_id;not null;index"`
	Deadline  int64     `gorm:"column:deadline;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (TxHashModel) TableName() string {
	return "tx_hashes"
}
