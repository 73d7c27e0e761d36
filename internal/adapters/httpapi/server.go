// Package httpapi exposes the farm dispatch layer over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/klauspost/compress/gzhttp"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/adapters/auth"
	"github.com/andrescamacho/homestead-go/internal/application/farm"
	farmCmd "github.com/andrescamacho/homestead-go/internal/application/farm/commands"
	farmQuery "github.com/andrescamacho/homestead-go/internal/application/farm/queries"
	factionQuery "github.com/andrescamacho/homestead-go/internal/application/faction/queries"
	"github.com/andrescamacho/homestead-go/internal/application/logging"
	marketCmd "github.com/andrescamacho/homestead-go/internal/application/marketplace/commands"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/marketplace"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

const maxBodyBytes = 1 << 20

// Server routes HTTP requests to mediator commands and queries
type Server struct {
	mediator  mediator.Mediator
	validator *ActionValidator
	hub       *Hub
	logger    logging.GameLogger
	tokens    *auth.Config
}

// NewServer creates a server. hub may be nil to disable streaming.
func NewServer(med mediator.Mediator, hub *Hub, logger logging.GameLogger) (*Server, error) {
	validator, err := NewActionValidator()
	if err != nil {
		return nil, err
	}
	return &Server{mediator: med, validator: validator, hub: hub, logger: logger}, nil
}

// RequireTokens makes every farm and marketplace route demand an access
// token. Farm routes only accept tokens issued for that farm.
func (s *Server) RequireTokens(cfg auth.Config) {
	s.tokens = &cfg
}

// Handler returns the routed handler. metrics is mounted on /metrics when set.
func (s *Server) Handler(metrics http.Handler) http.Handler {
	mux := http.NewServeMux()
	farmRoute := func(h http.HandlerFunc) http.Handler { return s.authorize(gzhttp.GzipHandler(h), true) }

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /farms/{id}", farmRoute(s.getFarm))
	mux.Handle("POST /farms/{id}/actions", farmRoute(s.dispatchAction))
	mux.Handle("GET /farms/{id}/buildings/{name}/{buildingId}/queue", farmRoute(s.getCraftingQueue))
	mux.Handle("GET /farms/{id}/seeds/{seed}/price", farmRoute(s.getSeedPrice))
	mux.Handle("GET /farms/{id}/faction/kitchen", farmRoute(s.getKitchen))
	mux.Handle("GET /farms/{id}/faction/pet", farmRoute(s.getPet))
	mux.Handle("POST /farms/{id}/faction/refresh", farmRoute(s.refreshChores))
	mux.Handle("POST /marketplace/offers/accept", s.authorize(gzhttp.GzipHandler(http.HandlerFunc(s.acceptOffer)), false))
	if s.hub != nil {
		mux.Handle("GET /farms/{id}/stream", s.authorize(http.HandlerFunc(s.stream), true))
	}
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	return mux
}

func (s *Server) getFarm(w http.ResponseWriter, r *http.Request) {
	farmID, ok := s.farmID(w, r)
	if !ok {
		return
	}
	s.send(w, r, &farmQuery.GetFarmQuery{FarmID: farmID}, func(resp mediator.Response) interface{} {
		return resp.(*farmQuery.GetFarmResponse).State
	})
}

func (s *Server) dispatchAction(w http.ResponseWriter, r *http.Request) {
	farmID, ok := s.farmID(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	eventType, err := s.validator.Validate(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid action: %v", err))
		return
	}

	action, err := farm.DecodeAction(eventType, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.send(w, r, &farmCmd.DispatchActionCommand{FarmID: farmID, Action: action}, func(resp mediator.Response) interface{} {
		return resp.(*farmCmd.DispatchActionResponse).State
	})
}

func (s *Server) getCraftingQueue(w http.ResponseWriter, r *http.Request) {
	farmID, ok := s.farmID(w, r)
	if !ok {
		return
	}
	query := &farmQuery.GetCraftingQueueQuery{
		FarmID:       farmID,
		BuildingName: r.PathValue("name"),
		BuildingID:   r.PathValue("buildingId"),
	}
	s.send(w, r, query, func(resp mediator.Response) interface{} {
		result := resp.(*farmQuery.GetCraftingQueueResponse)
		return map[string]interface{}{
			"queue":   result.Queue,
			"cooking": result.Cooking,
			"oil":     result.Oil,
			"at":      result.At.UnixMilli(),
		}
	})
}

func (s *Server) getSeedPrice(w http.ResponseWriter, r *http.Request) {
	farmID, ok := s.farmID(w, r)
	if !ok {
		return
	}
	amount := decimal.NewFromInt(1)
	if raw := r.URL.Query().Get("amount"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid amount %q", raw))
			return
		}
		amount = parsed
	}
	query := &farmQuery.GetSeedPriceQuery{FarmID: farmID, Seed: r.PathValue("seed"), Amount: amount}
	s.send(w, r, query, func(resp mediator.Response) interface{} {
		result := resp.(*farmQuery.GetSeedPriceResponse)
		return map[string]interface{}{
			"seed":      result.Seed,
			"basePrice": result.BasePrice,
			"unitPrice": result.UnitPrice,
			"total":     result.Total,
			"stock":     result.Stock,
		}
	})
}

func (s *Server) getKitchen(w http.ResponseWriter, r *http.Request) {
	farmID, ok := s.farmID(w, r)
	if !ok {
		return
	}
	s.send(w, r, &factionQuery.GetKitchenRequestsQuery{FarmID: farmID}, func(resp mediator.Response) interface{} {
		result := resp.(*factionQuery.GetKitchenRequestsResponse)
		return map[string]interface{}{
			"chef":         result.View.Chef,
			"requests":     result.View.Requests,
			"resetsAt":     result.View.Timer.ResetsAt.UnixMilli(),
			"needsRefresh": result.NeedsRefresh,
		}
	})
}

func (s *Server) getPet(w http.ResponseWriter, r *http.Request) {
	farmID, ok := s.farmID(w, r)
	if !ok {
		return
	}
	s.send(w, r, &factionQuery.GetPetRequestsQuery{FarmID: farmID}, func(resp mediator.Response) interface{} {
		result := resp.(*factionQuery.GetPetRequestsResponse)
		return map[string]interface{}{
			"state":        result.View.State,
			"requests":     result.View.Requests,
			"resetsAt":     result.View.Timer.ResetsAt.UnixMilli(),
			"needsRefresh": result.NeedsRefresh,
		}
	})
}

func (s *Server) refreshChores(w http.ResponseWriter, r *http.Request) {
	farmID, ok := s.farmID(w, r)
	if !ok {
		return
	}
	s.send(w, r, &farmCmd.RefreshKingdomChoresCommand{FarmID: farmID}, func(resp mediator.Response) interface{} {
		result := resp.(*farmCmd.RefreshKingdomChoresResponse)
		return map[string]interface{}{"week": result.Week, "state": result.State}
	})
}

func (s *Server) acceptOffer(w http.ResponseWriter, r *http.Request) {
	var params marketplace.AcceptOfferParams
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}
	s.send(w, r, &marketCmd.AcceptOfferCommand{Params: params}, func(resp mediator.Response) interface{} {
		return map[string]string{"sessionId": resp.(*marketCmd.AcceptOfferResponse).NextSessionID}
	})
}

func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	farmID, ok := s.farmID(w, r)
	if !ok {
		return
	}
	resp, err := s.mediator.Send(s.context(r), &farmQuery.GetFarmQuery{FarmID: farmID})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.hub.serve(w, r, farmID, resp.(*farmQuery.GetFarmResponse).State)
}

func (s *Server) send(w http.ResponseWriter, r *http.Request, request mediator.Request, render func(mediator.Response) interface{}) {
	resp, err := s.mediator.Send(s.context(r), request)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, render(resp))
}

func (s *Server) context(r *http.Request) context.Context {
	if s.logger == nil {
		return r.Context()
	}
	return logging.WithLogger(r.Context(), s.logger)
}

func (s *Server) farmID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid farm id %q", r.PathValue("id")))
		return 0, false
	}
	return id, true
}

// authorize checks the access token when tokens are required
func (s *Server) authorize(next http.Handler, farmScoped bool) http.Handler {
	if s.tokens == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := auth.Verify(*s.tokens, auth.FromRequest(r))
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="homestead"`)
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		if farmScoped && r.PathValue("id") != strconv.Itoa(claims.FarmID) {
			writeError(w, http.StatusForbidden, fmt.Sprintf("token does not grant access to farm %s", r.PathValue("id")))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusFor maps rejected input to 400 and missing farms to 404
func statusFor(err error) int {
	var eventErr *shared.GameEventError
	var validationErr *shared.ValidationError
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.Is(err, farm.ErrFarmNotFound):
		return http.StatusNotFound
	case errors.As(err, &eventErr), errors.As(err, &validationErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSONResponse(w, status, map[string]string{"error": message})
}

func writeJSONResponse(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
