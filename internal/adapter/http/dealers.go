package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/couchcryptid/dealer-locator-service/internal/domain"
	"github.com/couchcryptid/dealer-locator-service/internal/leads"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

const (
	defaultRadiusMiles = 25
	minRadiusMiles     = 1
	defaultLimit       = 10
	maxLeadBodyBytes   = 64 << 10
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (s *Server) handleNearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	radius, err := parseFloatParam(q.Get("radius"), defaultRadiusMiles)
	if err != nil {
		s.writeError(w, r, &domain.ValidationError{Field: "radius", Message: "radius must be a number"})
		return
	}
	if radius < minRadiusMiles || radius > s.limits.MaxRadius {
		s.writeError(w, r, &domain.ValidationError{Field: "radius", Message: fmt.Sprintf("radius must be between %d and %g miles", minRadiusMiles, s.limits.MaxRadius)})
		return
	}

	limit, err := parseIntParam(q.Get("limit"), defaultLimit)
	if err != nil {
		s.writeError(w, r, &domain.ValidationError{Field: "limit", Message: "limit must be an integer"})
		return
	}
	if limit > s.limits.MaxLimit {
		s.writeError(w, r, &domain.ValidationError{Field: "limit", Message: fmt.Sprintf("limit must be at most %d", s.limits.MaxLimit)})
		return
	}

	result, err := s.dealers.FindNearby(r.Context(), q.Get("zip"), radius, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetDealer(w http.ResponseWriter, r *http.Request) {
	dealer, err := s.dealers.GetDealer(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, dealer)
}

func (s *Server) handleSubmitLead(w http.ResponseWriter, r *http.Request) {
	var req leads.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLeadBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, &domain.ValidationError{Field: "body", Message: "request body must be a valid lead JSON object"})
		return
	}

	receipt, err := s.leads.Submit(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusCreated, receipt)
}

// writeError maps domain errors to status codes. Unexpected errors are logged
// and reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		vErr *domain.ValidationError
		rErr *domain.ResolutionError
	)
	switch {
	case errors.As(err, &vErr):
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{Kind: "validation", Field: vErr.Field, Message: vErr.Message}})
	case errors.As(err, &rErr):
		s.logger.Info("postal code not resolved", "postal_code", rErr.PostalCode, "error", rErr.Err)
		sharedobs.WriteJSON(w, http.StatusUnprocessableEntity, errorBody{Error: errorDetail{Kind: "resolution", Message: "could not locate that postal code"}})
	case errors.Is(err, domain.ErrDealerNotFound):
		sharedobs.WriteJSON(w, http.StatusNotFound, errorBody{Error: errorDetail{Kind: "not_found", Message: err.Error()}})
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, errorBody{Error: errorDetail{Kind: "internal", Message: "internal server error"}})
	}
}

func parseFloatParam(s string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseIntParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
