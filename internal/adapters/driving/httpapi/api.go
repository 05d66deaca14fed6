package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

// ingestRequest is the body of POST /api/assets.
type ingestRequest struct {
	Text         string `json:"text"`
	StressBefore *int   `json:"stress_before,omitempty"`
	StressAfter  *int   `json:"stress_after,omitempty"`
}

// searchResponse is the body of GET /api/assets.
type searchResponse struct {
	Query     string         `json:"query"`
	Total     int            `json:"total"`
	SessionID int64          `json:"session_id"`
	Assets    []domain.Asset `json:"assets"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	stress := s.opts.Stress.Reading()
	if req.StressBefore != nil {
		stress.Before = *req.StressBefore
	}
	if req.StressAfter != nil {
		stress.After = *req.StressAfter
	}

	asset, err := s.ports.Library.Ingest(r.Context(), req.Text, stress)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, asset)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	stress, err := s.stressFromQuery(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	limit := s.opts.Display.ResultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	result, err := s.ports.Library.Search(r.Context(), r.URL.Query().Get("q"), stress)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, searchResponse{
		Query:     result.Query,
		Total:     result.Count(),
		SessionID: result.SessionID,
		Assets:    truncate(result.Assets, limit),
	})
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}

	asset, err := s.ports.Library.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

func (s *Server) handleGetExpansion(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}

	exp, err := s.ports.Library.Expansion(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, exp)
}

func (s *Server) handleTerms(w http.ResponseWriter, r *http.Request) {
	terms, err := s.ports.Library.Terms(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, terms)
}

// assetID parses the {id} URL parameter, answering 400 when it is not a number.
func assetID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid asset id")
		return 0, false
	}
	return id, true
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	session, err := s.ports.Library.Seed(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	dash, err := s.ports.Metrics.Dashboard(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dash)
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="ripple-metrics.json"`)
	if err := s.ports.Export.WriteSnapshot(r.Context(), w); err != nil {
		respondDomainError(w, err)
	}
}

func (s *Server) handleExportHTML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", s.ports.Export.ReportContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="ripple-metrics.html"`)
	if err := s.ports.Export.WriteReport(r.Context(), w); err != nil {
		respondDomainError(w, err)
	}
}

// stressFromQuery reads optional stress_before / stress_after parameters.
func (s *Server) stressFromQuery(r *http.Request) (domain.StressReading, error) {
	stress := s.opts.Stress.Reading()
	for key, dst := range map[string]*int{"stress_before": &stress.Before, "stress_after": &stress.After} {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return stress, domain.ErrInvalidStress
		}
		*dst = n
	}
	return stress, nil
}

// truncate caps the displayed results; zero means no cap.
func truncate(assets []domain.Asset, limit int) []domain.Asset {
	if limit > 0 && len(assets) > limit {
		return assets[:limit]
	}
	return assets
}
