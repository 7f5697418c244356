package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/domain"
	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/ports/driven"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API and the metrics store
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "store": "ok"}
	code := http.StatusOK
	if err := s.store.Ping(r.Context()); err != nil {
		status["status"] = "degraded"
		status["store"] = err.Error()
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

// handleVersion godoc
// @Summary      Get API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// handleGetAgencyMetrics godoc
// @Summary      Get one agency's aggregated metrics
// @Description  Returns the summary persisted by the latest batch run. 404
// @Description  means the agency has not been computed yet (or its last run failed).
// @Tags         Metrics
// @Produce      json
// @Param        slug  path      string  true  "Agency slug"
// @Success      200   {object}  domain.AgencySummary
// @Failure      404   {object}  ErrorResponse
// @Router       /api/v1/agencies/{slug}/metrics [get]
func (s *Server) handleGetAgencyMetrics(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	summary, err := s.store.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no metrics for agency")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to read metrics")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleGetMetrics godoc
// @Summary      Bulk-get agency metrics
// @Description  Returns summaries for the requested slugs; agencies without
// @Description  persisted metrics map to null.
// @Tags         Metrics
// @Produce      json
// @Param        slugs  query     string  true  "Comma-separated agency slugs"
// @Success      200    {object}  map[string]domain.AgencySummary
// @Router       /api/v1/metrics [get]
func (s *Server) handleGetMetrics(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("slugs")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "slugs query parameter is required")
		return
	}

	var slugs []string
	for _, slug := range strings.Split(raw, ",") {
		if slug = strings.TrimSpace(slug); slug != "" {
			slugs = append(slugs, slug)
		}
	}

	summaries, err := s.store.MGet(r.Context(), slugs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read metrics")
		return
	}

	result := make(map[string]*domain.AgencySummary, len(slugs))
	for i, slug := range slugs {
		result[slug] = summaries[i]
	}
	writeJSON(w, http.StatusOK, result)
}

// handleListAgencies godoc
// @Summary      List agencies
// @Description  Passes through the eCFR agency directory
// @Tags         Reference
// @Produce      json
// @Success      200  {array}  domain.Agency
// @Router       /api/v1/agencies [get]
func (s *Server) handleListAgencies(w http.ResponseWriter, r *http.Request) {
	agencies, err := s.ecfr.FetchAgencies(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch agencies")
		return
	}
	writeJSON(w, http.StatusOK, agencies)
}

// handleListTitles godoc
// @Summary      List title metadata
// @Tags         Reference
// @Produce      json
// @Success      200  {array}  domain.Title
// @Router       /api/v1/titles [get]
func (s *Server) handleListTitles(w http.ResponseWriter, r *http.Request) {
	titles, err := s.ecfr.FetchTitles(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch titles")
		return
	}
	writeJSON(w, http.StatusOK, titles)
}

// handleGetTitleVersions godoc
// @Summary      Get a title's content versions
// @Tags         Reference
// @Produce      json
// @Param        number  path      int     true   "Title number"
// @Param        on      query     string  false  "Issue date (YYYY-MM-DD)"
// @Param        gte     query     string  false  "Issue date lower bound"
// @Param        lte     query     string  false  "Issue date upper bound"
// @Success      200     {object}  domain.TitleVersions
// @Router       /api/v1/titles/{number}/versions [get]
func (s *Server) handleGetTitleVersions(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(r.PathValue("number"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid title number")
		return
	}

	query := driven.VersionQuery{
		On:  r.URL.Query().Get("on"),
		GTE: r.URL.Query().Get("gte"),
		LTE: r.URL.Query().Get("lte"),
	}

	versions, err := s.ecfr.FetchVersions(r.Context(), number, query)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch versions")
		return
	}
	writeJSON(w, http.StatusOK, versions)
}

// handleListCorrections godoc
// @Summary      List eCFR corrections
// @Tags         Reference
// @Produce      json
// @Param        date   query     string  false  "Filter date (YYYY-MM-DD)"
// @Param        title  query     int     false  "Title number"
// @Success      200    {array}   domain.Correction
// @Router       /api/v1/corrections [get]
func (s *Server) handleListCorrections(w http.ResponseWriter, r *http.Request) {
	var title int
	if raw := r.URL.Query().Get("title"); raw != "" {
		var err error
		if title, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid title number")
			return
		}
	}

	corrections, err := s.ecfr.FetchCorrections(r.Context(), r.URL.Query().Get("date"), title)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch corrections")
		return
	}
	writeJSON(w, http.StatusOK, corrections)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
