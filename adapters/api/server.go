package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gocirc/domain/circular"
	"gocirc/domain/core"
	"gocirc/internal"
	"gocirc/ports"
)

// maxRequestBody caps uploaded observation tables at 16 MiB.
const maxRequestBody = 16 << 20

// Server is the JSON HTTP surface of the analysis engine.
type Server struct {
	router   *chi.Mux
	engine   ports.Engine
	reports  ports.ReportRepository
	defaults circular.AnalysisParams
	log      *internal.Logger
}

// NewServer wires the engine and report repository behind a chi router.
func NewServer(engine ports.Engine, reports ports.ReportRepository, defaults circular.AnalysisParams, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:   chi.NewRouter(),
		engine:   engine,
		reports:  reports,
		defaults: defaults.Normalize(),
		log:      logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Post("/v1/analyses", s.handleAnalyze)
	s.router.Get("/v1/analyses", s.handleListReports)
	s.router.Get("/v1/analyses/{runID}", s.handleGetReport)
	s.router.Get("/v1/analyses/{runID}/summary", s.handleSummary)
}

// Handler exposes the router for tests and custom servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP on the given port.
func (s *Server) Start(port string) error {
	addr := ":" + port
	s.log.Info("analysis API listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze runs a full analysis on an uploaded observation table and
// returns the report. Completed reports are persisted when a repository is
// configured; a storage failure is logged but does not fail the request.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if len(req.Observations) == 0 && len(req.DeclaredGroups) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("request carries no observations"))
		return
	}

	table, err := req.ToTable()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	params := req.Params.ApplyTo(s.defaults)

	report, err := s.engine.Analyze(r.Context(), table, params)
	if err != nil {
		if core.IsValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		s.log.Error("analysis failed: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if s.reports != nil {
		if err := s.reports.Save(r.Context(), report); err != nil {
			s.log.Warn("persist report %s: %v", report.RunID, err)
		}
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.fetchReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleSummary renders the stored report as a human-readable HTML page.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	report, ok := s.fetchReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(RenderSummaryHTML(report))
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.reports == nil {
		writeError(w, http.StatusNotImplemented, fmt.Errorf("report storage is not configured"))
		return
	}
	reports, err := s.reports.ListRecent(r.Context(), 20)
	if err != nil {
		s.log.Error("list reports: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reports": reports})
}

func (s *Server) fetchReport(w http.ResponseWriter, r *http.Request) (*circular.AnalysisReport, bool) {
	if s.reports == nil {
		writeError(w, http.StatusNotImplemented, fmt.Errorf("report storage is not configured"))
		return nil, false
	}
	runID := core.RunID(chi.URLParam(r, "runID"))
	report, err := s.reports.GetByRunID(r.Context(), runID)
	if err != nil {
		if core.IsNotFoundError(err) {
			writeError(w, http.StatusNotFound, err)
			return nil, false
		}
		s.log.Error("fetch report %s: %v", runID, err)
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return report, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
