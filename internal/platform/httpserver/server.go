package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	ledgerservice "peerraise/contexts/crowdfunding/ledger-service"
	ledgerdomainerrors "peerraise/contexts/crowdfunding/ledger-service/domain/errors"
	ledgerhttp "peerraise/contexts/crowdfunding/ledger-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "peerraise/internal/platform/httpserver/docs"
)

const maxRequestBody = 1 << 20

type Server struct {
	mux         *http.ServeMux
	handler     http.Handler
	httpServer  *http.Server
	logger      *slog.Logger
	addr        string
	serviceName string
	ledger      ledgerservice.Module
	identity    *IdentityResolver
}

type Options struct {
	Addr        string
	ServiceName string
	Identity    *IdentityResolver
	Logger      *slog.Logger
}

func New(ledger ledgerservice.Module, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	addr := opts.Addr
	if addr == "" {
		addr = ":8080"
	}
	identity := opts.Identity
	if identity == nil {
		identity = NewHeaderIdentityResolver(false)
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		serviceName: opts.ServiceName,
		ledger:      ledger,
		identity:    identity,
	}
	s.registerRoutes()
	s.handler = s.withRequestID(s.withTracing(s.withAccessLog(s.mux)))
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the fully wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("POST /api/ledger/v1/users", s.handleRegisterUser)
	s.mux.HandleFunc("POST /api/ledger/v1/campaigns", s.handleCreateCampaign)
	s.mux.HandleFunc("POST /api/ledger/v1/campaigns/{campaign_id}/contributions", s.handleContribute)
	s.mux.HandleFunc("POST /api/ledger/v1/campaigns/{campaign_id}/close", s.handleCloseCampaign)
	s.mux.HandleFunc("GET /api/ledger/v1/campaigns/search", s.handleSearchCampaigns)
	s.mux.HandleFunc("GET /api/ledger/v1/campaigns/{campaign_id}/statistics", s.handleCampaignStatistics)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": s.serviceName,
	})
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	callerID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.RegisterUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.ledger.Handler.RegisterUserHandler(r.Context(), callerID, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	callerID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.CreateCampaignRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.ledger.Handler.CreateCampaignHandler(r.Context(), callerID, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	callerID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	campaignID, ok := parseCampaignID(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.ContributeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.ledger.Handler.ContributeHandler(r.Context(), callerID, campaignID, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseCampaign(w http.ResponseWriter, r *http.Request) {
	callerID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	campaignID, ok := parseCampaignID(w, r)
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.CloseCampaignHandler(r.Context(), callerID, campaignID)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearchCampaigns(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.SearchCampaignsHandler(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCampaignStatistics(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := parseCampaignID(w, r)
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.GetStatisticsHandler(r.Context(), campaignID)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) requireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	callerID, err := s.identity.Resolve(r)
	if err != nil {
		s.logger.Info("caller identity rejected",
			"event", "http_caller_rejected",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"request_id", RequestIDFromContext(r.Context()),
			"error", err.Error(),
		)
		writeLedgerError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
		return "", false
	}
	return callerID, true
}

// parseCampaignID accepts any natural number that fits in 64 bits. Unknown ids
// are left for the ledger to answer with its sentinel result.
func parseCampaignID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := r.PathValue("campaign_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_campaign_id", "campaign_id must be a natural number")
		return 0, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func writeLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgerdomainerrors.ErrCallerRequired):
		writeLedgerError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	default:
		writeLedgerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ledgerhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
