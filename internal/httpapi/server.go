package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/souqna/souqna/pkg/logger"
	"github.com/souqna/souqna/pkg/storefront"
	"github.com/souqna/souqna/pkg/telemetry"
	"github.com/souqna/souqna/pkg/vendor"
)

// Server exposes the session manager over HTTP.
type Server struct {
	manager *storefront.Manager
	logger  logger.Logger
	metrics telemetry.Instrumentation
}

// NewServer creates the HTTP adapter. The instrumentation is optional.
func NewServer(manager *storefront.Manager, log logger.Logger, metrics telemetry.Instrumentation) *Server {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &Server{
		manager: manager,
		logger:  log,
		metrics: metrics,
	}
}

// Handler returns the routed handler wrapped with correlation ids and
// OpenTelemetry HTTP instrumentation.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleSnapshot)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleRemoveSession)

	mux.HandleFunc("POST /api/sessions/{id}/navigate", s.handleNavigate)

	mux.HandleFunc("POST /api/sessions/{id}/cart/items", s.handleCartAdd)
	mux.HandleFunc("DELETE /api/sessions/{id}/cart/items/{productID}", s.handleCartRemove)
	mux.HandleFunc("POST /api/sessions/{id}/cart/items/{productID}/quantity", s.handleCartAdjust)

	mux.HandleFunc("POST /api/sessions/{id}/auth", s.handleAuthenticate)
	mux.HandleFunc("POST /api/sessions/{id}/auth/prompt", s.handleOpenAuthPrompt)
	mux.HandleFunc("DELETE /api/sessions/{id}/auth/prompt", s.handleDismissAuthPrompt)
	mux.HandleFunc("POST /api/sessions/{id}/logout", s.handleLogout)

	mux.HandleFunc("POST /api/sessions/{id}/listings", s.handleCreateListing)
	mux.HandleFunc("DELETE /api/sessions/{id}/listings/{productID}", s.handleDeleteListing)

	mux.HandleFunc("POST /api/sessions/{id}/chat", s.handleChat)
	mux.HandleFunc("POST /api/sessions/{id}/chat/cancel", s.handleChatCancel)
	mux.HandleFunc("POST /api/sessions/{id}/search", s.handleSearch)

	handler := telemetry.CorrelationMiddleware(mux)
	return otelhttp.NewHandler(handler, "souqna.httpapi")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": s.manager.Len(),
	})
}

// session resolves the path's session id, writing a 404 when it is not
// live.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*storefront.Session, bool) {
	id := r.PathValue("id")
	sess, ok := s.manager.Get(r.Context(), id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", map[string]interface{}{
			"operation": "write_json",
			"error":     err.Error(),
		})
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// recordIntent feeds the intent counter when instrumentation is wired.
func (s *Server) recordIntent(r *http.Request, intent string, err error) {
	if s.metrics != nil {
		s.metrics.RecordIntent(r.Context(), intent, err)
	}
}

// domainStatus maps domain refusals to HTTP statuses.
func domainStatus(err error) int {
	switch {
	case errors.Is(err, storefront.ErrUnknownRoute), errors.Is(err, vendor.ErrInvalidListing):
		return http.StatusBadRequest
	case errors.Is(err, vendor.ErrNotOwner):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
