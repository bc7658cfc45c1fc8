package httpapi

import (
	"net/http"
	"time"

	"github.com/souqna/souqna/pkg/assistant"
	"github.com/souqna/souqna/pkg/session"
	"github.com/souqna/souqna/pkg/vendor"
)

type navigateRequest struct {
	Route     string `json:"route"`
	ProductID string `json:"product_id,omitempty"`
}

type cartAddRequest struct {
	ProductID string `json:"product_id"`
}

type quantityRequest struct {
	Delta int `json:"delta"`
}

type authRequest struct {
	Mode     string `json:"mode"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type chatRequest struct {
	Text string `json:"text"`
}

type chatResponse struct {
	Accepted bool             `json:"accepted"`
	Turns    []assistant.Turn `json:"turns"`
	Busy     bool             `json:"busy"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Text    string             `json:"text"`
	Sources []assistant.Source `json:"sources"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.manager.Create(r.Context())
	s.recordIntent(r, "session_create", nil)
	s.writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleRemoveSession(w http.ResponseWriter, r *http.Request) {
	s.manager.Remove(r.Context(), r.PathValue("id"))
	s.recordIntent(r, "session_remove", nil)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req navigateRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	effect, err := sess.Navigate(session.Route(req.Route), session.Params{ProductID: req.ProductID})
	s.recordIntent(r, "navigate", err)
	if err != nil {
		s.writeError(w, domainStatus(err), err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"auth_prompt": effect == session.EffectAuthPrompt,
		"navigation":  sess.Snapshot().Navigation,
	})
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req cartAddRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	added := sess.AddToCart(req.ProductID)
	s.recordIntent(r, "cart_add", nil)
	if !added {
		s.writeError(w, http.StatusConflict, "catalog is empty")
		return
	}
	s.writeJSON(w, http.StatusOK, sess.Snapshot().Cart)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	sess.RemoveFromCart(r.PathValue("productID"))
	s.recordIntent(r, "cart_remove", nil)
	s.writeJSON(w, http.StatusOK, sess.Snapshot().Cart)
}

func (s *Server) handleCartAdjust(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req quantityRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	sess.AdjustCartQuantity(r.PathValue("productID"), req.Delta)
	s.recordIntent(r, "cart_adjust", nil)
	s.writeJSON(w, http.StatusOK, sess.Snapshot().Cart)
}

func (s *Server) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req authRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	mode := session.Mode(req.Mode)
	if mode != session.ModeLogin && mode != session.ModeRegister {
		s.writeError(w, http.StatusBadRequest, "mode must be login or register")
		return
	}

	sess.Authenticate(session.Credentials{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     session.Role(req.Role),
	}, mode)
	s.recordIntent(r, "authenticate", nil)
	s.writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleOpenAuthPrompt(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.OpenAuthPrompt()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDismissAuthPrompt(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.DismissAuthPrompt()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Logout()
	s.recordIntent(r, "logout", nil)
	s.writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req vendor.ListingInput
	if !s.readJSON(w, r, &req) {
		return
	}

	p, err := sess.CreateListing(req)
	s.recordIntent(r, "create_listing", err)
	if err != nil {
		s.writeError(w, domainStatus(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleDeleteListing(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	err := sess.DeleteListing(r.PathValue("productID"))
	s.recordIntent(r, "delete_listing", err)
	if err != nil {
		s.writeError(w, domainStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req chatRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	start := time.Now()
	accepted := sess.SendChat(r.Context(), req.Text)
	s.recordIntent(r, "chat_send", nil)
	if accepted && s.metrics != nil {
		s.metrics.RecordAssistantExchange(r.Context(), time.Since(start), nil)
	}

	view := sess.Snapshot().Assistant
	status := http.StatusOK
	if !accepted {
		// Dropped: blank text or a reply already in flight
		status = http.StatusConflict
	}
	s.writeJSON(w, status, chatResponse{
		Accepted: accepted,
		Turns:    view.Turns,
		Busy:     view.Busy,
	})
}

func (s *Server) handleChatCancel(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.CancelAssistant()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req searchRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	text, sources := sess.SearchGrounded(r.Context(), req.Query)
	s.recordIntent(r, "search", nil)
	if sources == nil {
		sources = []assistant.Source{}
	}
	s.writeJSON(w, http.StatusOK, searchResponse{Text: text, Sources: sources})
}
