package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/artkeeper/internal/common"
	"github.com/dmitrijs2005/artkeeper/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type artifactRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type artifactResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toArtifactResponse(a *models.Artifact) artifactResponse {
	return artifactResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Title:       a.Title,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (s *RestServer) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// POST /api/auth/register
// Request:  {"email":"...","password":"..."}
// Response: 201 {"token":"..."}
func (s *RestServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	token, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			writeError(w, http.StatusBadRequest, "invalid input")
		case errors.Is(err, common.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, "email already exists")
		default:
			s.logger.Error(r.Context(), "registration failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	s.logger.Info(r.Context(), "user registered", "email", req.Email)
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: 200 {"token":"..."}
// Unknown email and wrong password produce the same 401 body.
func (s *RestServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// POST /api/artifacts
func (s *RestServer) handleCreateArtifact(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req artifactRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	artifact, err := s.artifacts.Create(r.Context(), userID, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			writeError(w, http.StatusBadRequest, "invalid input")
			return
		}
		s.logger.Error(r.Context(), "create artifact failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toArtifactResponse(artifact))
}

// GET /api/artifacts
func (s *RestServer) handleListArtifacts(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	artifacts, err := s.artifacts.List(r.Context(), userID)
	if err != nil {
		s.logger.Error(r.Context(), "list artifacts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	result := make([]artifactResponse, 0, len(artifacts))
	for _, a := range artifacts {
		result = append(result, toArtifactResponse(a))
	}

	writeJSON(w, http.StatusOK, result)
}

// PUT /api/artifacts/{id}
func (s *RestServer) handleUpdateArtifact(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req artifactRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	artifact, err := s.artifacts.Update(r.Context(), chi.URLParam(r, "id"), userID, req.Title, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			writeError(w, http.StatusBadRequest, "invalid input")
		case errors.Is(err, common.ErrorNotFound):
			writeError(w, http.StatusNotFound, "artifact not found")
		default:
			s.logger.Error(r.Context(), "update artifact failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toArtifactResponse(artifact))
}

// DELETE /api/artifacts/{id}
func (s *RestServer) handleDeleteArtifact(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	err := s.artifacts.SoftDelete(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "artifact not found")
			return
		}
		s.logger.Error(r.Context(), "delete artifact failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "artifact deleted"})
}
