package rest

import (
	"net/http"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/domain"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/user"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// handleRegister — POST /auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	u, err := s.users.Register(r.Context(), user.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// handleLogin — POST /auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	token, u, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, loginResponse{Token: token, User: u})
}

// handleGetProfile — GET /me.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	u, err := s.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, u)
}

type updateProfileRequest struct {
	Name        *string          `json:"name"`
	Phone       *string          `json:"phone"`
	Coordinates *domain.GeoPoint `json:"coordinates"`
}

// handleUpdateProfile — PUT /me.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req updateProfileRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	u, err := s.users.UpdateProfile(r.Context(), claims.UserID, user.ProfileUpdate{
		Name:        req.Name,
		Phone:       req.Phone,
		Coordinates: req.Coordinates,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, u)
}

// handleUpdatePreferences — PUT /me/preferences: предпочтения
// заменяются целиком.
func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var prefs domain.Preferences
	if !s.decodeBody(w, r, &prefs) {
		return
	}

	u, err := s.users.UpdatePreferences(r.Context(), claims.UserID, prefs)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, u)
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// handleChangePassword — PUT /me/password.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req changePasswordRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	if err := s.users.ChangePassword(r.Context(), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}

// handleDeactivate — DELETE /me: мягкое удаление аккаунта.
func (s *Server) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	if err := s.users.Deactivate(r.Context(), claims.UserID); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
