package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/domain"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/user"

	"github.com/google/uuid"
)

type ctxKey int

const claimsKey ctxKey = iota

// authenticate разбирает Bearer-токен, если он есть. Запрос без токена
// проходит дальше анонимным; запрос с испорченным токеном — 401.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			s.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}

		claims, err := s.users.ParseToken(tokenStr)
		if err != nil {
			s.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := claimsFrom(r.Context()); !ok {
			s.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(r.Context())
		if !ok {
			s.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		if claims.Role != domain.RoleAdmin {
			s.respondJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func claimsFrom(ctx context.Context) (user.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(user.Claims)
	return claims, ok
}

// currentUserID — идентификатор аутентифицированного пользователя,
// nil для анонимного запроса.
func currentUserID(ctx context.Context) *uuid.UUID {
	claims, ok := claimsFrom(ctx)
	if !ok {
		return nil
	}
	id := claims.UserID
	return &id
}
