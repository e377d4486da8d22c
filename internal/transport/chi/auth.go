package chi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/domain/account"
	"github.com/kailas-cloud/careersetu/internal/logger"
)

type userCtxKey struct{}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, u account.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the user set by BearerAuthMiddleware.
func UserFromContext(ctx context.Context) (account.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(account.User)
	return u, ok
}

// BearerAuthMiddleware resolves the Bearer token to a user and stores it in
// the request context. Requests without a valid token get 401.
func BearerAuthMiddleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
				unauthorized(w, "authorization header must use Bearer scheme")
				return
			}

			u, err := auth.Authenticate(r.Context(), strings.TrimSpace(header[len(bearerPrefix):]))
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					logger.FromContext(r.Context()).Error("token check failed", zap.Error(err))
				}
				unauthorized(w, "could not validate credentials")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, CodeUnauthorized, msg, "")
}

// Signup handles POST /api/v1/auth/signup.
func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decode(r, &req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	tok, err := s.svc.Accounts.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenToDTO(tok))
}

// Token handles POST /api/v1/auth/token. It accepts a JSON body or an
// OAuth2 password-style form.
func (s *Server) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			s.handleDomainError(w, r, domain.NewValidation("", "invalid form body"))
			return
		}
		req.Username, req.Password = r.PostForm.Get("username"), r.PostForm.Get("password")
		if err := validateStruct(&req); err != nil {
			s.handleDomainError(w, r, err)
			return
		}
	} else if err := decode(r, &req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	tok, err := s.svc.Accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			unauthorized(w, "incorrect username or password")
			return
		}
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenToDTO(tok))
}

// Me handles GET /api/v1/auth/me.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, userToDTO(u))
}
