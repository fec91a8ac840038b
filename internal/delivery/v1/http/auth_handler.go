package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/internal/usecase"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
)

const sessionCookie = "admin_session"

type sessionCtxKey struct{}

// SessionFromContext возвращает сессию администратора, проверенную RequireAdmin.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(*domain.Session)
	return s, ok
}

type AuthHandler struct {
	handler
	auth         usecase.AuthUC
	secureCookie bool
}

func NewAuthHandler(auth usecase.AuthUC, secureCookie bool, logger logger.Logger) *AuthHandler {
	return &AuthHandler{handler: handler{logger: logger}, auth: auth, secureCookie: secureCookie}
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// login
//
//	@Summary	Вход администратора
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		credentials	body		usecase.LoginReq	true	"Логин и пароль"
//	@Success	200			{object}	SuccessResponse
//	@Failure	401			{object}	ErrorResponse
//	@Router		/auth/login [post]
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req usecase.LoginReq
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	session, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	http.SetCookie(w, h.cookie(session.Token, int(h.auth.SessionTTL().Seconds())))
	WriteSuccess(w, http.StatusOK, SuccessResponse{Success: true})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if err := h.auth.Logout(r.Context(), c.Value); err != nil {
			h.logError(r, err)
		}
	}

	http.SetCookie(w, h.cookie("", -1))
	WriteSuccess(w, http.StatusOK, SuccessResponse{Success: true})
}

func (h *AuthHandler) session(w http.ResponseWriter, r *http.Request) {
	session, err := h.authenticate(r)
	if err != nil {
		if errors.Is(err, e.ErrUnauthorized) {
			WriteSuccess(w, http.StatusUnauthorized, SessionResponse{Authenticated: false})
			return
		}
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, SessionResponse{Authenticated: true, Username: session.Username})
}

// RequireAdmin пропускает запрос только с действующей сессией администратора.
func (h *AuthHandler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := h.authenticate(r)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionCtxKey{}, session)))
	})
}

func (h *AuthHandler) authenticate(r *http.Request) (*domain.Session, error) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, e.ErrUnauthorized
	}

	return h.auth.Authenticate(r.Context(), c.Value)
}

func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}
