package http

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/jobboard/internal/core/domain"
	"github.com/vncsmyrnk/jobboard/internal/core/ports"
)

type CookieConfig struct {
	Domain string
	Secure bool
}

type AuthHandler struct {
	responder
	authService ports.AuthService
	cookies     CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookies CookieConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		responder:   responder{logger: logger},
		authService: authService,
		cookies:     cookies,
	}
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	Credential string `json:"credential"`
}

// Register godoc
// @Summary      Registers a new user
// @Description  Creates a student or employer account and starts a session. Role defaults to student.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400
// @Failure      409
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, session, err := h.authService.Register(r.Context(), ports.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		h.error(w, r, err)
		return
	}

	h.setSessionCookies(w, session)
	h.json(w, http.StatusCreated, envelope{"message": "User registered successfully", "user": user})
}

// Login godoc
// @Summary      Logs a user in
// @Description  Verifies the credentials and sets the access_token and refresh_token cookies.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      401
// @Failure      404
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, session, err := h.authService.Login(r.Context(), ports.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.error(w, r, err)
		return
	}

	h.setSessionCookies(w, session)
	h.json(w, http.StatusOK, envelope{"message": "Logged in successfully", "user": user})
}

func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, session, err := h.authService.LoginWithGoogle(r.Context(), req.Credential)
	if err != nil {
		h.error(w, r, err)
		return
	}

	h.setSessionCookies(w, session)
	h.json(w, http.StatusOK, envelope{"message": "Logged in successfully", "user": user})
}

// Refresh godoc
// @Summary      Refreshes the session
// @Description  Issues a new access token from the refresh token cookie and rotates the refresh token.
// @Tags         auth
// @Success      200
// @Failure      401
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshTokenCookie)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "missing refresh token")
		return
	}

	session, err := h.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		h.expireCookies(w)
		h.error(w, r, err)
		return
	}

	h.setSessionCookies(w, session)
	h.json(w, http.StatusOK, envelope{"message": "Session refreshed"})
}

// Logout godoc
// @Summary      Logs the authenticated user out
// @Description  Clears the stored refresh token and expires both session cookies. Never fails.
// @Tags         auth
// @Success      200
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var err error
	if identity, ok := IdentityFrom(r.Context()); ok {
		err = h.authService.Logout(r.Context(), identity.UserID)
	} else if cookie, cerr := r.Cookie(refreshTokenCookie); cerr == nil {
		err = h.authService.LogoutByRefreshToken(r.Context(), cookie.Value)
	}
	if err != nil {
		h.logger.Warn("logout could not clear refresh token", zap.Error(err))
	}

	h.expireCookies(w)
	h.json(w, http.StatusOK, envelope{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.CurrentUser(r.Context(), accessToken(r))
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.json(w, http.StatusOK, envelope{"user": user})
}

func (h *AuthHandler) setSessionCookies(w http.ResponseWriter, session *domain.Session) {
	h.setCookie(w, accessTokenCookie, session.AccessToken, session.AccessTokenExpiresAt)
	h.setCookie(w, refreshTokenCookie, session.RefreshToken, session.RefreshTokenExpiresAt)
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, name, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookies.Domain,
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) expireCookies(w http.ResponseWriter) {
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   h.cookies.Domain,
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.cookies.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
