package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/lfsh/market-api/internal/api/metrics"
	"github.com/lfsh/market-api/internal/core/domain"
	"github.com/lfsh/market-api/internal/core/ports"
)

// SessionName is the cookie under which the browser session travels.
const SessionName = "lfsh_session"

// User-facing login messages, preserved verbatim from the legacy service.
const (
	msgBadChallenge   = " !! NO NO NO ¡¡ Código de seguridad incorrecto"
	msgBadCredentials = "Usuario o contraseña incorrectos"
)

// AuthHandler owns the browser-facing login surface: the form lifecycle,
// the dashboard, and session teardown. The session is the sole source of
// truth for "is this browser authenticated"; the API key mechanism is
// separate and handled by the APIKey middleware.
type AuthHandler struct {
	auth       ports.AuthService
	challenges ports.ChallengeService
}

func NewAuthHandler(auth ports.AuthService, challenges ports.ChallengeService) *AuthHandler {
	return &AuthHandler{auth: auth, challenges: challenges}
}

// Root handles GET /. Authenticated browsers land on the dashboard,
// everyone else on the login form.
func (h *AuthHandler) Root(c echo.Context) error {
	sess, _ := session.Get(SessionName, c)
	if _, ok := sess.Values["user_id"]; ok {
		return c.Redirect(http.StatusFound, "/dashboard")
	}
	return c.Redirect(http.StatusFound, "/login")
}

// LoginForm handles GET /login: issue a fresh challenge and render the form.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return h.renderLogin(c, "")
}

// Login handles POST /login. The challenge is checked before the
// credentials; a wrong code never reaches the credential store. Both
// failure branches issue a new challenge and re-render the form — they are
// messages, not HTTP errors.
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	sess, _ := session.Get(SessionName, c)

	captchaID, _ := sess.Values["captcha_id"].(string)
	ok, err := h.challenges.Verify(ctx, captchaID, c.FormValue("captcha"))
	if err != nil {
		return err
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("invalid_captcha").Inc()
		return h.renderLogin(c, msgBadChallenge)
	}

	user, err := h.auth.Login(ctx, c.FormValue("username"), c.FormValue("password"))
	if errors.Is(err, domain.ErrInvalidCredentials) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return h.renderLogin(c, msgBadCredentials)
	}
	if err != nil {
		return err
	}

	sess.Values["user_id"] = user.ID
	sess.Values["username"] = user.Usuario
	sess.Values["nombre"] = user.FullName()
	sess.Values["api_key"] = user.APIKey
	delete(sess.Values, "captcha_id")
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Dashboard handles GET /dashboard, rendering the cached display name and
// API key. Browsers without a session are sent back to the login form.
func (h *AuthHandler) Dashboard(c echo.Context) error {
	sess, _ := session.Get(SessionName, c)
	if _, ok := sess.Values["user_id"]; !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	nombre, _ := sess.Values["nombre"].(string)
	apiKey, _ := sess.Values["api_key"].(string)
	return c.Render(http.StatusOK, "dashboard.html", echo.Map{
		"Nombre": nombre,
		"APIKey": apiKey,
	})
}

// Logout handles GET /logout: the session is cleared entirely and the
// browser returns to the anonymous entry point.
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, _ := session.Get(SessionName, c)
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/login")
}

// renderLogin issues a fresh challenge, stores its id in the session, and
// renders the form. Called on every form render, so an old challenge is
// never valid on retry.
func (h *AuthHandler) renderLogin(c echo.Context, message string) error {
	id, code, err := h.challenges.Issue(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.ChallengesIssuedTotal.Inc()

	sess, _ := session.Get(SessionName, c)
	sess.Values["captcha_id"] = id
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}

	return c.Render(http.StatusOK, "login.html", echo.Map{
		"Captcha": code,
		"Message": message,
	})
}
