package handler

import (
	"net/http"

	"github.com/bookhaven/library-service/internal/model"
	"github.com/bookhaven/library-service/pkg/auth"
	"github.com/labstack/echo/v4"
)

// CreateToken signs a session token for the posted identity and delivers it
// as an HTTP-only cookie. The identity is taken on faith; the catalog guard
// is a capability check, not a user registry.
func (h *Handler) CreateToken(c echo.Context) error {
	var req model.TokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := auth.IssueToken(req.Email, req.Name, []byte(h.authCfg.Secret), auth.TokenTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Token generation failed")
	}

	c.SetCookie(h.sessionCookie(token, int(auth.TokenTTL.Seconds())))
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Logout clears the session cookie. The token itself stays valid until its
// natural expiry; there is no revocation list.
func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.authCfg.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	}
	if h.authCfg.IsProduction() {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

// sessionGuard verifies the cookie token and attaches the borrower identity
// to the request context. No token or a bad one stops the request here.
func (h *Handler) sessionGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(auth.CookieName)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
		}
		claims, err := auth.ParseToken(cookie.Value, []byte(h.authCfg.Secret))
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
		}

		req := c.Request()
		ctx := auth.SetAuthContext(req.Context(), claims.Email)
		c.SetRequest(req.WithContext(ctx))

		return next(c)
	}
}
