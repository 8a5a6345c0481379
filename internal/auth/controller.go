package auth

import (
	"net/http"

	"flowdesk/internal/session"
	"flowdesk/internal/shared/config"
	"flowdesk/internal/shared/middleware"
	"flowdesk/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	cookies config.CookieConfig
}

func NewController(cookies config.CookieConfig) *Controller {
	return &Controller{cookies: cookies}
}

func (c *Controller) GetMe(ctx *gin.Context) {
	p, ok := session.CurrentPrincipal(ctx)
	if !ok {
		response.RespondJSON(ctx, response.StatusError, http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "User data retrieved successfully", MeResponse{
		ID:    p.ID,
		Email: p.Email,
		Role:  string(p.Role),
	}, nil)
}

// Logout expires both session cookies on the client
func (c *Controller) Logout(ctx *gin.Context) {
	ctx.SetSameSite(c.cookies.SameSite)
	for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie} {
		ctx.SetCookie(name, "", -1, c.cookies.Path, c.cookies.Domain, c.cookies.Secure, true)
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Logged out successfully", nil, nil)
}
