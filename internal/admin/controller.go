package admin

import (
	"net/http"

	"flowdesk/internal/shared/config"
	"flowdesk/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	config *config.Config
}

func NewController(cfg *config.Config) *Controller {
	return &Controller{config: cfg}
}

// GetSessionPolicy reports token lifetimes and cookie attributes. Secrets are never exposed.
func (c *Controller) GetSessionPolicy(ctx *gin.Context) {
	policy := SessionPolicyResponse{
		Issuer:            c.config.JWT.Issuer,
		AccessTTLSeconds:  int64(c.config.JWT.AccessExpiresIn.Seconds()),
		RefreshTTLSeconds: int64(c.config.JWT.RefreshExpiresIn.Seconds()),
		CookiePath:        c.config.Cookie.Path,
		CookieDomain:      c.config.Cookie.Domain,
		CookieSecure:      c.config.Cookie.Secure,
		CookieSameSite:    sameSiteName(c.config.Cookie.SameSite),
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Session policy retrieved", policy, nil)
}

func sameSiteName(s http.SameSite) string {
	switch s {
	case http.SameSiteStrictMode:
		return "strict"
	case http.SameSiteNoneMode:
		return "none"
	case http.SameSiteLaxMode:
		return "lax"
	default:
		return "default"
	}
}
