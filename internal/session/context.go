package session

import "github.com/gin-gonic/gin"

const principalKey = "session.principal"

// SetPrincipal attaches p to the request. A nil p leaves the request anonymous.
func SetPrincipal(c *gin.Context, p *Principal) {
	if p == nil {
		return
	}
	c.Set(principalKey, p)
	c.Set("user_id", p.ID)
	c.Set("user_email", p.Email)
	c.Set("user_role", string(p.Role))
}

// CurrentPrincipal returns the principal set by the session middleware
func CurrentPrincipal(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok && p != nil
}
