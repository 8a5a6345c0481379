package admin

// represents the session policy currently enforced by the gate
type SessionPolicyResponse struct {
	Issuer            string `json:"issuer"`
	AccessTTLSeconds  int64  `json:"access_ttl_seconds"`
	RefreshTTLSeconds int64  `json:"refresh_ttl_seconds"`
	CookiePath        string `json:"cookie_path"`
	CookieDomain      string `json:"cookie_domain,omitempty"`
	CookieSecure      bool   `json:"cookie_secure"`
	CookieSameSite    string `json:"cookie_same_site"`
}
