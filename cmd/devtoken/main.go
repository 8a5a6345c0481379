// devtoken mints a session cookie pair for local testing against the API.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"flowdesk/internal/session"
	"flowdesk/internal/shared/config"
	"flowdesk/internal/shared/middleware"
	"flowdesk/internal/users"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	id := flag.String("id", "", "user id (random when empty)")
	email := flag.String("email", "admin@flowdesk.dev", "user email")
	role := flag.String("role", string(users.RoleAdmin), "role: admin or user")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if !users.IsValidRole(*role) {
		log.Fatalf("unknown role %q", *role)
	}
	if *id == "" {
		*id = uuid.NewString()
	}

	codec, err := session.NewCodecFromConfig(cfg)
	if err != nil {
		log.Fatalf("build codec: %v", err)
	}

	p := session.Principal{ID: *id, Email: *email, Role: users.Role(*role)}
	access, err := codec.SignAccess(p)
	if err != nil {
		log.Fatalf("sign access token: %v", err)
	}
	refresh, err := codec.SignRefresh(p)
	if err != nil {
		log.Fatalf("sign refresh token: %v", err)
	}

	fmt.Fprintf(os.Stdout, "Cookie: %s=%s; %s=%s\n",
		middleware.AccessTokenCookie, access, middleware.RefreshTokenCookie, refresh)
}
