package session

import (
	"errors"

	"flowdesk/internal/users"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrUnexpectedFault = errors.New("unexpected session fault")
	ErrInvalidCodec    = errors.New("invalid token codec configuration")
)

// Principal is the identity resolved from a verified token.
// Only the codec builds one; handlers read it from the request context.
type Principal struct {
	ID    string     `json:"id"`
	Email string     `json:"email"`
	Role  users.Role `json:"role"`
}

// TokenKind binds a token to its signing secret
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Claims is the JWT payload for both token kinds
type Claims struct {
	UserID string     `json:"user_id" validate:"required"`
	Email  string     `json:"email" validate:"required"`
	Role   users.Role `json:"role" validate:"required,oneof=admin user"`
	Type   TokenKind  `json:"type" validate:"required,oneof=access refresh"`
	jwt.RegisteredClaims
}

func (c *Claims) principal() Principal {
	return Principal{ID: c.UserID, Email: c.Email, Role: c.Role}
}

// DecodeStatus tags the result of decoding one token
type DecodeStatus int

const (
	DecodeOK DecodeStatus = iota
	DecodeExpired
	DecodeInvalid
	DecodeFault
)

func (s DecodeStatus) String() string {
	switch s {
	case DecodeOK:
		return "ok"
	case DecodeExpired:
		return "expired"
	case DecodeInvalid:
		return "invalid"
	case DecodeFault:
		return "fault"
	default:
		return "unknown"
	}
}

// DecodeResult carries the principal on DecodeOK and the cause otherwise
type DecodeResult struct {
	Status    DecodeStatus
	Principal Principal
	Err       error
}

// OutcomeKind is the per-request session state after verification
type OutcomeKind int

const (
	Unauthenticated OutcomeKind = iota
	Authenticated
	Reissued
)

func (k OutcomeKind) String() string {
	switch k {
	case Authenticated:
		return "authenticated"
	case Reissued:
		return "reissued"
	default:
		return "unauthenticated"
	}
}

// Outcome is computed fresh per request and never stored.
// AccessToken is set only when Kind is Reissued.
type Outcome struct {
	Kind        OutcomeKind
	Principal   *Principal
	AccessToken string
}

// Reissue reports whether a new access token must be written back
func (o Outcome) Reissue() bool {
	return o.Kind == Reissued && o.AccessToken != ""
}
