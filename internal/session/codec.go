package session

import (
	"errors"
	"fmt"
	"time"

	"flowdesk/internal/shared/config"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	errSecretUnavailable = errors.New("token secret unavailable")
	errWrongKind         = errors.New("token kind mismatch")
	errMissingExpiry     = errors.New("token has no expiry")
	errInvalidPrincipal  = errors.New("principal is incomplete or has an unknown role")
)

// CodecConfig holds the two disjoint secrets and the lifetime of each token kind
type CodecConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string

	// Now stamps iat/exp on signed tokens. Defaults to time.Now.
	Now func() time.Time
}

// Codec signs and strictly decodes HS256 session tokens.
// It holds only immutable configuration and is safe for concurrent use.
type Codec struct {
	cfg      CodecConfig
	parser   *jwt.Parser
	validate *validator.Validate
}

func NewCodec(cfg CodecConfig) (*Codec, error) {
	switch {
	case cfg.AccessSecret == "" || cfg.RefreshSecret == "":
		return nil, fmt.Errorf("%w: both secrets are required", ErrInvalidCodec)
	case cfg.AccessSecret == cfg.RefreshSecret:
		return nil, fmt.Errorf("%w: access and refresh secrets must differ", ErrInvalidCodec)
	case cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0:
		return nil, fmt.Errorf("%w: token lifetimes must be positive", ErrInvalidCodec)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Codec{
		cfg:      cfg,
		parser:   jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
		validate: validator.New(),
	}, nil
}

// NewCodecFromConfig builds a codec from the application's JWT settings
func NewCodecFromConfig(cfg *config.Config) (*Codec, error) {
	return NewCodec(CodecConfig{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessExpiresIn,
		RefreshTTL:    cfg.JWT.RefreshExpiresIn,
		Issuer:        cfg.JWT.Issuer,
	})
}

func (c *Codec) AccessTTL() time.Duration  { return c.cfg.AccessTTL }
func (c *Codec) RefreshTTL() time.Duration { return c.cfg.RefreshTTL }

func (c *Codec) SignAccess(p Principal) (string, error) {
	return c.sign(p, KindAccess)
}

func (c *Codec) SignRefresh(p Principal) (string, error) {
	return c.sign(p, KindRefresh)
}

func (c *Codec) sign(p Principal, kind TokenKind) (string, error) {
	if p.ID == "" || p.Email == "" || !p.Role.Valid() {
		return "", errInvalidPrincipal
	}

	secret, ttl := c.keyFor(kind)
	now := c.cfg.Now()
	claims := Claims{
		UserID: p.ID,
		Email:  p.Email,
		Role:   p.Role,
		Type:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    c.cfg.Issuer,
			Subject:   p.ID,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Decode validates tokenString against the secret of kind and returns a tagged result.
// A Principal is produced only when every required claim is present and the role is known.
func (c *Codec) Decode(tokenString string, kind TokenKind) DecodeResult {
	secret, _ := c.keyFor(kind)
	claims := &Claims{}

	_, err := c.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		if secret == "" {
			return nil, errSecretUnavailable
		}
		return []byte(secret), nil
	})
	if err != nil {
		return classify(err)
	}

	if err := c.validate.Struct(claims); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return DecodeResult{Status: DecodeFault, Err: fmt.Errorf("%w: %v", ErrUnexpectedFault, err)}
		}
		return DecodeResult{Status: DecodeInvalid, Err: err}
	}
	if claims.Type != kind {
		return DecodeResult{Status: DecodeInvalid, Err: errWrongKind}
	}
	if claims.ExpiresAt == nil {
		return DecodeResult{Status: DecodeInvalid, Err: errMissingExpiry}
	}

	return DecodeResult{Status: DecodeOK, Principal: claims.principal()}
}

func (c *Codec) keyFor(kind TokenKind) (string, time.Duration) {
	switch kind {
	case KindAccess:
		return c.cfg.AccessSecret, c.cfg.AccessTTL
	case KindRefresh:
		return c.cfg.RefreshSecret, c.cfg.RefreshTTL
	default:
		return "", 0
	}
}

// classify maps a parser error onto a decode status.
// Signature and structure are checked before expiry: jwt/v4 reports both bits
// for an expired token signed with the wrong key.
func classify(err error) DecodeResult {
	if errors.Is(err, errSecretUnavailable) {
		return DecodeResult{Status: DecodeFault, Err: fmt.Errorf("%w: %v", ErrUnexpectedFault, err)}
	}

	var ve *jwt.ValidationError
	if !errors.As(err, &ve) {
		return DecodeResult{Status: DecodeFault, Err: fmt.Errorf("%w: %v", ErrUnexpectedFault, err)}
	}

	const structural = jwt.ValidationErrorMalformed |
		jwt.ValidationErrorUnverifiable |
		jwt.ValidationErrorSignatureInvalid
	switch {
	case ve.Errors&structural != 0:
		return DecodeResult{Status: DecodeInvalid, Err: err}
	case ve.Errors&jwt.ValidationErrorExpired != 0:
		return DecodeResult{Status: DecodeExpired, Err: err}
	default:
		return DecodeResult{Status: DecodeInvalid, Err: err}
	}
}
