package session

import (
	"context"
	"fmt"

	"flowdesk/pkg/logger"
)

// TokenCodec is the signing collaborator the verifier depends on.
// Implementations must be safe for concurrent use.
type TokenCodec interface {
	Decode(token string, kind TokenKind) DecodeResult
	SignAccess(p Principal) (string, error)
}

// Verifier resolves the access/refresh cookie pair into a session outcome.
// It keeps no per-request state.
type Verifier struct {
	codec  TokenCodec
	logger *logger.Logger
}

func NewVerifier(codec TokenCodec, log *logger.Logger) *Verifier {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Verifier{codec: codec, logger: log}
}

// Verify never fails for expired or invalid credentials; those demote the
// request to Unauthenticated. A non-nil error means an infrastructure fault
// and always wraps ErrUnexpectedFault.
func (v *Verifier) Verify(ctx context.Context, accessToken, refreshToken string) (Outcome, error) {
	anonymous := Outcome{Kind: Unauthenticated}

	if accessToken == "" && refreshToken == "" {
		return anonymous, nil
	}

	if accessToken != "" {
		res := v.codec.Decode(accessToken, KindAccess)
		switch res.Status {
		case DecodeOK:
			p := res.Principal
			v.logger.LogAuthSuccess(ctx, p.ID, "access_token")
			return Outcome{Kind: Authenticated, Principal: &p}, nil
		case DecodeFault:
			return anonymous, fmt.Errorf("decode access token: %w", res.Err)
		default:
			v.logger.LogCredentialRejected(ctx, string(KindAccess), res.Status.String(), res.Err)
		}
	}

	if refreshToken == "" {
		return anonymous, nil
	}

	res := v.codec.Decode(refreshToken, KindRefresh)
	switch res.Status {
	case DecodeOK:
	case DecodeFault:
		return anonymous, fmt.Errorf("decode refresh token: %w", res.Err)
	default:
		v.logger.LogCredentialRejected(ctx, string(KindRefresh), res.Status.String(), res.Err)
		return anonymous, nil
	}

	p := res.Principal
	token, err := v.codec.SignAccess(p)
	if err != nil {
		return anonymous, fmt.Errorf("%w: reissue access token: %v", ErrUnexpectedFault, err)
	}
	v.logger.LogTokenReissued(ctx, p.ID)

	return Outcome{Kind: Reissued, Principal: &p, AccessToken: token}, nil
}
