package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, getLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, getLogLevel("warning"))
	assert.Equal(t, slog.LevelError, getLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, getLogLevel("nonsense"))
}

func TestLogCredentialRejected_JSON(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")

	l.LogCredentialRejected(context.Background(), "access", "expired", errors.New("token is expired"))

	out := buf.String()
	assert.Contains(t, out, `"msg":"Credential Rejected"`)
	assert.Contains(t, out, `"token":"access"`)
	assert.Contains(t, out, `"status":"expired"`)
	assert.Contains(t, out, `"error":"token is expired"`)
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.LogAuthSuccess(context.Background(), "u-1", "access_token")
	assert.Empty(t, buf.String())

	l.WithUserID("u-1").LogAccessDenied(context.Background(), "u-1", "admin", "/api/v1/admin/session-policy")
	assert.Contains(t, buf.String(), "Access Denied")
	assert.Contains(t, buf.String(), "u-1")
}

func TestContextRequestIDTagsSecurityEvents(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "debug")
	ctx := ContextWithRequestID(context.Background(), "req-42")

	assert.Equal(t, "req-42", RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(context.Background()))

	l.LogCredentialRejected(ctx, "refresh", "invalid", nil)
	l.LogTokenReissued(ctx, "u-1")
	l.LogAuthFailure(ctx, "no session", "10.0.0.1")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.Contains(t, string(line), `"request_id":"req-42"`)
	}
}

func TestWithErrorAndErrorWithContext(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")

	l.WithError(errors.New("boom")).Error("Invalid configuration")
	assert.Contains(t, buf.String(), `"error":"boom"`)

	buf.Reset()
	ctx := ContextWithRequestID(context.Background(), "req-7")
	l.ErrorWithContext(ctx, "Rate limit check failed", errors.New("redis down"), map[string]interface{}{"ip": "10.0.0.9"})
	out := buf.String()
	assert.Contains(t, out, `"msg":"Rate limit check failed"`)
	assert.Contains(t, out, `"error":"redis down"`)
	assert.Contains(t, out, `"ip":"10.0.0.9"`)
	assert.Contains(t, out, `"request_id":"req-7"`)
}

func TestNewWithWriter_HonoursLevel(t *testing.T) {
	var buf bytes.Buffer

	NewWithWriter(&buf, "error").Warn("dropped")
	assert.Empty(t, buf.String())

	NewWithWriter(&buf, "debug").Debug("kept")
	assert.Contains(t, buf.String(), "kept")
}
