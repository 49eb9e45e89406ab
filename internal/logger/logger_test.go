package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &out))
	return out
}

func TestContextLoggerCarriesIDs(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("debug", true, &buf)

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithTraceID(ctx, "trace-1")
	ctx = WithOperationID(ctx, "op-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "op-1", GetOperationID(ctx))

	Get(ctx).Info().Msg("teste")
	entry := lastLine(t, &buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "trace-1", entry["trace_id"])
	assert.Equal(t, "op-1", entry["operation_id"])
	assert.Equal(t, "pendientes-api", entry["service"])
}

func TestAuditIncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("info", true, &buf)

	ctx := WithRequestID(context.Background(), "req-2")
	Audit(ctx, AuditEvent{
		Action:     AuditActionPendingCreate,
		Resource:   "pendiente",
		ResourceID: "7",
		Success:    true,
		Details:    map[string]interface{}{"empresa": "ACME"},
	})

	entry := lastLine(t, &buf)
	assert.Equal(t, "audit", entry["log_type"])
	assert.Equal(t, "PENDING_CREATE", entry["action"])
	assert.Equal(t, "req-2", entry["request_id"])
	assert.Equal(t, "info", entry["level"])

	AuditRequest(ctx, "DELETE", "/api/pendientes/7", 404, 3, "127.0.0.1")
	entry = lastLine(t, &buf)
	assert.Equal(t, "API_ERROR", entry["action"])
	assert.Equal(t, "warn", entry["level"])
}

func TestGetWithoutContextLogger(t *testing.T) {
	assert.NotNil(t, Get(context.Background()))
	assert.Equal(t, "", GetRequestID(context.Background()))
}
