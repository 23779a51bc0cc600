package postgres

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "inventory/internal/core/context"
	"inventory/internal/core/id"
	"inventory/internal/domain/audit"
)

func newTestRecorder(t *testing.T) *AuditRecorder {
	t.Helper()
	rec, err := NewAuditRecorder(nil)
	require.NoError(t, err)
	return rec
}

func TestAuditRecorder_NewRow_User(t *testing.T) {
	rec := newTestRecorder(t)
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{UserID: "u-1", Email: "admin@example.com", Role: "admin"})
	entityID := id.New()

	row, err := rec.newRow(ctx, audit.EntityStock, entityID, audit.ActionAdjust, map[string]any{"delta": -2})
	require.NoError(t, err)

	assert.Equal(t, "u-1", row.UserID)
	assert.Equal(t, "admin@example.com", row.UserEmail)
	assert.Equal(t, CompressionNone, row.CompressionAlgo)
	assert.JSONEq(t, `{"delta":-2}`, string(row.Changes))
	assert.Nil(t, row.ChangesCompressed)
}

func TestAuditRecorder_NewRow_NilChanges(t *testing.T) {
	rec := newTestRecorder(t)

	row, err := rec.newRow(context.Background(), audit.EntityInvoice, id.New(), audit.ActionDelete, nil)
	require.NoError(t, err)

	assert.Empty(t, row.UserID)
	assert.JSONEq(t, `{}`, string(row.Changes))
}

func TestAuditRecorder_CompressionRoundTrip(t *testing.T) {
	rec := newTestRecorder(t)
	big := map[string]any{"notes": strings.Repeat("x", defaultCompressThreshold)}

	row, err := rec.newRow(context.Background(), audit.EntityInvoice, id.New(), audit.ActionUpdate, big)
	require.NoError(t, err)
	require.Equal(t, CompressionZstd, row.CompressionAlgo)
	assert.Nil(t, row.Changes)
	assert.Less(t, len(row.ChangesCompressed), defaultCompressThreshold)

	entry, err := rec.toEntry(row)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(entry.Changes, &got))
	assert.Equal(t, big["notes"], got["notes"])
}
