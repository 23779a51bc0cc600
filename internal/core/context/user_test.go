package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasRole(t *testing.T) {
	ctx := WithUser(context.Background(), &UserContext{UserID: "u1", Role: "storemanager"})

	assert.True(t, HasRole(ctx, "admin", "storemanager"))
	assert.False(t, HasRole(ctx, "admin"))
	assert.Equal(t, "u1", GetUserID(ctx))
}

func TestHasRole_Anonymous(t *testing.T) {
	assert.False(t, HasRole(context.Background(), "admin"))
	assert.Empty(t, GetUserID(context.Background()))
}
