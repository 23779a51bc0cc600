package auth_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_ExistsQuery(t *testing.T) {
	sql, args, err := NewUserRepo(nil).existsQuery("a@b.c").ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", sql)
	assert.Equal(t, []any{"a@b.c"}, args)
}

func TestUserRepo_Columns(t *testing.T) {
	cols := NewUserRepo(nil).Columns()
	assert.Contains(t, cols, "password_hash")
	assert.Contains(t, cols, "role")
}
