package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAPIKeyRepository_ResolveTenant(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAPIKeyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "secret-token", "tenant1", "ci"))

	tenantID, err := repo.ResolveTenant(ctx, "secret-token")
	require.NoError(t, err)
	require.Equal(t, "tenant1", tenantID)

	var lastUsed sql.NullTime
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT last_used FROM api_keys WHERE key_hash = ?`, HashToken("secret-token")).Scan(&lastUsed))
	require.True(t, lastUsed.Valid)

	_, err = repo.ResolveTenant(ctx, "wrong-token")
	require.ErrorIs(t, err, ErrUnknownAPIKey)
}

func TestHashToken(t *testing.T) {
	require.Len(t, HashToken("abc"), 64)
	require.Equal(t, HashToken("abc"), HashToken("abc"))
	require.NotEqual(t, HashToken("abc"), HashToken("abd"))
}
