package database_test

import (
	"testing"

	"audition_backend/database"
	"audition_backend/internal/models"
	"audition_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailIndexStatements(t *testing.T) {
	partial := database.EmailIndexStatements("postgres")
	require.Len(t, partial, 1)
	assert.Contains(t, partial[0], "WHERE deleted_at IS NULL")
	assert.Equal(t, partial, database.EmailIndexStatements("sqlite"))

	// MySQL: уникальность по генерируемой колонке, NULL у удаленных
	mysql := database.EmailIndexStatements("mysql")
	require.Len(t, mysql, 2)
	assert.Contains(t, mysql[0], "CASE WHEN deleted_at IS NULL THEN email END")
	assert.Contains(t, mysql[1], "ON users (email_active)")
}

func TestMigrate_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, database.Migrate(db))
	assert.True(t, db.Migrator().HasIndex(&models.User{}, "idx_users_email_active"))
}
