package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard/app/models"
	"postboard/app/repositories"
)

// setupTestDB points the storage path at a temporary directory and returns
// the database path.
func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "data", "badger")
	t.Setenv("POSTBOARD_ENV", "test")
	t.Setenv("POSTBOARD_LOG__LEVEL", "error")
	t.Setenv("POSTBOARD_STORAGE__DRIVER", "badger")
	t.Setenv("POSTBOARD_STORAGE__PATH", dbPath)
	return dbPath
}

func run(input string, args ...string) (string, int) {
	var out bytes.Buffer
	code := Run(args, &out, strings.NewReader(input))
	return out.String(), code
}

func TestRun(t *testing.T) {
	setupTestDB(t)

	tests := []struct {
		name           string
		args           []string
		expectedOutput string
		expectedExit   int
	}{
		{"no arguments", nil, "Usage: postboard <command>", 1},
		{"help command", []string{"help"}, "Usage: postboard <command>", 0},
		{"version command", []string{"version"}, "postboard version " + Version, 0},
		{"unknown command", []string{"unknown"}, "Unknown command: unknown", 1},
		{"restore without file", []string{"restore"}, "Error: backup file path required for restore", 1},
		{"restore only flags", []string{"restore", "--yes"}, "Error: backup file path required for restore", 1},
		{"backup without database", []string{"backup"}, "No database exists to backup", 1},
		{"clean without database", []string{"clean"}, "Database is already clean", 0},
		{"restore missing file", []string{"restore", "nope.db"}, "Backup file does not exist: nope.db", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, code := run("", tt.args...)
			assert.Contains(t, output, tt.expectedOutput)
			assert.Equal(t, tt.expectedExit, code)
		})
	}
}

func TestInitDB(t *testing.T) {
	dbPath := setupTestDB(t)

	t.Run("initialize new database", func(t *testing.T) {
		output, code := run("", "init")
		assert.Equal(t, 0, code)
		assert.Contains(t, output, "Database initialized successfully")
		assert.DirExists(t, dbPath)
	})

	t.Run("initialize existing database", func(t *testing.T) {
		output, code := run("", "init")
		assert.Equal(t, 1, code)
		assert.Contains(t, output, "Database already exists")
	})
}

func TestClean(t *testing.T) {
	dbPath := setupTestDB(t)
	_, code := run("", "init")
	require.Equal(t, 0, code)

	t.Run("cancelled", func(t *testing.T) {
		output, code := run("n\n", "clean")
		assert.Equal(t, 1, code)
		assert.Contains(t, output, "Operation cancelled")
		assert.DirExists(t, dbPath)
	})

	t.Run("confirmed", func(t *testing.T) {
		output, code := run("y\n", "clean")
		assert.Equal(t, 0, code)
		assert.Contains(t, output, "Database cleaned successfully")
		assert.NoDirExists(t, dbPath)
	})

	t.Run("yes flag", func(t *testing.T) {
		_, code := run("", "init")
		require.Equal(t, 0, code)

		output, code := run("", "clean", "--yes")
		assert.Equal(t, 0, code)
		assert.Contains(t, output, "Database cleaned successfully")
		assert.NoDirExists(t, dbPath)
	})
}

func TestBackupAndRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	ctx := context.Background()

	store, err := repositories.OpenBadger(dbPath, zerolog.Nop())
	require.NoError(t, err)
	post := models.PostInput{Title: "Backup", Contents: "me"}.NewPost()
	require.NoError(t, store.Insert(ctx, post))
	require.NoError(t, store.InsertComment(ctx, models.CommentInput{Text: "kept"}.NewComment(post.ID)))
	require.NoError(t, store.Close())

	output, code := run("", "backup")
	require.Equal(t, 0, code, output)
	assert.Contains(t, output, "Database backed up successfully")

	backups, err := filepath.Glob(filepath.Join(filepath.Dir(dbPath), "backups", "backup_*.db"))
	require.NoError(t, err)
	require.Len(t, backups, 1)

	t.Run("restore cancelled", func(t *testing.T) {
		output, code := run("\n", "restore", backups[0])
		assert.Equal(t, 1, code)
		assert.Contains(t, output, "Operation cancelled")
	})

	t.Run("restore replaces database", func(t *testing.T) {
		_, code := run("", "clean", "--yes")
		require.Equal(t, 0, code)
		_, code = run("", "init")
		require.Equal(t, 0, code)

		output, code := run("y\n", "restore", backups[0])
		require.Equal(t, 0, code, output)
		assert.Contains(t, output, "Database restored successfully")

		store, err := repositories.OpenBadger(dbPath, zerolog.Nop())
		require.NoError(t, err)
		defer store.Close()

		got, err := store.FindByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Backup", got.Title)

		comments, err := store.FindPostComments(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "kept", comments[0].Text)
	})

	t.Run("restore empty file", func(t *testing.T) {
		empty := filepath.Join(t.TempDir(), "empty.db")
		require.NoError(t, os.WriteFile(empty, nil, 0644))

		output, code := run("", "restore", empty, "--yes")
		assert.Equal(t, 1, code)
		assert.Contains(t, output, "Backup file is empty")
	})
}

func TestMaintenanceRequiresBadger(t *testing.T) {
	setupTestDB(t)
	t.Setenv("POSTBOARD_STORAGE__DRIVER", "postgres")
	t.Setenv("POSTBOARD_STORAGE__DSN", "postgres://localhost/postboard")

	output, code := run("", "backup")
	assert.Equal(t, 1, code)
	assert.Contains(t, output, "only supports the badger storage driver")
}

func TestServeInvalidConfig(t *testing.T) {
	setupTestDB(t)
	t.Setenv("POSTBOARD_STORAGE__DRIVER", "postgres")

	output, code := run("", "serve")
	assert.Equal(t, 1, code)
	assert.Contains(t, output, "Failed to load configuration")
}
