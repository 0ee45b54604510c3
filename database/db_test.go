package database_test

import (
	"path/filepath"
	"testing"

	"blog-ui/database"
	"blog-ui/database/model"
	"blog-ui/web/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.GetDB().Model(&model.AdminAccount{}).Count(&count).Error)
	return count
}

func TestInitDBBootstrapsExactlyOneAdmin(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "blog.db")

	require.NoError(t, database.InitDB(dbPath))
	assert.EqualValues(t, 1, adminCount(t))

	// Reopening the same database must not add a second admin.
	require.NoError(t, database.CloseDB())
	require.NoError(t, database.InitDB(dbPath))
	assert.EqualValues(t, 1, adminCount(t))

	require.NoError(t, database.CloseDB())
}

func TestResetAdminCredential(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "blog.db")
	require.NoError(t, database.InitDB(dbPath))
	defer database.CloseDB()

	password, err := database.ResetAdminCredential("root")
	require.NoError(t, err)
	require.NotEmpty(t, password)
	assert.EqualValues(t, 1, adminCount(t))

	logDir := t.TempDir()
	accounts := service.NewAccountService(
		database.GetDB(),
		service.NewActivityLog(filepath.Join(logDir, "activity.log")),
		service.NewAdminAuditLog(filepath.Join(logDir, "admin_audit.log")),
	)

	admin, authenticated := accounts.AuthenticateAdmin("root", password)
	require.True(t, authenticated)
	assert.Equal(t, "root", admin.Username)

	_, authenticated = accounts.AuthenticateAdmin("root", "not-the-password")
	assert.False(t, authenticated)
}

func TestOpenPostDBCreatesMonthlyPartition(t *testing.T) {
	folder := t.TempDir()

	db, closeDB, err := database.OpenPostDB(folder, "2026_08")
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.Post{
		Title: "t", Content: "c", Author: "a", Tags: model.Tags{},
	}).Error)
	require.NoError(t, closeDB())

	assert.FileExists(t, filepath.Join(folder, "posts_2026_08.db"))

	// A different month resolves to a different file.
	other, closeOther, err := database.OpenPostDB(folder, "2026_09")
	require.NoError(t, err)
	defer closeOther()

	var count int64
	require.NoError(t, other.Model(&model.Post{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
