package service

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"blog-ui/database/model"
	"blog-ui/util/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newAccountDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "blog.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Account{}, &model.PendingAccount{}, &model.AdminAccount{}))
	return db
}

func newAccountService(t *testing.T) (*AccountService, *gorm.DB, string) {
	t.Helper()
	db := newAccountDB(t)
	logDir := t.TempDir()
	activity := NewActivityLog(filepath.Join(logDir, "activity.log"))
	audit := NewAdminAuditLog(filepath.Join(logDir, "admin_audit.log"))
	return NewAccountService(db, activity, audit), db, logDir
}

func register(t *testing.T, s *AccountService, username string) {
	t.Helper()
	result := s.Register(username, username+"-pw", username+"@example.com", 30, "555-"+username)
	require.True(t, result.OK(), "register %s: %s", username, result.Msg)
}

func pendingID(t *testing.T, db *gorm.DB, username string) int {
	t.Helper()
	var pending model.PendingAccount
	require.NoError(t, db.Where("username = ?", username).First(&pending).Error)
	return pending.UserId
}

func countRows(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(m).Count(&count).Error)
	return count
}

func TestRegisterCreatesExactlyOnePendingAccount(t *testing.T) {
	s, db, _ := newAccountService(t)

	result := s.Register("alice", "secret", "alice@example.com", 28, "555-0100")
	require.True(t, result.OK())

	assert.EqualValues(t, 1, countRows(t, db, &model.PendingAccount{}))
	assert.EqualValues(t, 0, countRows(t, db, &model.Account{}))

	var pending model.PendingAccount
	require.NoError(t, db.First(&pending).Error)
	assert.Equal(t, "alice", pending.Username)
	assert.Equal(t, crypto.Digest("alice"), pending.HashedUsername)
	assert.Equal(t, crypto.Digest("secret"), pending.Password)
	assert.Equal(t, "alice@example.com", pending.Email)
	assert.Equal(t, 28, pending.Age)
	assert.Equal(t, "555-0100", pending.PhoneNumber)
}

func TestRegisterDuplicateOfActiveUsername(t *testing.T) {
	s, db, _ := newAccountService(t)

	register(t, s, "alice")
	require.True(t, s.Approve("root", pendingID(t, db, "alice")).OK())

	result := s.Register("alice", "other", "other@example.com", 40, "555-0199")
	assert.Equal(t, http.StatusBadRequest, result.Status)
	assert.EqualValues(t, 0, countRows(t, db, &model.PendingAccount{}))
}

func TestRegisterDuplicatePendingUsername(t *testing.T) {
	s, db, _ := newAccountService(t)

	register(t, s, "alice")
	result := s.Register("alice", "other", "other@example.com", 40, "555-0199")
	assert.Equal(t, http.StatusBadRequest, result.Status)
	assert.EqualValues(t, 1, countRows(t, db, &model.PendingAccount{}))
}

func TestLoginRequiresApproval(t *testing.T) {
	s, db, _ := newAccountService(t)
	register(t, s, "alice")

	// Pending accounts cannot log in.
	result := s.Login("alice", "alice-pw")
	assert.Equal(t, http.StatusBadRequest, result.Status)

	require.True(t, s.Approve("root", pendingID(t, db, "alice")).OK())

	assert.True(t, s.Login("alice", "alice-pw").OK())
	assert.Equal(t, http.StatusBadRequest, s.Login("alice", "wrong").Status)
	assert.Equal(t, http.StatusBadRequest, s.Login("nobody", "alice-pw").Status)
}

func TestApproveMovesRecordPreservingFields(t *testing.T) {
	s, db, _ := newAccountService(t)
	register(t, s, "alice")

	var pending model.PendingAccount
	require.NoError(t, db.First(&pending).Error)

	result := s.Approve("root", pending.UserId)
	require.True(t, result.OK(), result.Msg)

	assert.EqualValues(t, 0, countRows(t, db, &model.PendingAccount{}))
	assert.EqualValues(t, 1, countRows(t, db, &model.Account{}))

	var active model.Account
	require.NoError(t, db.First(&active).Error)
	assert.Equal(t, model.Account(pending), active)
}

func TestApproveUnknownIDIsNotFound(t *testing.T) {
	s, _, _ := newAccountService(t)
	assert.Equal(t, http.StatusNotFound, s.Approve("root", 9999).Status)
}

func TestApproveConflictLeavesBothCollectionsIntact(t *testing.T) {
	s, db, _ := newAccountService(t)

	register(t, s, "alice")
	require.True(t, s.Approve("root", pendingID(t, db, "alice")).OK())

	// Same phone number as the active account, different username.
	result := s.Register("bob", "pw", "bob@example.com", 35, "555-alice")
	require.True(t, result.OK())

	approveResult := s.Approve("root", pendingID(t, db, "bob"))
	assert.Equal(t, http.StatusBadRequest, approveResult.Status)

	// The pending account stays, and no duplicate active account appears.
	assert.EqualValues(t, 1, countRows(t, db, &model.PendingAccount{}))
	assert.EqualValues(t, 1, countRows(t, db, &model.Account{}))
}

func TestDeleteThenApproveRoundTrips(t *testing.T) {
	s, db, _ := newAccountService(t)

	register(t, s, "alice")
	require.True(t, s.Approve("root", pendingID(t, db, "alice")).OK())

	var before model.Account
	require.NoError(t, db.First(&before).Error)

	require.True(t, s.Delete("root", before.UserId).OK())
	assert.EqualValues(t, 0, countRows(t, db, &model.Account{}))
	assert.EqualValues(t, 1, countRows(t, db, &model.PendingAccount{}))

	require.True(t, s.Approve("root", before.UserId).OK())

	var after model.Account
	require.NoError(t, db.First(&after).Error)
	assert.Equal(t, before, after)
}

func TestDeleteUnknownIDIsNotFound(t *testing.T) {
	s, _, _ := newAccountService(t)
	assert.Equal(t, http.StatusNotFound, s.Delete("root", 42).Status)
}

func TestDenyRemovesPendingOutright(t *testing.T) {
	s, db, _ := newAccountService(t)
	register(t, s, "alice")

	require.True(t, s.Deny("root", pendingID(t, db, "alice")).OK())
	assert.EqualValues(t, 0, countRows(t, db, &model.PendingAccount{}))

	assert.Equal(t, http.StatusNotFound, s.Deny("root", 9999).Status)
}

func TestResetPasswordOverwritesDigest(t *testing.T) {
	s, db, _ := newAccountService(t)
	register(t, s, "alice")
	require.True(t, s.Approve("root", pendingID(t, db, "alice")).OK())

	require.True(t, s.ResetPassword("root", "alice", "fresh-pw").OK())

	assert.True(t, s.Login("alice", "fresh-pw").OK())
	assert.Equal(t, http.StatusBadRequest, s.Login("alice", "alice-pw").Status)
}

func TestAuthenticateAdmin(t *testing.T) {
	s, db, logDir := newAccountService(t)

	require.NoError(t, db.Create(&model.AdminAccount{
		Username: "root",
		Password: crypto.Digest("root-pw"),
	}).Error)

	admin, authenticated := s.AuthenticateAdmin("root", "root-pw")
	require.True(t, authenticated)
	assert.Equal(t, "root", admin.Username)

	_, authenticated = s.AuthenticateAdmin("root", "wrong")
	assert.False(t, authenticated)
	_, authenticated = s.AuthenticateAdmin("intruder", "root-pw")
	assert.False(t, authenticated)

	// Failed attempts are audited with the attempted username.
	audit, err := os.ReadFile(filepath.Join(logDir, "admin_audit.log"))
	require.NoError(t, err)
	assert.Contains(t, string(audit), "Admin: intruder - Action: Login - Status: Failed")
	assert.Contains(t, string(audit), "Admin: root - Action: Login - Status: Success")
}

func TestAccountActivityIsAppended(t *testing.T) {
	s, db, logDir := newAccountService(t)
	register(t, s, "alice")
	require.True(t, s.Approve("root", pendingID(t, db, "alice")).OK())
	require.True(t, s.Login("alice", "alice-pw").OK())

	activity, err := os.ReadFile(filepath.Join(logDir, "activity.log"))
	require.NoError(t, err)
	assert.Contains(t, string(activity), "alice registered")
	assert.Contains(t, string(activity), "alice logged in")
}
