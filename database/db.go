// Package database owns the storage lifecycle: the accounts database
// (users, pending_users, admin_users) and the lazily created per-month
// post databases.
package database

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"blog-ui/config"
	"blog-ui/database/model"
	"blog-ui/logger"
	"blog-ui/util/crypto"
	"blog-ui/util/random"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

func initModels() error {
	models := []any{
		&model.Account{},
		&model.PendingAccount{},
		&model.AdminAccount{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			logger.Errorf("error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initAdmin creates the bootstrap admin when the admin table is empty.
// The credential comes from config when set; otherwise the password is
// generated and surfaced once so the operator can rotate it.
func initAdmin() error {
	empty, err := isTableEmpty("admin_users")
	if err != nil {
		logger.Errorf("error checking if admin_users table is empty: %v", err)
		return err
	}
	if !empty {
		return nil
	}

	settings := config.GetSettings()
	username := settings.Admin.Username
	if username == "" {
		username = "admin"
	}
	password := settings.Admin.Password
	generated := false
	if password == "" {
		password = random.Seq(12)
		generated = true
	}

	admin := &model.AdminAccount{
		Username: username,
		Password: crypto.Digest(password),
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	if generated {
		logger.Warningf("created bootstrap admin %q with generated password %q - rotate this credential", username, password)
	} else {
		logger.Warningf("created bootstrap admin %q from configured credentials - rotate this credential", username)
	}
	return nil
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

func gormConfig() *gorm.Config {
	var gl gormlogger.Interface
	if config.IsDebug() {
		gl = gormlogger.Default
	} else {
		gl = gormlogger.Discard
	}
	return &gorm.Config{
		Logger:         gl,
		TranslateError: true,
	}
}

func openSQLite(dbPath string) (*gorm.DB, error) {
	dir := path.Dir(dbPath)
	if err := os.MkdirAll(dir, fs.ModePerm); err != nil {
		return nil, err
	}
	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	return gorm.Open(sqlite.Open(dsn), gormConfig())
}

// InitDB opens the accounts database, migrates the account models and
// bootstraps the admin account.
func InitDB(dbPath string) error {
	var err error
	db, err = openSQLite(dbPath)
	if err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	return initAdmin()
}

func CloseDB() error {
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// CurrentPostMonth names the partition post operations resolve to: always
// the calendar month at call time, never the post's creation month.
func CurrentPostMonth() string {
	return time.Now().Format("2006_01")
}

// PostDBCloser releases the per-request post database connection. Callers
// must invoke it exactly once on every exit path.
type PostDBCloser func() error

// OpenPostDB opens the post database for the given month under folder,
// creating the file and its tables on first use.
func OpenPostDB(folder, month string) (*gorm.DB, PostDBCloser, error) {
	dbPath := filepath.Join(folder, fmt.Sprintf("posts_%s.db", month))
	pdb, err := openSQLite(dbPath)
	if err != nil {
		return nil, nil, err
	}
	closer := func() error {
		sqlDB, err := pdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	if err := pdb.AutoMigrate(&model.Post{}, &model.DeletedPost{}); err != nil {
		_ = closer()
		return nil, nil, err
	}
	return pdb, closer, nil
}

// OpenCurrentPostDB opens the configured post database for the current
// calendar month.
func OpenCurrentPostDB() (*gorm.DB, PostDBCloser, error) {
	return OpenPostDB(config.GetPostDBFolderPath(), CurrentPostMonth())
}

// ResetAdminCredential replaces the bootstrap admin credential out of
// band (the `admin --reset` subcommand). It returns the new password so
// the CLI can print it.
func ResetAdminCredential(username string) (string, error) {
	password := random.Seq(12)
	digest := crypto.Digest(password)

	admin := &model.AdminAccount{Username: username, Password: digest}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.AdminAccount{}).Error; err != nil {
			return err
		}
		return tx.Create(admin).Error
	})
	if err != nil {
		return "", err
	}
	return password, nil
}
