package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("BLOG_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("BLOG_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("BLOG_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "data"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return filepath.Join(GetDBFolderPath(), GetName()+".db")
}

// GetPostDBFolderPath is the directory holding the per-month post
// databases (posts_YYYY_MM.db).
func GetPostDBFolderPath() string {
	postFolderPath := os.Getenv("BLOG_POST_DB_FOLDER")
	if postFolderPath == "" {
		postFolderPath = filepath.Join(GetDBFolderPath(), "posts")
	}
	return postFolderPath
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("BLOG_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = filepath.Join(GetDBFolderPath(), "log")
	}
	return logFolderPath
}

// GetActivityLogPath is the append-only sink for user and post activity.
func GetActivityLogPath() string {
	return filepath.Join(GetLogFolder(), "activity.log")
}

// GetAdminAuditLogPath is the append-only sink for admin actions.
func GetAdminAuditLogPath() string {
	return filepath.Join(GetLogFolder(), "admin_audit.log")
}
