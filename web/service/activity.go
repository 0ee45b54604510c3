package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"blog-ui/logger"
)

const activityTimeFormat = "2006-01-02 15:04:05"

// ActivityLog is the append-only sink for user and post activity. Append
// failures are logged but never fail the calling operation.
type ActivityLog struct {
	mu   sync.Mutex
	path string
}

func NewActivityLog(path string) *ActivityLog {
	return &ActivityLog{path: path}
}

func (l *ActivityLog) Append(message string) {
	line := fmt.Sprintf("%s - %s\n", time.Now().Format(activityTimeFormat), message)
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := appendLine(l.path, line); err != nil {
		logger.Warning("activity log append failed:", err)
	}
}

func (l *ActivityLog) Appendf(format string, args ...any) {
	l.Append(fmt.Sprintf(format, args...))
}

// AdminAuditLog is the separate append-only sink for admin actions. Every
// record carries the acting admin identity, the action and its outcome;
// failed attempts are recorded with the username the caller supplied.
type AdminAuditLog struct {
	mu   sync.Mutex
	path string
}

func NewAdminAuditLog(path string) *AdminAuditLog {
	return &AdminAuditLog{path: path}
}

func (l *AdminAuditLog) Append(actor, action, outcome string) {
	line := fmt.Sprintf("%s - Admin: %s - Action: %s - Status: %s\n",
		time.Now().Format(activityTimeFormat), actor, action, outcome)
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := appendLine(l.path, line); err != nil {
		logger.Warning("admin audit log append failed:", err)
	}
}

func appendLine(path, line string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(line)
	return err
}
