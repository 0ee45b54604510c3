// Package session stores the opaque authenticated-identity markers in the
// request-scoped cookie session. There are no freshness or expiry checks
// beyond the cookie's own MaxAge: a session is valid until cleared.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginUser  = "LOGIN_USER"
	loginAdmin = "LOGIN_ADMIN"
)

func SetLoginUser(c *gin.Context, username string) error {
	s := sessions.Default(c)
	s.Set(loginUser, username)
	return s.Save()
}

// GetLoginUser returns the authenticated username, or "" when the request
// carries no user identity.
func GetLoginUser(c *gin.Context) string {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if username, ok := obj.(string); ok {
			return username
		}
	}
	return ""
}

func IsUserLogin(c *gin.Context) bool {
	return GetLoginUser(c) != ""
}

func SetLoginAdmin(c *gin.Context, username string) error {
	s := sessions.Default(c)
	s.Set(loginAdmin, username)
	return s.Save()
}

// GetLoginAdmin returns the authenticated admin username, or "".
func GetLoginAdmin(c *gin.Context) string {
	s := sessions.Default(c)
	if obj := s.Get(loginAdmin); obj != nil {
		if username, ok := obj.(string); ok {
			return username
		}
	}
	return ""
}

func IsAdminLogin(c *gin.Context) bool {
	return GetLoginAdmin(c) != ""
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: maxAge,
	})
	return s.Save()
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
