// Package controller provides the HTTP handlers for the blog platform:
// user registration and login, post authoring and retrieval, and the
// administrative moderation console.
package controller

import (
	"net/http"

	"blog-ui/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController carries the session/access gate shared by the gated
// controllers. The gate only checks for the presence of the identity
// marker in the session; there are no freshness checks.
type BaseController struct{}

// checkUser rejects requests without a user identity, redirecting
// browsers to the login page.
func (a *BaseController) checkUser(c *gin.Context) {
	if !session.IsUserLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "Please login first")
		} else {
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"login")
		}
		c.Abort()
		return
	}
	c.Next()
}

// checkAdmin rejects requests without an admin identity, redirecting
// browsers to the admin login page.
func (a *BaseController) checkAdmin(c *gin.Context) {
	if !session.IsAdminLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "Admin access required")
		} else {
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"admin/login")
		}
		c.Abort()
		return
	}
	c.Next()
}
