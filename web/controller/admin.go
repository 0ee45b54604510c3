package controller

import (
	"net/http"

	"blog-ui/logger"
	"blog-ui/web/service"
	"blog-ui/web/session"

	"github.com/gin-gonic/gin"
)

// UserIDForm identifies an account for the moderation operations.
type UserIDForm struct {
	UserID int `json:"user_id" form:"user_id"`
}

// ResetPasswordForm carries an admin-driven password reset.
type ResetPasswordForm struct {
	Username    string `json:"username" form:"username"`
	NewPassword string `json:"new_password" form:"new_password"`
}

// AdminController is the moderation console: admin login plus the
// approve/deny/delete/reset operations over the account registry.
type AdminController struct {
	BaseController

	accountService *service.AccountService
}

func NewAdminController(g *gin.RouterGroup, accountService *service.AccountService) *AdminController {
	a := &AdminController{accountService: accountService}
	a.initRouter(g)
	return a
}

func (a *AdminController) initRouter(g *gin.RouterGroup) {
	g.POST("/admin/login", a.login)
	g.POST("/admin/logout", a.logout)

	admin := g.Group("/admin")
	admin.Use(a.checkAdmin)
	admin.GET("/users", a.listActive)
	admin.GET("/pending", a.listPending)
	admin.POST("/approve", a.approve)
	admin.POST("/deny", a.deny)
	admin.POST("/delete", a.delete)
	admin.POST("/resetPassword", a.resetPassword)
}

func (a *AdminController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid form data")
		return
	}

	admin, authenticated := a.accountService.AuthenticateAdmin(form.Username, form.Password)
	if !authenticated {
		logger.Warningf("failed admin login for %q, IP: %q", form.Username, getRemoteIp(c))
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid admin credentials")
		return
	}

	if err := session.SetLoginAdmin(c, admin.Username); err != nil {
		logger.Warning("unable to save session:", err)
		pureJsonMsg(c, http.StatusInternalServerError, false, "Login failed")
		return
	}

	logger.Infof("admin %s logged in, IP: %s", admin.Username, getRemoteIp(c))
	pureJsonMsg(c, http.StatusOK, true, "Admin login successful")
}

func (a *AdminController) logout(c *gin.Context) {
	if username := session.GetLoginAdmin(c); username != "" {
		logger.Infof("admin %s logged out", username)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	pureJsonMsg(c, http.StatusOK, true, "Admin has been logged out")
}

func (a *AdminController) listActive(c *gin.Context) {
	accounts, err := a.accountService.ListActive()
	if err != nil {
		pureJsonMsg(c, http.StatusInternalServerError, false, "Internal server error")
		return
	}
	jsonObj(c, accounts)
}

func (a *AdminController) listPending(c *gin.Context) {
	pending, err := a.accountService.ListPending()
	if err != nil {
		pureJsonMsg(c, http.StatusInternalServerError, false, "Internal server error")
		return
	}
	jsonObj(c, pending)
}

func (a *AdminController) approve(c *gin.Context) {
	var form UserIDForm
	if err := c.ShouldBind(&form); err != nil || form.UserID == 0 {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid user ID")
		return
	}
	result := a.accountService.Approve(session.GetLoginAdmin(c), form.UserID)
	jsonResult(c, result)
}

func (a *AdminController) deny(c *gin.Context) {
	var form UserIDForm
	if err := c.ShouldBind(&form); err != nil || form.UserID == 0 {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid user ID")
		return
	}
	result := a.accountService.Deny(session.GetLoginAdmin(c), form.UserID)
	jsonResult(c, result)
}

func (a *AdminController) delete(c *gin.Context) {
	var form UserIDForm
	if err := c.ShouldBind(&form); err != nil || form.UserID == 0 {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid user ID")
		return
	}
	result := a.accountService.Delete(session.GetLoginAdmin(c), form.UserID)
	jsonResult(c, result)
}

func (a *AdminController) resetPassword(c *gin.Context) {
	var form ResetPasswordForm
	if err := c.ShouldBind(&form); err != nil || form.Username == "" || form.NewPassword == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "Username and new password required")
		return
	}
	result := a.accountService.ResetPassword(session.GetLoginAdmin(c), form.Username, form.NewPassword)
	jsonResult(c, result)
}
