package controller

import (
	"net/http"

	"blog-ui/logger"
	"blog-ui/web/service"
	"blog-ui/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request body.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// RegisterForm represents the self-registration request body. The
// presentation layer supplies the fields as validated plain strings.
type RegisterForm struct {
	Username    string `json:"username" form:"username"`
	Password    string `json:"password" form:"password"`
	Email       string `json:"email" form:"email"`
	Age         int    `json:"age" form:"age"`
	PhoneNumber string `json:"phone_number" form:"phone_number"`
}

// IndexController handles user registration, login and logout.
type IndexController struct {
	BaseController

	accountService *service.AccountService
}

func NewIndexController(g *gin.RouterGroup, accountService *service.AccountService) *IndexController {
	a := &IndexController{accountService: accountService}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.POST("/register", a.register)
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
}

func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid form data")
		return
	}
	if form.Username == "" || form.Password == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "Username and password are required")
		return
	}

	result := a.accountService.Register(form.Username, form.Password, form.Email, form.Age, form.PhoneNumber)
	jsonResult(c, result)
}

func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid form data")
		return
	}
	if form.Username == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "Please enter your username")
		return
	}
	if form.Password == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "Please enter your password")
		return
	}

	result := a.accountService.Login(form.Username, form.Password)
	if !result.OK() {
		logger.Warningf("wrong username or password for %q, IP: %q", form.Username, getRemoteIp(c))
		jsonResult(c, result)
		return
	}

	if err := session.SetLoginUser(c, form.Username); err != nil {
		logger.Warning("unable to save session:", err)
		pureJsonMsg(c, http.StatusInternalServerError, false, "Login failed")
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", form.Username, getRemoteIp(c))
	jsonResult(c, result)
}

func (a *IndexController) logout(c *gin.Context) {
	if username := session.GetLoginUser(c); username != "" {
		logger.Infof("%s logged out successfully", username)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
}
