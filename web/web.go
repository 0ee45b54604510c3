// Package web provides the web server for the blog platform: routing,
// session handling and the HTTP lifecycle.
package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"

	"blog-ui/config"
	"blog-ui/database"
	"blog-ui/logger"
	"blog-ui/util/random"
	"blog-ui/web/cache"
	"blog-ui/web/controller"
	"blog-ui/web/middleware"
	"blog-ui/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionCookieName = "blog-ui"

// Server is the blog platform web server.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index *controller.IndexController
	posts *controller.PostController
	admin *controller.AdminController

	accountService *service.AccountService
	postService    *service.PostService

	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// sessionStore picks the redis-backed store when an address is
// configured, the cookie store otherwise.
func (s *Server) sessionStore(settings *config.Settings) (sessions.Store, error) {
	secret := settings.Web.SessionSecret
	if secret == "" {
		// Sessions won't survive a restart without a configured secret.
		secret = random.Seq(32)
	}

	if settings.Redis.Addr != "" {
		client, err := cache.NewRedisClient(settings.Redis.Addr, settings.Redis.Password, settings.Redis.DB)
		if err != nil {
			return nil, err
		}
		logger.Info("using redis session store at", settings.Redis.Addr)
		return cache.NewRedisStore(client, []byte(secret)), nil
	}
	return cookie.NewStore([]byte(secret)), nil
}

func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()
	settings := config.GetSettings()

	store, err := s.sessionStore(settings)
	if err != nil {
		return nil, err
	}
	if settings.Web.SessionMaxAge > 0 {
		store.Options(sessions.Options{
			Path:     "/",
			MaxAge:   settings.Web.SessionMaxAge,
			HttpOnly: true,
		})
	}

	basePath := settings.Web.BasePath

	engine.Use(middleware.RequestID())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(sessions.Sessions(sessionCookieName, store))
	engine.Use(func(c *gin.Context) {
		c.Set("base_path", basePath)
	})

	// Each registry gets its storage handle injected once; the post
	// registry resolves the current month's database per operation.
	activity := service.NewActivityLog(config.GetActivityLogPath())
	audit := service.NewAdminAuditLog(config.GetAdminAuditLogPath())
	s.accountService = service.NewAccountService(database.GetDB(), activity, audit)
	s.postService = service.NewPostService(database.OpenCurrentPostDB, activity)

	g := engine.Group(basePath)
	s.index = controller.NewIndexController(g, s.accountService)
	s.posts = controller.NewPostController(g, s.postService)
	s.admin = controller.NewAdminController(g, s.accountService)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// Start initializes the router and serves until Stop is called.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	settings := config.GetSettings()
	addr := net.JoinHostPort(settings.Web.Listen, strconv.Itoa(settings.Web.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.httpServer = &http.Server{Handler: engine}
	go func() {
		if err := s.httpServer.Serve(s.listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server error:", err)
		}
	}()

	logger.Infof("web server running on %s", listener.Addr().String())
	return nil
}

// Stop shuts the server down and releases its resources.
func (s *Server) Stop() error {
	s.cancel()

	if s.httpServer != nil {
		// Shutdown closes the listener as well.
		return s.httpServer.Shutdown(context.Background())
	}
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}
