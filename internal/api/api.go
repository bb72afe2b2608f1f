package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/moneta-finance/moneta/internal/api/auth"
	"github.com/moneta-finance/moneta/internal/api/handler"
	"github.com/moneta-finance/moneta/internal/assets"
	"github.com/moneta-finance/moneta/internal/assistant"
	"github.com/moneta-finance/moneta/internal/config"
	"github.com/moneta-finance/moneta/internal/database"
	"github.com/moneta-finance/moneta/internal/static"
	"golang.org/x/sync/errgroup"
)

const (
	sessionName     = "moneta_session"
	shutdownTimeout = 10 * time.Second
)

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	db        database.DB
	assets    *assets.Manager
	assistant *assistant.Bridge
}

func New(cfg *config.Config, db database.DB, manager *assets.Manager, bridge *assistant.Bridge, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.New(),
		db:        db,
		assets:    manager,
		assistant: bridge,
	}

	if err := s.setupSession(); err != nil {
		return nil, err
	}
	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) setupSession() error {
	key := s.cfg.SessionKey
	if key == "" {
		log.Warn("no session_key configured, generating a random one. Sessions will not survive a restart")
		var err error
		if key, err = config.GenerateSessionKey(); err != nil {
			return err
		}
	}

	store := cookie.NewStore([]byte(key))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	s.ginEngine.Use(
		requestID(),
		requestLogger(),
		gin.Recovery(),
		gzip.Gzip(gzip.DefaultCompression),
		sessions.Sessions(sessionName, store),
	)
	return nil
}

func (s *Server) setupRoutes() error {
	credentials := auth.NewCredentials(s.db, s.cfg.BcryptCost)
	h := handler.New(s.assets, s.assistant, credentials, s.db)

	staticFS, err := static.FS()
	if err != nil {
		return err
	}
	s.ginEngine.StaticFS("/static", http.FS(staticFS))

	s.ginEngine.GET("/", h.Home)
	s.ginEngine.GET("/about", h.About)
	s.ginEngine.GET("/login", h.LoginForm)
	s.ginEngine.POST("/login", h.Login)
	s.ginEngine.GET("/register", h.RegisterForm)
	s.ginEngine.POST("/register", h.Register)
	s.ginEngine.GET("/logout", h.Logout)
	s.ginEngine.GET("/healthz", h.Healthz)

	dashboard := s.ginEngine.Group("/dashboard")
	dashboard.Use(auth.RequireAuth(s.db))

	dashboard.GET("", h.Dashboard)
	dashboard.POST("", h.Dashboard)
	dashboard.GET("/add_asset", h.AddAssetForm)
	dashboard.POST("/add_asset", h.AddAsset)
	dashboard.POST("/remove_asset/:asset_id", h.RemoveAsset)
	dashboard.GET("/modify_asset/:asset_id", h.ModifyAssetForm)
	dashboard.POST("/modify_asset/:asset_id", h.ModifyAsset)

	return nil
}

// Handler returns the http.Handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.ginEngine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting API server", "listen", s.cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("API server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
