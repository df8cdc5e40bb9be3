package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/wikid/internal/config"
	"github.com/xxxsen/wikid/internal/filestore"
	"github.com/xxxsen/wikid/internal/handler"
	"github.com/xxxsen/wikid/internal/middleware"
	"github.com/xxxsen/wikid/internal/render"
	"github.com/xxxsen/wikid/internal/repo"
	"github.com/xxxsen/wikid/internal/service"
	"github.com/xxxsen/wikid/internal/session"
	"github.com/xxxsen/wikid/internal/styles"
	"github.com/xxxsen/wikid/internal/view"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "wikid",
		Short: "wikid personal wiki server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run wikid server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
		zap.String("session", cfg.Session.Type),
	)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("file store ready", zap.String("type", store.Type()))
	sessions, err := session.New(cfg.Session)
	if err != nil {
		return fmt.Errorf("init session store: %w", err)
	}
	views, err := view.New()
	if err != nil {
		return fmt.Errorf("init views: %w", err)
	}
	compiler, closeCompiler := newStyleCompiler(cfg.Styles)
	defer closeCompiler()

	authService := service.NewAuthService(repo.NewUserRepo(store))
	pageService := service.NewPageService(repo.NewPageRepo(store), render.New())
	styleService := styles.NewService(os.DirFS(cfg.Styles.Dir), compiler)

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService, sessions, views),
		Pages:     handler.NewPageHandler(pageService, views),
		Styles:    handler.NewStyleHandler(styleService),
		Sessions:  sessions,
		RateLimit: time.Duration(cfg.RateLimitSeconds) * time.Second,
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	engine, err := webapi.NewEngine(
		"/",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", addr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}

// newStyleCompiler starts Dart Sass, falling back to serving sources as-is
// when the embedded compiler cannot be launched.
func newStyleCompiler(cfg config.StylesConfig) (styles.Compiler, func()) {
	sass, err := styles.NewDartSass(cfg.SassBinary, cfg.Dir)
	if err != nil {
		logutil.GetLogger(context.Background()).Warn("dart sass unavailable, serving stylesheets uncompiled", zap.Error(err))
		return styles.Passthrough{}, func() {}
	}
	return sass, func() {
		if err := sass.Close(); err != nil {
			logutil.GetLogger(context.Background()).Warn("close dart sass", zap.Error(err))
		}
	}
}
