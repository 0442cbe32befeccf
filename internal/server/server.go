package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flowtasks/internal/config"
	"flowtasks/internal/handler"
	"flowtasks/internal/middleware"
	"flowtasks/internal/model"
	"flowtasks/internal/notify"
	"flowtasks/internal/service"
	"flowtasks/internal/state"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	// Handler is Engine wrapped with CORS; serve this one
	Handler http.Handler
	// DB is nil with the memory store
	DB      *gorm.DB
	Hub     *notify.Hub
	Session *state.Session
	Config  *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	stores, err := openStores(cfg)
	if err != nil {
		return nil, err
	}

	opts := service.Options{
		Latency:     service.Latency{Min: cfg.LatencyMin, Max: cfg.LatencyMax},
		DefaultList: model.KeyOf(cfg.DefaultList),
	}
	if cfg.SeedData {
		if err := seedIfEmpty(ctx, stores, opts); err != nil {
			return nil, err
		}
	}

	// Initialize services and the session
	taskService, listService := service.New(stores.tasks, stores.lists, opts)
	hub := notify.NewHub()
	session := state.NewSession(taskService, listService, notify.Multi{hub, notify.LogNotifier{}})
	if err := session.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Initial session load failed, retry with POST /session/reload")
	}

	// Setup Gin
	if err := handler.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("❌ failed to register validators: %w", err)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	// Initialize handlers
	taskHandler := handler.NewTaskHandler(session.Tasks, taskService)
	listHandler := handler.NewListHandler(session, listService)
	viewHandler := handler.NewViewHandler(session, cfg.CompletedPreview, time.Now)
	sessionHandler := handler.NewSessionHandler(session)

	// List routes
	r.GET("/lists", listHandler.GetAll)
	r.POST("/lists", listHandler.Create)
	r.GET("/lists/:id", listHandler.GetByID)
	r.PUT("/lists/:id", listHandler.Update)
	r.DELETE("/lists/:id", listHandler.Delete)

	// Task routes
	r.GET("/tasks", taskHandler.GetAll)
	r.POST("/tasks", taskHandler.Create)
	r.GET("/tasks/:id", taskHandler.GetByID)
	r.PUT("/tasks/:id", taskHandler.Update)
	r.DELETE("/tasks/:id", taskHandler.Delete)
	r.POST("/tasks/:id/toggle", taskHandler.ToggleComplete)
	r.POST("/tasks/:id/move", taskHandler.MoveTask)

	// Derived views
	r.GET("/views/tasks", viewHandler.Tasks)
	r.GET("/views/counts", viewHandler.Counts)

	// Session
	r.GET("/session", sessionHandler.Status)
	r.POST("/session/reload", sessionHandler.Reload)

	r.GET("/ws", func(c *gin.Context) { hub.ServeWS(c.Writer, c.Request) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	return &Server{
		Engine:  r,
		Handler: c.Handler(r),
		DB:      stores.db,
		Hub:     hub,
		Session: session,
		Config:  cfg,
	}, nil
}

func (s *Server) Run() {
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go s.Hub.Run(hubCtx)

	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Handler,
	}

	go func() {
		log.Info().Msgf("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("❌ Failed to listen")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("❌ Server forced to shutdown")
	}
	stopHub()

	if err := s.Close(); err != nil {
		log.Warn().Err(err).Msg("⚠️  Failed to close database")
	}
	log.Info().Msg("✅ Server exited properly")
}

// Close releases the database connection, if any
func (s *Server) Close() error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
