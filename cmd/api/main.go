package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/univent/timetable-api/api/swagger"
	"github.com/univent/timetable-api/internal/handler"
	internalmiddleware "github.com/univent/timetable-api/internal/middleware"
	"github.com/univent/timetable-api/internal/repository"
	"github.com/univent/timetable-api/internal/service"
	"github.com/univent/timetable-api/pkg/cache"
	"github.com/univent/timetable-api/pkg/config"
	"github.com/univent/timetable-api/pkg/database"
	"github.com/univent/timetable-api/pkg/logger"
	corsmiddleware "github.com/univent/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/univent/timetable-api/pkg/middleware/requestid"
)

// @title Timetable API
// @version 1.0.0
// @description Course timetable generation service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, timetable cache disabled", zap.Error(err))
		redisClient = nil
	}

	teacherRepo := repository.NewTeacherRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	slotRepo := repository.NewScheduleSlotRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	teacherSvc := service.NewTeacherService(teacherRepo, nil, logr)
	groupSvc := service.NewGroupService(groupRepo, nil, logr)
	roomSvc := service.NewRoomService(roomRepo, nil, logr)
	courseSvc := service.NewCourseService(courseRepo, teacherRepo, groupRepo, nil, logr)
	timetableSvc := service.NewTimetableService(slotRepo, courseRepo, teacherRepo, groupRepo, roomRepo, cacheRepo, metricsSvc, cfg.Timetable.CacheTTL, logr)
	scheduleSvc := service.NewScheduleService(courseRepo, teacherRepo, roomRepo, slotRepo, timetableSvc, metricsSvc, nil, logr)

	teacherHandler := handler.NewTeacherHandler(teacherSvc)
	groupHandler := handler.NewGroupHandler(groupSvc)
	roomHandler := handler.NewRoomHandler(roomSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		teachers := api.Group("/teachers")
		teachers.GET("", teacherHandler.List)
		teachers.POST("", teacherHandler.Create)
		teachers.GET("/:id", teacherHandler.Get)
		teachers.PUT("/:id", teacherHandler.Update)
		teachers.DELETE("/:id", teacherHandler.Delete)

		groups := api.Group("/groups")
		groups.GET("", groupHandler.List)
		groups.POST("", groupHandler.Create)
		groups.GET("/:id", groupHandler.Get)
		groups.PUT("/:id", groupHandler.Update)
		groups.DELETE("/:id", groupHandler.Delete)

		rooms := api.Group("/rooms")
		rooms.GET("", roomHandler.List)
		rooms.POST("", roomHandler.Create)
		rooms.GET("/:id", roomHandler.Get)
		rooms.PUT("/:id", roomHandler.Update)
		rooms.DELETE("/:id", roomHandler.Delete)

		courses := api.Group("/courses")
		courses.GET("", courseHandler.List)
		courses.POST("", courseHandler.Create)
		courses.GET("/:id", courseHandler.Get)
		courses.PUT("/:id", courseHandler.Update)
		courses.DELETE("/:id", courseHandler.Delete)

		api.POST("/schedule/generate", scheduleHandler.Generate)
		api.POST("/schedule/clear", scheduleHandler.Clear)
		api.GET("/timetable", timetableHandler.Grid)
		api.GET("/timetable/export", timetableHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("forced shutdown", zap.Error(err))
	}
	if err := cacheRepo.Close(); err != nil {
		logr.Warn("failed to close redis", zap.Error(err))
	}
}
