package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/loke-social/loke-server/internal/chat"
	"github.com/loke-social/loke-server/internal/config"
	"github.com/loke-social/loke-server/internal/database"
	"github.com/loke-social/loke-server/internal/handlers"
	"github.com/loke-social/loke-server/internal/realtime"
	ws "github.com/loke-social/loke-server/internal/websocket"
	"github.com/loke-social/loke-server/pkg/auth"
)

type Server struct {
	Config *config.Config
	Router *gin.Engine
	DB     *database.Database
	Redis  *redis.Client
	Hub    *ws.Hub
}

func NewServer() *Server {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load failed")
	}

	db := &database.Database{}
	if err := db.Connect(cfg.Database.DSN); err != nil {
		log.WithError(err).Fatal("postgres connect failed")
	}

	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.WithError(err).Fatal("invalid REDIS_URL")
		}
		rdb = redis.NewClient(opts)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.WithError(err).Fatal("redis connect failed")
		}
	}

	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)

	registry := realtime.NewRegistry()

	var presence realtime.Backend
	if cfg.Realtime.PresenceBackend == config.PresenceRedis {
		presence = realtime.NewRedisBackend(rdb)
	} else {
		presence = realtime.NewLocalBackend(registry)
	}

	hub := ws.NewHub(registry, presence)
	if cfg.Realtime.PresenceBackend == config.PresenceRedis {
		hub.EnableRelay(realtime.NewRelay(rdb, cfg.Realtime.NodeID))
	}

	convStore := database.NewConversationStore(db)
	chatService := chat.NewService(convStore, hub, presence)

	router := gin.Default()
	APIEndpoints(router, &Handlers{
		Auth:         handlers.NewAuthHandler(db, jwtMgr, rdb),
		User:         handlers.NewUserHandler(db),
		Friend:       handlers.NewFriendHandler(db),
		Post:         handlers.NewPostHandler(db),
		Conversation: handlers.NewConversationHandler(chatService),
		Realtime:     handlers.NewRealtimeHandler(chatService),
		WebSocket:    handlers.NewWebSocketHandler(hub),
	}, jwtMgr, rdb, cfg.Realtime.WSPath)

	return &Server{
		Config: cfg,
		Router: router,
		DB:     db,
		Redis:  rdb,
		Hub:    hub,
	}
}

// Run serves until SIGINT/SIGTERM, then drains live connections.
func (s *Server) Run() {
	srv := &http.Server{
		Addr:    s.Config.Server.Addr,
		Handler: s.Router,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server run error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	s.Hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
}
