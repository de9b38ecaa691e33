package startup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casbin/casbin"
	"github.com/go-redis/redis"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/authorization"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/casbinAuthorization"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/handlers"
	application "github.com/Mazharul-Islam-2046/bnBreeze-server/service"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/startup/config"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/store"
)

const shutdownWait = 15 * time.Second

type Server struct {
	config *config.Config
	logger *logrus.Logger
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

func (server *Server) Start() {
	logger, err := NewLogger(server.config)
	if err != nil {
		logrus.Fatalf("Failed to initialize logger: %v", err)
	}
	server.logger = logger

	tracer, shutdownTracer, err := initTracer(server.config.JaegerAddress)
	if err != nil {
		logger.Fatalf("Failed to initialize exporter: %v", err)
	}
	defer func() {
		if err := shutdownTracer(); err != nil {
			logger.Errorf("Error shutting down tracer provider: %v", err)
		}
	}()

	mongoClient := server.initMongoClient()
	defer func() {
		ctx, cancel := shutdownContext()
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Errorf("Error disconnecting from MongoDB: %v", err)
		}
	}()
	database := mongoClient.Database(server.config.DBName)

	redisClient := server.initRedisClient()
	defer redisClient.Close()

	userStore := server.initUserStore(database, tracer)
	propertyStore := server.initPropertyStore(database, tracer)
	tokenCache := server.initTokenCache(redisClient, tracer)
	issuer := server.initTokenIssuer()

	authService := application.NewAuthService(userStore, tokenCache, issuer, tracer)
	userService := application.NewUserService(userStore, tracer)
	propertyService := application.NewPropertyService(propertyStore, tracer)

	responder := handlers.NewResponder(logger, server.config.IsDevelopment())
	authHandler := handlers.NewAuthHandler(authService, responder, tracer)
	userHandler := handlers.NewUserHandler(userService, responder, tracer)
	propertyHandler := handlers.NewPropertyHandler(propertyService, responder, tracer)

	enforcer := server.initEnforcer()
	router := handlers.NewRouter(authHandler, userHandler, propertyHandler, enforcer, responder, logger)

	server.start(router)
}

func (server *Server) initMongoClient() *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := store.GetClient(ctx, server.config.MongoURI)
	if err != nil {
		server.logger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := store.EnsureIndexes(ctx, client.Database(server.config.DBName)); err != nil {
		server.logger.Fatalf("Failed to create MongoDB indexes: %v", err)
	}
	server.logger.Info("Connected to MongoDB")
	return client
}

func (server *Server) initRedisClient() *redis.Client {
	client, err := store.GetRedisClient(server.config.RedisHost, server.config.RedisPort)
	if err != nil {
		server.logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	return client
}

func (server *Server) initUserStore(database *mongo.Database, tracer trace.Tracer) domain.UserStore {
	return store.NewUserMongoDBStore(database, tracer)
}

func (server *Server) initPropertyStore(database *mongo.Database, tracer trace.Tracer) domain.PropertyStore {
	return store.NewPropertyMongoDBStore(database, tracer)
}

func (server *Server) initTokenCache(client *redis.Client, tracer trace.Tracer) domain.TokenCache {
	return store.NewTokenRedisCache(client, tracer, server.logger)
}

func (server *Server) initTokenIssuer() *authorization.TokenIssuer {
	issuer, err := authorization.NewTokenIssuer(authorization.TokenConfig{
		AccessSecret:  server.config.AccessTokenSecret,
		AccessTTL:     server.config.AccessTokenExpiry,
		RefreshSecret: server.config.RefreshTokenSecret,
		RefreshTTL:    server.config.RefreshTokenExpiry,
	})
	if err != nil {
		server.logger.Fatalf("Failed to create token issuer: %v", err)
	}
	return issuer
}

func (server *Server) initEnforcer() *casbin.Enforcer {
	enforcer, err := casbinAuthorization.NewEnforcer(server.config.RbacModel, server.config.RbacPolicy)
	if err != nil {
		server.logger.Fatalf("Failed to load access policy: %v", err)
	}
	return enforcer
}

func (server *Server) start(router http.Handler) {
	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{server.config.CorsOrigin}),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "traceparent"}),
		gorillaHandlers.AllowCredentials(),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", server.config.Port),
		Handler:      cors(router),
		ReadTimeout:  server.config.ReadTimeout,
		WriteTimeout: server.config.WriteTimeout,
		IdleTimeout:  server.config.IdleTimeout,
	}

	go func() {
		server.logger.Infof("Server listening on port %s (%s)", server.config.Port, server.config.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.logger.Errorf("Server stopped: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	ctx, cancel := shutdownContext()
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		server.logger.Errorf("Error shutting down server: %v", err)
		return
	}
	server.logger.Info("Server gracefully stopped")
}

func shutdownContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), shutdownWait)
}
