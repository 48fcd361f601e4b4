package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user_accounts/internal/handlers"
	"user_accounts/internal/logger"
	"user_accounts/internal/repository"
	"user_accounts/internal/repository/db"
	"user_accounts/internal/server"
	"user_accounts/internal/service"

	"github.com/spf13/viper"
)

func main() {
	// init logger early so config errors are reported through it
	log := logger.Get(logger.InfoLevel)

	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	database, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	secret := viper.GetString("token.secret")
	if secret == "" {
		log.Fatalw("token.secret is not configured; set TOKEN_SECRET")
	}

	// wire dependencies
	repos := repository.NewRepository(database)
	services := service.NewService(repos, service.Config{
		TokenSecret: secret,
		TokenTTL:    viper.GetDuration("token.ttl"),
	})
	apiHandler := handlers.NewHandler(services, log)

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	// Environment overrides for deployment-specific values.
	viper.AutomaticEnv()
	_ = viper.BindEnv("port", "PORT")
	_ = viper.BindEnv("db.path", "DB_PATH")
	_ = viper.BindEnv("token.secret", "TOKEN_SECRET")

	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "accounts.db")
		dbPath = "accounts.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
