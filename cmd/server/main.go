package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/clinic-admin/internal/config"
	"github.com/diewo77/clinic-admin/internal/db"
	"github.com/diewo77/clinic-admin/internal/models"
	"github.com/diewo77/clinic-admin/internal/server"
	"github.com/diewo77/clinic-admin/internal/upload"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Str("role", "server").Logger()
	cfg := config.Load()

	dbConn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if *migrateOnlyFlag {
		log.Info().Msg("migrations completed; exiting as requested")
		return
	}

	if err := ensureAdmin(dbConn); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	handler := server.New(server.Options{
		DB:        dbConn,
		Uploader:  upload.NewDiskUploader(cfg.UploadDir),
		UploadDir: cfg.UploadDir,
		Logger:    log,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}
	go func() {
		log.Info().Str("env", cfg.Env).Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}

// ensureAdmin seeds the first administrator account from ADMIN_USERNAME /
// ADMIN_EMAIL / ADMIN_PASSWORD when no admin exists yet. Without those vars
// a fresh install simply has no admin and the area stays locked.
func ensureAdmin(dbConn *gorm.DB) error {
	var count int64
	if err := dbConn.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	username := os.Getenv("ADMIN_USERNAME")
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || email == "" || password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{Username: username, Email: email, Password: string(hash), IsAdmin: true}
	return dbConn.Create(&admin).Error
}
