package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ridetracker/internal/auth"
	intconfig "ridetracker/internal/config"
	"ridetracker/internal/db"
	router "ridetracker/internal/http"
	"ridetracker/internal/http/handlers"
	"ridetracker/internal/repositories"
	"ridetracker/internal/utils"

	firebase "firebase.google.com/go/v4"
	"github.com/sirupsen/logrus"
)

func main() {
	env := intconfig.LoadEnv()
	utils.InitLogger(env.LogLevel, env.LogFormat)

	ctx := context.Background()

	hd := &handlers.Handler{
		Location: utils.LoadLocation(env.ReportTimezone),
		Now:      utils.NowUTC,
	}

	var app *firebase.App
	if env.UsesFirebase() {
		var err error
		app, err = intconfig.NewFirebaseApp(ctx, env)
		if err != nil {
			utils.Log.WithError(err).Fatal("firebase init failed")
		}
	}

	// MySQL backs trips and settings in mysql mode, and local accounts in
	// either mode.
	if env.StoreBackend == intconfig.StoreMySQL || env.AuthMode == intconfig.AuthLocal {
		sqlDB, err := intconfig.ConnectDB(env.DBDSN)
		if err != nil {
			utils.Log.WithError(err).Fatal("mysql connect failed")
		}
		defer intconfig.CloseDB()
		schemaCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		err = db.EnsureSchema(schemaCtx, sqlDB)
		cancel()
		if err != nil {
			utils.Log.WithError(err).Fatal("schema setup failed")
		}
		hd.Users = repositories.UsersRepository{DB: sqlDB}
		if env.StoreBackend == intconfig.StoreMySQL {
			trips := repositories.TripsRepository{DB: sqlDB}
			hd.Trips = trips
			hd.Settings = repositories.SettingsRepository{DB: sqlDB}
			hd.Pinger = trips
		}
	}

	if env.StoreBackend == intconfig.StoreFirestore {
		fs, err := app.Firestore(ctx)
		if err != nil {
			utils.Log.WithError(err).Fatal("firestore client failed")
		}
		defer fs.Close()
		store := repositories.FirestoreStore{Client: fs}
		hd.Trips = store
		hd.Settings = store
		hd.Pinger = store
	}
	if hd.Trips == nil {
		utils.Log.WithField("store", env.StoreBackend).Fatal("unknown STORE_BACKEND")
	}

	var verifier auth.TokenVerifier
	switch env.AuthMode {
	case intconfig.AuthFirebase:
		fv, err := auth.NewFirebaseVerifier(ctx, app)
		if err != nil {
			utils.Log.WithError(err).Fatal("firebase auth init failed")
		}
		verifier = fv
	case intconfig.AuthLocal:
		tokens := auth.NewTokenService(env.JWTSecret, env.JWTExpiresIn)
		hd.Tokens = tokens
		verifier = tokens
	default:
		utils.Log.WithField("auth", env.AuthMode).Fatal("unknown AUTH_MODE")
	}

	// Router (Gin engine)
	r := router.NewRouter(env, hd, verifier)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.Log.WithFields(logrus.Fields{
			"addr":  env.AppAddr,
			"store": env.StoreBackend,
			"auth":  env.AuthMode,
		}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	utils.Log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Log.WithError(err).Fatal("server shutdown failed")
	}

	utils.Log.Info("server stopped")
}
