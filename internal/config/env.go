package config

import (
	"os"
	"strings"
	"time"

	"ridetracker/internal/utils"

	"github.com/joho/godotenv"
)

const (
	StoreMySQL     = "mysql"
	StoreFirestore = "firestore"

	AuthLocal    = "local"
	AuthFirebase = "firebase"
)

const defaultDSN = "root:@tcp(127.0.0.1:3306)/ride_income?parseTime=true&loc=UTC&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"

type Env struct {
	AppAddr string
	GinMode string

	DBDSN        string
	StoreBackend string

	AuthMode     string
	JWTSecret    string
	JWTExpiresIn time.Duration

	FirebaseProjectID   string
	FirebaseCredentials string

	ReportTimezone string
	LogLevel       string
	LogFormat      string
	CORSOrigins    []string
}

// LoadEnv reads .env when present, then the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr:             envOr("APP_ADDR", ":8080"),
		GinMode:             strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:               envOr("DB_DSN", defaultDSN),
		StoreBackend:        strings.ToLower(envOr("STORE_BACKEND", StoreMySQL)),
		AuthMode:            strings.ToLower(envOr("AUTH_MODE", AuthLocal)),
		JWTSecret:           envOr("JWT_SECRET", "dev-secret-change-me"),
		JWTExpiresIn:        durationOr("JWT_EXPIRES_IN", 24*time.Hour),
		FirebaseProjectID:   strings.TrimSpace(os.Getenv("FIREBASE_PROJECT_ID")),
		FirebaseCredentials: strings.TrimSpace(os.Getenv("FIREBASE_CREDENTIALS_FILE")),
		ReportTimezone:      envOr("REPORT_TIMEZONE", "Asia/Dubai"),
		LogLevel:            envOr("LOG_LEVEL", "info"),
		LogFormat:           envOr("LOG_FORMAT", "text"),
		CORSOrigins: utils.SplitList(envOr("CORS_ALLOWED_ORIGINS",
			"http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")),
	}
}

// UsesFirebase reports whether any component needs a Firebase app.
func (e Env) UsesFirebase() bool {
	return e.StoreBackend == StoreFirestore || e.AuthMode == AuthFirebase
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
