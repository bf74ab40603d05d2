package config

import (
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "STORE_BACKEND", "AUTH_MODE", "JWT_EXPIRES_IN", "REPORT_TIMEZONE", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	env := LoadEnv()
	if env.AppAddr != ":8080" {
		t.Fatalf("AppAddr = %q", env.AppAddr)
	}
	if env.StoreBackend != StoreMySQL || env.AuthMode != AuthLocal {
		t.Fatalf("backend=%q auth=%q", env.StoreBackend, env.AuthMode)
	}
	if env.JWTExpiresIn != 24*time.Hour {
		t.Fatalf("JWTExpiresIn = %s", env.JWTExpiresIn)
	}
	if env.ReportTimezone != "Asia/Dubai" {
		t.Fatalf("ReportTimezone = %q", env.ReportTimezone)
	}
	if len(env.CORSOrigins) != 4 {
		t.Fatalf("CORSOrigins = %v", env.CORSOrigins)
	}
	if env.UsesFirebase() {
		t.Fatalf("defaults should not need firebase")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Firestore")
	t.Setenv("JWT_EXPIRES_IN", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	env := LoadEnv()
	if env.StoreBackend != StoreFirestore || !env.UsesFirebase() {
		t.Fatalf("StoreBackend = %q", env.StoreBackend)
	}
	if env.JWTExpiresIn != 90*time.Minute {
		t.Fatalf("JWTExpiresIn = %s", env.JWTExpiresIn)
	}
	if len(env.CORSOrigins) != 2 || env.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("CORSOrigins = %v", env.CORSOrigins)
	}

	t.Setenv("JWT_EXPIRES_IN", "soon")
	if LoadEnv().JWTExpiresIn != 24*time.Hour {
		t.Fatalf("invalid duration should fall back")
	}
}
