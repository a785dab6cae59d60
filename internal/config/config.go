package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr    string
	FrontendURL string

	DBDriver string
	DBDSN    string

	JWTSecret string

	GeminiAPIKey string
	GeminiModel  string

	CORSOrigins []string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":5000"
	}
	return Config{
		HTTPAddr:     addr,
		FrontendURL:  envOr("FRONTEND_URL", "http://localhost:3000"),
		DBDriver:     envOr("DB_DRIVER", "postgres"),
		DBDSN:        envOr("DB_DSN", ""),
		JWTSecret:    envOr("JWT_SECRET", "secret_key"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-1.5-flash"),
		CORSOrigins:  csvOr("CORS_ORIGINS", "*"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
