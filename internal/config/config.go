package config

import (
	"log"
	"os"
	"strconv"
)

// AppConfig holds the non-database configuration of the server
type AppConfig struct {
	ServerPort     string
	FrontendOrigin string
	JWTSecret      string
	JWTExpHours    int64
	FlwSecretKey   string
	FlwBaseURL     string
}

// LoadAppConfig reads server configuration from environment variables,
// applying the development defaults of the original deployment.
func LoadAppConfig() *AppConfig {
	cfg := &AppConfig{
		ServerPort:     getEnv("SERVER_PORT", "3001"),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
		JWTSecret:      os.Getenv("JWT_SECRET_KEY"),
		JWTExpHours:    24,
		FlwSecretKey:   os.Getenv("FLW_SECRET_KEY"),
		FlwBaseURL:     getEnv("FLW_BASE_URL", "https://api.flutterwave.com"),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-me"
		log.Println("WARNING: Using default JWT secret. Set JWT_SECRET_KEY in environment for production.")
	}

	if expStr := os.Getenv("JWT_EXPIRATION_HOURS"); expStr != "" {
		exp, err := strconv.ParseInt(expStr, 10, 64)
		if err != nil {
			log.Printf("Invalid JWT_EXPIRATION_HOURS, defaulting to 24: %v", err)
		} else {
			cfg.JWTExpHours = exp
		}
	}

	if cfg.FlwSecretKey == "" {
		log.Println("WARNING: FLW_SECRET_KEY not set; payment verification will fail until it is configured.")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
