package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Port        string
	DBPath      string
	JWTSecret   string
	JWTExpire   time.Duration
	Environment string
	Timezone    string

	SeedAdminEmail    string
	SeedAdminPassword string
}

// Load reads configuration from the environment. A .env file is honored when
// present but never required.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not load .env file")
	}

	cfg := Config{
		Port:              getEnv("PORT", "5003"),
		DBPath:            getEnv("DB_PATH", "data/teamtrack.db"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTExpire:         getEnvAsDuration("JWT_EXPIRE", 7*24*time.Hour),
		Environment:       getEnv("APP_ENV", EnvDevelopment),
		Timezone:          getEnv("TZ", "UTC"),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			logrus.Fatal("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "change_me_in_production"
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultVal
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		logrus.Warnf("invalid %s value %q, using default", key, raw)
		return defaultVal
	}
	return parsed
}
