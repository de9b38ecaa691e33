package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port               string
	Environment        string
	MongoURI           string
	DBName             string
	CorsOrigin         string
	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration
	RedisHost          string
	RedisPort          string
	JaegerAddress      string
	LogFile            string
	RbacModel          string
	RbacPolicy         string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
}

func NewConfig() *Config {
	return &Config{
		Port:               getEnv("PORT", "8000"),
		Environment:        getEnv("ENVIRONMENT", "production"),
		MongoURI:           os.Getenv("MONGODB_URI"),
		DBName:             getEnv("DB_NAME", "bnbreeze"),
		CorsOrigin:         getEnv("CORS_ORIGIN", "http://localhost:5173"),
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		AccessTokenExpiry:  getDuration("ACCESS_TOKEN_EXPIRY", 24*time.Hour),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		RefreshTokenExpiry: getDuration("REFRESH_TOKEN_EXPIRY", 10*24*time.Hour),
		RedisHost:          getEnv("REDIS_HOST", "localhost"),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		JaegerAddress:      os.Getenv("JAEGER_ADDRESS"),
		LogFile:            os.Getenv("LOG_FILE"),
		RbacModel:          getEnv("RBAC_MODEL", "./rbac_model.conf"),
		RbacPolicy:         getEnv("RBAC_POLICY", "./policy.csv"),
		ReadTimeout:        getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:       getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:        getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
	}
}

func (config *Config) IsDevelopment() bool {
	return config.Environment == "development"
}

// Validate reports every setting the server cannot start without.
func (config *Config) Validate() error {
	var problems []error
	if config.MongoURI == "" {
		problems = append(problems, errors.New("MONGODB_URI is required"))
	}
	if config.AccessTokenSecret == "" {
		problems = append(problems, errors.New("ACCESS_TOKEN_SECRET is required"))
	}
	if config.RefreshTokenSecret == "" {
		problems = append(problems, errors.New("REFRESH_TOKEN_SECRET is required"))
	}
	if config.AccessTokenExpiry <= 0 {
		problems = append(problems, errors.New("ACCESS_TOKEN_EXPIRY must be positive"))
	}
	if config.RefreshTokenExpiry <= 0 {
		problems = append(problems, errors.New("REFRESH_TOKEN_EXPIRY must be positive"))
	}
	return errors.Join(problems...)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	duration, err := ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

// ParseDuration accepts Go duration syntax plus a whole-day form such as "10d".
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if days, found := strings.CutSuffix(value, "d"); found {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(value)
}
