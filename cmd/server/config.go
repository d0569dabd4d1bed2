package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig aggregates all runtime settings required by the web front.
type AppConfig struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	API         APIConfig
	Session     SessionConfig
	Auth        AuthConfig
	CSRF        CSRFConfig
	Views       ViewsConfig
	Logger      LoggerConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	CookieName string
	StorePath  string
}

type AuthConfig struct {
	RejectedRouteKey     string
	RejectedRouteDefault string
}

type CSRFConfig struct {
	SecureKey string
}

type ViewsConfig struct {
	Dir       string
	AssetsDir string
	Debug     bool
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the server can boot in any environment.
func Load() (*AppConfig, error) {
	_ = godotenv.Load(".env")

	cfg := &AppConfig{
		AppName:     getString("APP_NAME", "novacoders-web"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "3000"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		API: APIConfig{
			BaseURL: getString("API_BASE_URL", "http://localhost:5000"),
			Timeout: getDuration("API_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			CookieName: getString("SESSION_COOKIE_NAME", "nc_session"),
			StorePath:  getString("SESSION_STORE_PATH", "./data/sessions.db"),
		},
		Auth: AuthConfig{
			RejectedRouteKey:     getString("AUTH_REJECTED_ROUTE_KEY", "rejected_route"),
			RejectedRouteDefault: getString("AUTH_REJECTED_ROUTE_DEFAULT", "/"),
		},
		CSRF: CSRFConfig{
			SecureKey: os.Getenv("CSRF_SECURE_KEY"),
		},
		Views: ViewsConfig{
			Dir:       getString("VIEWS_DIR", "./cmd/server/views"),
			AssetsDir: getString("ASSETS_DIR", "./cmd/server/public"),
			Debug:     getBool("VIEWS_DEBUG", false),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "console"),
		},
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *AppConfig {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Address returns the HTTP listen address.
func (c *AppConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}

// GetAPIBaseURL satisfies webfront.Config.
func (c *AppConfig) GetAPIBaseURL() string {
	return c.API.BaseURL
}

// GetSessionCookieName satisfies webfront.Config.
func (c *AppConfig) GetSessionCookieName() string {
	return c.Session.CookieName
}

// GetRejectedRouteKey satisfies webfront.Config.
func (c *AppConfig) GetRejectedRouteKey() string {
	return c.Auth.RejectedRouteKey
}

// GetRejectedRouteDefault satisfies webfront.Config.
func (c *AppConfig) GetRejectedRouteDefault() string {
	return c.Auth.RejectedRouteDefault
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
