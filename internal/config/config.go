package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Cfg struct {
	App         App
	Database    Database
	Logger      Logger
	Browser     Browser
	Waits       Waits
	Webapp      Webapp
	Screenshots Screenshots
	Migrations  Migrations
}

// App: адрес HTTP-сервера отчетов.
type App struct {
	Host string
	Port string
}

type Database struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Enabled сообщает, задано ли подключение к журналу прогонов.
func (d Database) Enabled() bool {
	return d.Host != "" && d.Name != ""
}

type Migrations struct {
	Path string
}

type Logger struct {
	Env   string
	Level string
	File  string
}

type Browser struct {
	Engine           string
	Display          string
	Headless         bool
	UserDataDir      string
	BrowsersPath     string
	SettleAfterClick bool
	Timeout          time.Duration
	NavigateTimeout  time.Duration
	ActionTimeout    time.Duration
}

type Waits struct {
	PollInterval    time.Duration
	PageLoadTimeout time.Duration
	ImplicitTimeout time.Duration
}

// Webapp: адрес тестируемого приложения.
type Webapp struct {
	URL     string
	Context string
}

type Screenshots struct {
	Dir string
}

func Load() (*Cfg, error) {
	_ = godotenv.Load()

	cfg := &Cfg{
		App: App{
			Host: env("APP_HOST", "127.0.0.1"),
			Port: env("APP_PORT", "8080"),
		},
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			Port:     env("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
		},
		Logger: Logger{
			Env:   env("ENV", "dev"),
			Level: env("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
		},
		Browser: Browser{
			Engine:           env("PW_ENGINE", "firefox"),
			Display:          env("DISPLAY", ":0"),
			Headless:         envBool("PW_HEADLESS"),
			UserDataDir:      os.Getenv("PW_USER_DATA_DIR"),
			BrowsersPath:     env("PLAYWRIGHT_BROWSERS_PATH", ""),
			SettleAfterClick: envBool("PW_SETTLE_AFTER_CLICK"),
			Timeout:          envDuration("PW_TIMEOUT_MS", 30*time.Second),
			NavigateTimeout:  envDuration("PW_NAVIGATE_TIMEOUT_MS", 60*time.Second),
			ActionTimeout:    envDuration("PW_ACTION_TIMEOUT_MS", 10*time.Second),
		},
		Waits: Waits{
			PollInterval:    envDuration("WAIT_POLL_INTERVAL_MS", 100*time.Millisecond),
			PageLoadTimeout: envDuration("WAIT_PAGE_LOAD_TIMEOUT_MS", 30*time.Second),
			ImplicitTimeout: envDuration("WAIT_IMPLICIT_TIMEOUT_MS", 3*time.Second),
		},
		Webapp: Webapp{
			URL:     env("WEBAPP_URL", "http://localhost:8080"),
			Context: env("WEBAPP_CONTEXT", ""),
		},
		Screenshots: Screenshots{
			Dir: env("SCREENSHOT_DIR", "/tmp/"),
		},
		Migrations: Migrations{
			Path: env("MIGRATIONS_PATH", "file://migrations"),
		},
	}

	return cfg, nil
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// envDuration читает число миллисекунд.
func envDuration(key string, defaultValue time.Duration) time.Duration {
	ms := envInt(key, -1)
	if ms < 0 {
		return defaultValue
	}
	return time.Duration(ms) * time.Millisecond
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "true" || v == "1" || v == "yes"
}
