package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Browser settings
	Headless        bool
	PageLoadTimeout time.Duration
	BrowserTimeout  time.Duration
	ChromeBin       string
	UserAgent       string
	ProxyListFile   string
	UseProxy        bool

	// Scraping settings
	MaxBusinesses     int
	MaxScrollAttempts int
	ScrollPause       time.Duration
	ClickDelay        time.Duration

	// Rate limiting
	MinDelay time.Duration
	MaxDelay time.Duration

	// Output settings
	OutputDir    string
	OutputFormat string // csv, json, excel or all

	// Optional Postgres archive
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	ArchiveToDB      bool

	Debug bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Headless:        getEnvBool("HEADLESS_MODE", false),
		PageLoadTimeout: getEnvSeconds("PAGE_LOAD_TIMEOUT", 20),
		BrowserTimeout:  getEnvSeconds("BROWSER_TIMEOUT", 30),
		ChromeBin:       getEnv("CHROME_BIN", ""),
		UserAgent:       getEnv("USER_AGENT", ""),
		ProxyListFile:   getEnv("PROXY_LIST_FILE", "data/proxies/proxy_list.txt"),
		UseProxy:        getEnvBool("USE_PROXY", false),

		MaxBusinesses:     getEnvInt("MAX_BUSINESSES", 100),
		MaxScrollAttempts: getEnvInt("MAX_SCROLL_ATTEMPTS", 50),
		ScrollPause:       getEnvSeconds("SCROLL_PAUSE_TIME", 2),
		ClickDelay:        getEnvSeconds("CLICK_DELAY", 1.5),

		MinDelay: getEnvSeconds("MIN_DELAY", 1),
		MaxDelay: getEnvSeconds("MAX_DELAY", 3),

		OutputDir:    getEnv("OUTPUT_DIR", "data/output"),
		OutputFormat: getEnv("OUTPUT_FORMAT", "csv"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "gmaps_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		ArchiveToDB:      getEnvBool("ARCHIVE_TO_DB", false),

		Debug: getEnvBool("DEBUG_MODE", true),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSeconds(key string, fallback float64) time.Duration {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil && f >= 0 {
			return time.Duration(f * float64(time.Second))
		}
	}
	return time.Duration(fallback * float64(time.Second))
}
