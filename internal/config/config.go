package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAddr              = ":5500"
	defaultFrontendOrigin    = "http://127.0.0.1:5500"
	defaultStaticDir         = "."
	defaultBookingStore      = StoreFirestore
	defaultCredentialsFile   = "serviceAccountKey.json"
	defaultMongoDatabase     = "momsites"
	defaultAdminTokenTTL     = "12h"
	defaultRescheduleWindow  = "48h"
	defaultCalendarTimezone  = "America/New_York"
	defaultRabbitDialTimeout = "5s"
)

const (
	StoreFirestore = "firestore"
	StoreMongo     = "mongo"
	StoreSQL       = "sql"
)

type Config struct {
	AppEnv  string
	Addr    string
	GinMode string

	StripeSecretKey string
	FrontendOrigin  string
	StaticDir       string

	BookingStore       string
	CredentialsFile    string
	FirestoreProjectID string
	MongoURI           string
	MongoDatabase      string
	DatabaseURL        string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RateLimit     RateLimitConfig

	RabbitMQURL         string
	RabbitMQDialTimeout time.Duration

	CalendarID          string
	CalendarCredentials string
	CalendarTimezone    string

	AdminJWTSecret    string
	AdminPasswordHash string
	AdminTokenTTL     time.Duration

	CORSAllowedOrigins []string
	RescheduleWindow   time.Duration
}

// Load reads .env (when present) and the process environment. Missing
// credentials are not an error here: the affected component reports
// itself as not configured at request time.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("level=warn msg=failed to read .env err=%v", err)
	}

	cfg := &Config{
		AppEnv:              strings.ToLower(getEnv("APP_ENV", "dev")),
		Addr:                getEnv("APP_ADDR", defaultAddr),
		GinMode:             os.Getenv("GIN_MODE"),
		StripeSecretKey:     strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		FrontendOrigin:      strings.TrimRight(getEnv("FRONTEND_ORIGIN", defaultFrontendOrigin), "/"),
		StaticDir:           getEnv("STATIC_DIR", defaultStaticDir),
		BookingStore:        strings.ToLower(getEnv("BOOKING_STORE", defaultBookingStore)),
		CredentialsFile:     getEnv("GOOGLE_APPLICATION_CREDENTIALS", defaultCredentialsFile),
		FirestoreProjectID:  os.Getenv("FIRESTORE_PROJECT_ID"),
		MongoURI:            os.Getenv("MONGO_URI"),
		MongoDatabase:       getEnv("MONGO_DATABASE", defaultMongoDatabase),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RedisAddr:           redisAddr(),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             parseIntEnv("REDIS_DB", 0),
		RateLimit:           LoadRateLimitConfig(),
		RabbitMQURL:         os.Getenv("RABBITMQ_URL"),
		CalendarID:          os.Getenv("GOOGLE_CALENDAR_ID"),
		CalendarTimezone:    getEnv("CALENDAR_TIMEZONE", defaultCalendarTimezone),
		CalendarCredentials: os.Getenv("GOOGLE_CALENDAR_CREDENTIALS"),
		AdminJWTSecret:      os.Getenv("ADMIN_JWT_SECRET"),
		AdminPasswordHash:   os.Getenv("ADMIN_PASSWORD_HASH"),
		CORSAllowedOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	var err error
	cfg.AdminTokenTTL, err = parseDurationEnv("ADMIN_TOKEN_TTL", defaultAdminTokenTTL)
	if err != nil {
		return nil, err
	}
	cfg.RescheduleWindow, err = parseDurationEnv("RESCHEDULE_WINDOW", defaultRescheduleWindow)
	if err != nil {
		return nil, err
	}
	cfg.RabbitMQDialTimeout, err = parseDurationEnv("RABBITMQ_DIAL_TIMEOUT", defaultRabbitDialTimeout)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	if cfg.StripeSecretKey == "" {
		log.Printf("level=error msg=STRIPE_SECRET_KEY is not set, checkout is disabled")
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	switch cfg.BookingStore {
	case StoreFirestore, StoreMongo, StoreSQL:
	default:
		return fmt.Errorf("BOOKING_STORE must be one of: %s, %s, %s", StoreFirestore, StoreMongo, StoreSQL)
	}
	if cfg.AdminTokenTTL <= 0 {
		return fmt.Errorf("ADMIN_TOKEN_TTL must be > 0")
	}
	if cfg.RescheduleWindow < 0 {
		return fmt.Errorf("RESCHEDULE_WINDOW must be >= 0")
	}
	if cfg.RabbitMQDialTimeout <= 0 {
		return fmt.Errorf("RABBITMQ_DIAL_TIMEOUT must be > 0")
	}
	if isProdLike(cfg.AppEnv) && cfg.AdminPasswordHash != "" && strings.TrimSpace(cfg.AdminJWTSecret) == "" {
		return fmt.Errorf("in prod/release ADMIN_JWT_SECRET must be set when admin login is enabled")
	}
	return nil
}

// AdminEnabled reports whether the admin login has everything it needs.
func (c *Config) AdminEnabled() bool {
	return c.AdminJWTSecret != "" && c.AdminPasswordHash != ""
}

// CalendarEnabled reports whether bookings are mirrored to Google Calendar.
func (c *Config) CalendarEnabled() bool {
	return c.CalendarID != ""
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func redisAddr() string {
	host := os.Getenv("REDIS_HOST")
	port := os.Getenv("REDIS_PORT")
	if host != "" && port != "" {
		return host + ":" + port
	}
	return os.Getenv("REDIS_ADDR")
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

func parseIntEnv(name string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
