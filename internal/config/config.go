package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	LogLevel slog.Level

	CookieSecret     []byte
	CookieSecure     bool
	ClientCookieName string

	DBDSN string

	// ISO code used when formatting prices
	Currency string

	Catalog  CatalogConfig
	Showcase ShowcaseConfig
	Storage  StorageConfig
	SMTP     SMTPConfig
}

type CatalogConfig struct {
	Driver          string // firestore | mongo | memory
	ProjectID       string
	CredentialsFile string
	MongoURI        string
	MongoDatabase   string
	Collection      string
	SeedFile        string // memory driver only
	Refresh         time.Duration
	PreferredSizes  []string
}

type ShowcaseConfig struct {
	Sizes    []string
	Window   int
	Interval time.Duration
}

type StorageConfig struct {
	Driver   string // local | s3 | sql | memory
	LocalDir string
	S3Region string
	S3Bucket string
	S3Prefix string
}

type SMTPConfig struct {
	Host          string
	Port          string
	User          string
	Pass          string
	TLSMode       string // none | starttls | tls
	SkipVerifyTLS bool
	From          string
	FromName      string
}

// Enabled reports whether outgoing mail is configured.
func (c SMTPConfig) Enabled() bool { return c.Host != "" && c.From != "" }

// Load reads .env (if present) and the process environment.
func Load() Config {
	// prod uses real env vars; a missing .env is fine
	_ = godotenv.Load()

	return Config{
		Addr:     envOr("HTTP_ADDR", ":8080"),
		LogLevel: parseLevel(envOr("LOG_LEVEL", "info")),

		CookieSecret:     []byte(envOr("COOKIE_SECRET", "dev-insecure-secret-change-me")),
		CookieSecure:     envBool("COOKIE_SECURE", false),
		ClientCookieName: envOr("CLIENT_COOKIE_NAME", "mahirash_client"),

		DBDSN: os.Getenv("DB_DSN"),

		Currency: strings.ToUpper(envOr("CURRENCY", "INR")),

		Catalog: CatalogConfig{
			Driver:          envOr("CATALOG_DRIVER", "firestore"),
			ProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
			CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
			MongoURI:        os.Getenv("MONGO_URI"),
			MongoDatabase:   envOr("MONGO_DATABASE", "mahirash"),
			Collection:      envOr("CATALOG_COLLECTION", "products"),
			SeedFile:        os.Getenv("CATALOG_SEED_FILE"),
			Refresh:         envDuration("CATALOG_REFRESH", 5*time.Minute),
			PreferredSizes:  envList("CATALOG_PREFERRED_SIZES"),
		},
		Showcase: ShowcaseConfig{
			Sizes:    envListOr("SHOWCASE_SIZES", []string{"100ml", "50ml"}),
			Window:   envInt("SHOWCASE_WINDOW", 4),
			Interval: envDuration("SHOWCASE_INTERVAL", 4*time.Second),
		},
		Storage: StorageConfig{
			Driver:   envOr("STORAGE_DRIVER", "local"),
			LocalDir: envOr("LOCAL_STATE_DIR", "./storage/state"),
			S3Region: os.Getenv("S3_REGION"),
			S3Bucket: os.Getenv("S3_BUCKET"),
			S3Prefix: envOr("S3_PREFIX", "client-state"),
		},
		SMTP: SMTPConfig{
			Host:          os.Getenv("SMTP_HOST"),
			Port:          envOr("SMTP_PORT", "1025"),
			User:          os.Getenv("SMTP_USER"),
			Pass:          os.Getenv("SMTP_PASS"),
			TLSMode:       envOr("SMTP_TLS_MODE", "none"),
			SkipVerifyTLS: envBool("SMTP_SKIP_VERIFY", false),
			From:          os.Getenv("MAIL_FROM"),
			FromName:      envOr("MAIL_FROM_NAME", "Mahirash"),
		},
	}
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func envDuration(k string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

func envList(k string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(k), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func envListOr(k string, def []string) []string {
	if v := envList(k); len(v) > 0 {
		return v
	}
	return def
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
