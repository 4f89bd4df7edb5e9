package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Auth     AuthConfig
	Sheets   SheetsConfig
	Snapshot SnapshotConfig
	Notifier NotifierConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for the document store.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig holds token signing settings and the bootstrap admin account.
type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// SheetsConfig contains configuration for the optional Google Sheets report
// destination. Leaving both credential fields empty disables the feature.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ExportRange     string
}

// SnapshotConfig holds the nightly summary snapshot schedule.
type SnapshotConfig struct {
	CronSchedule string
}

// NotifierConfig holds the optional webhook the service posts events to.
// An empty URL disables notifications.
type NotifierConfig struct {
	WebhookURL string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	tokenTTLHours, err := strconv.Atoi(getenvWithDefault("JWT_TTL_HOURS", "12"))
	if err != nil {
		return nil, fmt.Errorf("JWT_TTL_HOURS must be an integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "sarpras"),
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			TokenTTL:      time.Duration(tokenTTLHours) * time.Hour,
			AdminName:     getenvWithDefault("ADMIN_NAME", "Admin Sekolah"),
			AdminEmail:    os.Getenv("ADMIN_EMAIL"),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
			ExportRange:     getenvWithDefault("GOOGLE_SHEET_EXPORT_RANGE", "Laporan!A:AA"),
		},
		Snapshot: SnapshotConfig{
			CronSchedule: getenvWithDefault("SUMMARY_CRON_SCHEDULE", "0 21 * * *"),
		},
		Notifier: NotifierConfig{
			WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL_HOURS must be positive")
	}

	// Sheets export is optional, but partial configuration is a mistake.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_EXPORT_ID must be set together")
	}

	if c.Snapshot.CronSchedule == "" {
		return errors.New("SUMMARY_CRON_SCHEDULE must be provided")
	}

	return nil
}

// SheetsEnabled reports whether the Google Sheets destination is configured.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
