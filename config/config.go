package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// defaultSessionMaxAge is one week, in seconds.
const defaultSessionMaxAge = 7 * 24 * 60 * 60

// Config holds all application configuration.
type Config struct {
	MailHub       string // SMTP relay in host:port form
	AuthUser      string
	AuthPass      string
	FromEmail     string // 'From' address; falls back to AuthUser
	FromName      string // display name on outgoing mail
	SkipTLSVerify bool
	DatabaseURL   string
	AdminEmail    string // dashboard login
	AdminPassword string
	SessionMaxAge int // seconds
}

// LoadConfig reads configuration from a .env file or the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables directly.")
	}

	maxAge, err := strconv.Atoi(os.Getenv("SESSION_MAX_AGE"))
	if err != nil || maxAge <= 0 {
		maxAge = defaultSessionMaxAge
	}

	cfg := &Config{
		MailHub:       os.Getenv("MAILHUB"),
		AuthUser:      os.Getenv("AUTHUSER"),
		AuthPass:      os.Getenv("AUTHPASS"),
		FromEmail:     os.Getenv("FROM_EMAIL"),
		FromName:      os.Getenv("FROM_NAME"),
		SkipTLSVerify: os.Getenv("SKIP_TLS_VERIFY") == "YES",
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionMaxAge: maxAge,
	}
	if cfg.FromEmail == "" {
		cfg.FromEmail = cfg.AuthUser
	}
	return cfg, nil
}

// MailConfigured reports whether the outbound transport settings are present.
// Their absence is a configuration error, never a silent default.
func (c *Config) MailConfigured() bool {
	return c.MailHub != "" && c.AuthUser != "" && c.AuthPass != ""
}

// AdminConfigured reports whether the dashboard login secrets are present.
func (c *Config) AdminConfigured() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}
