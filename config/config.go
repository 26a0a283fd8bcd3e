package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains service configuration parameters loaded from the
// environment.
type Config struct {
	Env      string `env:"ENV" envDefault:"development"`
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel int    `env:"LOG_LEVEL" envDefault:"0"`

	DBURL string `env:"DB_URL,required"`

	Redis   Redis   `envPrefix:"REDIS_"`
	JWT     JWT     `envPrefix:"JWT_"`
	Lockout Lockout `envPrefix:"LOCKOUT_"`
	Tokens  Tokens  `envPrefix:"TOKEN_"`
	SMTP    SMTP    `envPrefix:"SMTP_"`

	BcryptCost        int    `env:"BCRYPT_ROUNDS" envDefault:"12"`
	HashWorkers       int    `env:"HASH_WORKERS" envDefault:"8"`
	FrontendBaseURL   string `env:"FRONTEND_BASE_URL" envDefault:"http://localhost:3000"`
	EmailSenderEnable bool   `env:"EMAIL_SENDER_ENABLE" envDefault:"false"`
}

// Redis contains revocation-cache connection parameters.
type Redis struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
}

// JWT contains signing secrets and expiries for the token pair. Access and
// refresh secrets must differ so one leaked secret cannot forge the other
// token kind.
type JWT struct {
	AccessSecret     string `env:"ACCESS_SECRET,required"`
	RefreshSecret    string `env:"REFRESH_SECRET,required"`
	AccessExpiryMin  int    `env:"ACCESS_EXPIRY_MIN" envDefault:"15"`
	RefreshExpiryMin int    `env:"REFRESH_EXPIRY_MIN" envDefault:"10080"`
}

// Lockout contains the failed-login lockout parameters.
type Lockout struct {
	MaxAttempts int `env:"MAX_ATTEMPTS" envDefault:"5"`
	WindowMin   int `env:"WINDOW_MIN" envDefault:"120"`
}

// Tokens contains the ephemeral-token lifetimes.
type Tokens struct {
	VerificationExpiryHours int `env:"VERIFICATION_EXPIRY_HOURS" envDefault:"24"`
	ResetExpiryHours        int `env:"RESET_EXPIRY_HOURS" envDefault:"1"`
}

// SMTP contains outbound email parameters.
type SMTP struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME" envDefault:""`
	Password string `env:"PASSWORD" envDefault:""`
	From     string `env:"FROM" envDefault:"no-reply@authflow.local"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.JWT.AccessSecret == cfg.JWT.RefreshSecret {
		return nil, fmt.Errorf("access and refresh token secrets must differ")
	}

	return &cfg, nil
}

// AccessTokenTTL returns the access token lifetime.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWT.AccessExpiryMin) * time.Minute
}

// RefreshTokenTTL returns the refresh token lifetime.
func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.JWT.RefreshExpiryMin) * time.Minute
}

// LockoutWindow returns how long an account stays locked after the failed
// login threshold is reached.
func (c *Config) LockoutWindow() time.Duration {
	return time.Duration(c.Lockout.WindowMin) * time.Minute
}

// VerificationTokenTTL returns the email-verification token lifetime.
func (c *Config) VerificationTokenTTL() time.Duration {
	return time.Duration(c.Tokens.VerificationExpiryHours) * time.Hour
}

// ResetTokenTTL returns the password-reset token lifetime.
func (c *Config) ResetTokenTTL() time.Duration {
	return time.Duration(c.Tokens.ResetExpiryHours) * time.Hour
}
