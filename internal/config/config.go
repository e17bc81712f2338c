package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string   `mapstructure:"PORT"`
	Env               string   `mapstructure:"ENV"`
	DatabaseURL       string   `mapstructure:"DATABASE_URL"`
	DBMaxConns        int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns        int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins       []string `mapstructure:"CORS_ORIGINS"`
	SessionSecret     string   `mapstructure:"SESSION_SECRET"`
	SessionTTLMinutes int      `mapstructure:"SESSION_TTL_MINUTES"`
	Timezone          string   `mapstructure:"TIMEZONE"`
	DayStart          string   `mapstructure:"DAY_START"`
	DayEnd            string   `mapstructure:"DAY_END"`
	SlotMinutes       int      `mapstructure:"SLOT_MINUTES"`
	BookingWeekday    string   `mapstructure:"BOOKING_WEEKDAY"`
	Chairs            []string `mapstructure:"CHAIRS"`
	AllowedDomains    []string `mapstructure:"ALLOWED_EMAIL_DOMAINS"`
	RateLimitRPS      float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst    int      `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults match the Friday dental-hygiene clinic deployment.
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SESSION_TTL_MINUTES", 60)
	v.SetDefault("TIMEZONE", "Europe/Madrid")
	v.SetDefault("DAY_START", "15:15")
	v.SetDefault("DAY_END", "20:30")
	v.SetDefault("SLOT_MINUTES", 40)
	v.SetDefault("BOOKING_WEEKDAY", "Friday")
	v.SetDefault("CHAIRS", "rojo,azul,amarillo")
	v.SetDefault("ALLOWED_EMAIL_DOMAINS", "alu.medac.es,medac.es")
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("SESSION_SECRET")
	v.BindEnv("SESSION_TTL_MINUTES")
	v.BindEnv("TIMEZONE")
	v.BindEnv("DAY_START")
	v.BindEnv("DAY_END")
	v.BindEnv("SLOT_MINUTES")
	v.BindEnv("BOOKING_WEEKDAY")
	v.BindEnv("CHAIRS")
	v.BindEnv("ALLOWED_EMAIL_DOMAINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Comma-separated env values arrive as a single string; split them.
	if len(cfg.CORSOrigins) <= 1 {
		cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))
	}
	if len(cfg.Chairs) <= 1 {
		cfg.Chairs = splitList(v.GetString("CHAIRS"))
	}
	if len(cfg.AllowedDomains) <= 1 {
		cfg.AllowedDomains = splitList(v.GetString("ALLOWED_EMAIL_DOMAINS"))
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() && cfg.SessionSecret == "" {
		log.Println("WARNING: SESSION_SECRET not set; using an insecure development secret.")
		log.Println("WARNING: Set SESSION_SECRET before deploying.")
		cfg.SessionSecret = "dev-only-insecure-secret"
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside development
// a real SESSION_SECRET must be provided so admin sessions cannot be forged.
func (c *Config) Validate() error {
	if !c.IsDev() && (c.SessionSecret == "" || c.SessionSecret == "dev-only-insecure-secret") {
		return fmt.Errorf("SESSION_SECRET is required when ENV=%q", c.Env)
	}
	if c.SlotMinutes <= 0 {
		return fmt.Errorf("SLOT_MINUTES must be positive, got %d", c.SlotMinutes)
	}
	if len(c.Chairs) == 0 {
		return fmt.Errorf("CHAIRS must list at least one chair")
	}
	if len(c.AllowedDomains) == 0 {
		return fmt.Errorf("ALLOWED_EMAIL_DOMAINS must list at least one domain")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	return nil
}
