package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port            int           `yaml:"port" env:"PORT" env-default:"3000"`
	DatabaseURL     string        `yaml:"database_url" env:"DATABASE_URL" env-default:"live-poll.db"`
	DatabaseType    string        `yaml:"database_type" env:"DATABASE_TYPE" env-default:"sqlite"`
	Env             string        `yaml:"env" env:"ENV" env-default:"local"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-default:"*"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
	Mirror          MirrorConfig  `yaml:"mirror"`
}

// MirrorConfig configures the Firestore copy of polls and votes. The mirror
// is disabled when ProjectID is empty.
type MirrorConfig struct {
	ProjectID       string        `yaml:"project_id" env:"FIREBASE_PROJECT_ID"`
	CredentialsFile string        `yaml:"credentials_file" env:"GOOGLE_APPLICATION_CREDENTIALS"`
	CredentialsJSON string        `yaml:"-" env:"GOOGLE_CREDENTIALS"`
	Timeout         time.Duration `yaml:"timeout" env:"MIRROR_TIMEOUT" env-default:"5s"`
	MaxInFlight     int           `yaml:"max_in_flight" env:"MIRROR_MAX_IN_FLIGHT" env-default:"64"`
}

// Enabled reports whether a Firestore project is configured.
func (m MirrorConfig) Enabled() bool {
	return m.ProjectID != ""
}

// ParseFlags loads .env, then the optional YAML file (-c) or the environment,
// then applies CLI flags on top.
func ParseFlags(args []string) (Config, error) {
	var (
		cfg        Config
		configPath string
		port       int
		dbURL      string
		dbType     string
	)

	// A missing .env is fine; real env vars take precedence over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	fs := flag.NewFlagSet("live-poll", flag.ContinueOnError)

	fs.StringVar(&configPath, "c", "", "Path to YAML config file")
	fs.IntVar(&port, "p", 0, "Server port")
	fs.StringVar(&dbURL, "d", "", "Database URL")
	fs.StringVar(&dbType, "t", "", "Database type (sqlite or postgres)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if configPath != "" {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configPath, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("read env: %w", err)
		}
	}

	// CLI overrides only the flags that were given
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Port = port
		case "d":
			cfg.DatabaseURL = dbURL
		case "t":
			cfg.DatabaseType = dbType
		}
	})

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.DatabaseType {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database type %q (use sqlite or postgres)", c.DatabaseType)
	}
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Mirror.Enabled() && c.Mirror.Timeout <= 0 {
		return errors.New("MIRROR_TIMEOUT must be positive")
	}
	return nil
}
