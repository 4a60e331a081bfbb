package internal

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

type Config struct {
	Host            string        `env:"HOST,default=localhost"`
	Port            int           `env:"PORT,default=8080"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath   string        `env:"BLUGE_FILEPATH,required=true"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	SessionSecret     string        `env:"SESSION_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	SecureCookie      bool          `env:"SECURE_COOKIE,default=false"`
	AdminTag          string        `env:"ADMIN_TAG"`
	AdminPassword     string        `env:"ADMIN_PASSWORD"`

	PollTimeout      time.Duration `env:"POLL_TIMEOUT,default=30s"`
	PollInterval     time.Duration `env:"POLL_INTERVAL,default=2s"`
	MaxContentLength int           `env:"MAX_CONTENT_LENGTH,default=2000"`
	SearchLimit      int           `env:"SEARCH_LIMIT,default=20"`
	SearchMaxLimit   int           `env:"SEARCH_MAX_LIMIT,default=100"`

	BufferSize           int           `env:"BUFFER_SIZE,default=1024"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=2s"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=15s"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=80"`

	CensorMessages  bool   `env:"CENSOR_MESSAGES,default=false"`
	CharReplacement string `env:"CHARACTER_REPLACEMENT,default=*"`
}

// LoadConfig reads a .env file when present, then the environment.
// Variables already set in the environment win over the file.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := config.validate(); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	return config, nil
}

func (c Config) validate() error {
	if len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must hold at least 32 bytes")
	}
	if c.PollTimeout <= 0 {
		return fmt.Errorf("POLL_TIMEOUT must be positive, got %s", c.PollTimeout)
	}
	if (c.AdminTag == "") != (c.AdminPassword == "") {
		return fmt.Errorf("ADMIN_TAG and ADMIN_PASSWORD must be set together")
	}
	if c.LowCapacityThreshold < 1 || c.LowCapacityThreshold > 100 {
		return fmt.Errorf("LOW_CAPACITY_THRESHOLD must be a percentage, got %d", c.LowCapacityThreshold)
	}
	if c.CensorMessages {
		if _, err := CharacterRune(c.CharReplacement); err != nil {
			return err
		}
	}
	return nil
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
