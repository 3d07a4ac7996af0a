package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/samber/lo"
)

// Config is read from the environment. RETENTION=0 keeps rooms and messages forever,
// the Badger inspector only runs when DEBUG_PORT is set.
type Config struct {
	LogLevel             string        `env:"LOG_LEVEL,required=true"`
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=8080"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	LimitMessages        *int          `env:"LIMIT_MESSAGES"`
	Retention            time.Duration `env:"RETENTION,default=72h"`
	RoomBufferSize       int           `env:"ROOM_BUFFER_SIZE,default=256"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=256"`
	WriteTimeout         time.Duration `env:"WRITE_TIMEOUT,default=5s"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=1s"`
	GCInterval           time.Duration `env:"GC_INTERVAL,default=10m"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=30s"`
	AuthSecret           string        `env:"AUTH_SECRET,required=true"`
	AuthTokenDuration    time.Duration `env:"AUTH_TOKEN_DURATION,default=12h"`
	AllowedOrigins       string        `env:"ALLOWED_ORIGINS,default=*"`
	ModerationWordsDir   string        `env:"MODERATION_WORDS_DIR"`
	CharReplacement      string        `env:"MODERATION_CHARACTER_REPLACEMENT,default=*"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	DebugPort            int           `env:"DEBUG_PORT"`
}

func loadConfig(es env.EnvSet) (Config, error) {
	var config Config
	if err := env.Unmarshal(es, &config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) Origins() []string {
	return lo.Compact(lo.Map(strings.Split(c.AllowedOrigins, ","), func(o string, _ int) string {
		return strings.TrimSpace(o)
	}))
}

func (c Config) CharacterRune() (rune, error) {
	r := []rune(c.CharReplacement)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"MODERATION_CHARACTER_REPLACEMENT must be a single character, got %q",
			c.CharReplacement,
		)
	}
	return r[0], nil
}

func (c Config) validate() error {
	switch {
	case c.RoomBufferSize <= 0:
		return fmt.Errorf("ROOM_BUFFER_SIZE must be positive, got %d", c.RoomBufferSize)
	case c.ConnectionBufferSize <= 0:
		return fmt.Errorf("CONNECTION_BUFFER_SIZE must be positive, got %d", c.ConnectionBufferSize)
	case c.Retention < 0:
		return fmt.Errorf("RETENTION must not be negative, got %s", c.Retention)
	case c.LimitMessages != nil && *c.LimitMessages <= 0:
		return fmt.Errorf("LIMIT_MESSAGES must be positive, got %d", *c.LimitMessages)
	case c.DebugPort < 0:
		return fmt.Errorf("DEBUG_PORT must not be negative, got %d", c.DebugPort)
	case len(c.AuthSecret) < 16:
		return fmt.Errorf("AUTH_SECRET must be at least 16 characters")
	}
	return nil
}
