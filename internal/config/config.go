// Package config resolves runtime settings from defaults, an optional
// config.yaml, MOGI_* environment variables (a .env file is honoured) and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "MOGI"

// Config holds every tunable the application reads at startup.
type Config struct {
	TimeLimit    time.Duration `mapstructure:"time_limit" validate:"gt=0"`
	AdvanceDelay time.Duration `mapstructure:"advance_delay" validate:"gte=0"`
	QuestionSet  string        `mapstructure:"question_set" validate:"omitempty,file"`
	ImagesDir    string        `mapstructure:"images_dir" validate:"omitempty,dir"`
	DBPath       string        `mapstructure:"db"`
	LogLevel     string        `mapstructure:"log_level" validate:"oneof=trace debug info warn error disabled"`
	LogFile      string        `mapstructure:"log_file"`
	HandleName   string        `mapstructure:"name" validate:"max=32"`

	// TimeLimitExplicit is true when time_limit came from a file, the
	// environment or a flag rather than the built-in default.
	TimeLimitExplicit bool `mapstructure:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TimeLimit:    60 * time.Minute,
		AdvanceDelay: 300 * time.Millisecond,
		LogLevel:     "info",
	}
}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"time-limit":    "time_limit",
	"advance-delay": "advance_delay",
	"question-set":  "question_set",
	"images-dir":    "images_dir",
	"db":            "db",
	"log-level":     "log_level",
	"log-file":      "log_file",
	"name":          "name",
}

// Load resolves the configuration. flags may be nil; only flags the user
// actually set override lower layers. A "config" flag, when present and set,
// names an explicit config file which must then exist.
func Load(flags *pflag.FlagSet) (Config, error) {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	def := Default()
	v.SetDefault("time_limit", def.TimeLimit)
	v.SetDefault("advance_delay", def.AdvanceDelay)
	v.SetDefault("question_set", "")
	v.SetDefault("images_dir", "")
	v.SetDefault("db", "")
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("name", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	explicit := ""
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Changed {
			explicit = f.Value.String()
		}
	}
	if err := readConfigFile(v, explicit); err != nil {
		return Config{}, err
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	cfg.TimeLimitExplicit = explicitTimeLimit(v, flags)
	return cfg, nil
}

func explicitTimeLimit(v *viper.Viper, flags *pflag.FlagSet) bool {
	if flags != nil {
		if f := flags.Lookup("time-limit"); f != nil && f.Changed {
			return true
		}
	}
	if os.Getenv(EnvPrefix+"_TIME_LIMIT") != "" {
		return true
	}
	return v.InConfig("time_limit")
}

func readConfigFile(v *viper.Viper, explicit string) error {
	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", explicit, err)
		}
		return nil
	}

	dir, err := Dir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Dir returns $XDG_CONFIG_HOME/mogi, falling back to ~/.config/mogi.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "mogi"), nil
}

var validate = validator.New()

// Validate checks cfg against its field constraints.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
