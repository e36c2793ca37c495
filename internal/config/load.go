// Package config loads settings from flags, environment, .env and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. DISPATCH_RUN_SAMPLES.
const EnvPrefix = "DISPATCH"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the resolved configuration.
type Config struct {
	Verbose bool
	LogFile string

	StaticAddr  string
	DynamicAddr string
	MetricsAddr string

	Run      RunConfig
	Load     LoadConfig
	Baseline BaselineConfig
}

// RunConfig controls in-process sampling.
type RunConfig struct {
	Samples  int
	Warmup   time.Duration
	Progress time.Duration
}

// LoadConfig controls the HTTP load generator.
type LoadConfig struct {
	Workers  int
	Duration time.Duration
	Requests int
	Progress time.Duration
}

// BaselineConfig controls baseline persistence and comparison.
type BaselineConfig struct {
	File  string
	Noise float64
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("log_file", "")
	v.SetDefault("static_addr", "127.0.0.1:3000")
	v.SetDefault("dynamic_addr", "127.0.0.1:3001")
	v.SetDefault("metrics_addr", "127.0.0.1:2112")
	v.SetDefault("run.samples", 1000)
	v.SetDefault("run.warmup", "3s")
	v.SetDefault("run.progress", "5s")
	v.SetDefault("load.workers", 4)
	v.SetDefault("load.duration", "10s")
	v.SetDefault("load.requests", 0)
	v.SetDefault("load.progress", "2s")
	v.SetDefault("baseline.file", ".dispatch/baseline.json")
	v.SetDefault("baseline.noise", 0.02)
}

// Init prepares v: .env loading, defaults, environment binding and the
// config file. cfgFile may be empty, in which case ./dispatch.yaml is used
// when present.
func Init(v *viper.Viper, cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("dispatch")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	slog.Debug("using config file", "path", v.ConfigFileUsed())
	return nil
}

// FromViper resolves a Config from v and validates it.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Verbose:     v.GetBool("verbose"),
		LogFile:     v.GetString("log_file"),
		StaticAddr:  v.GetString("static_addr"),
		DynamicAddr: v.GetString("dynamic_addr"),
		MetricsAddr: v.GetString("metrics_addr"),
		Run: RunConfig{
			Samples:  v.GetInt("run.samples"),
			Warmup:   v.GetDuration("run.warmup"),
			Progress: v.GetDuration("run.progress"),
		},
		Load: LoadConfig{
			Workers:  v.GetInt("load.workers"),
			Duration: v.GetDuration("load.duration"),
			Requests: v.GetInt("load.requests"),
			Progress: v.GetDuration("load.progress"),
		},
		Baseline: BaselineConfig{
			File:  v.GetString("baseline.file"),
			Noise: v.GetFloat64("baseline.noise"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
