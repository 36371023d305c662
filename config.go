package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Source  string `mapstructure:"source"`
	PerPage int    `mapstructure:"per_page"`
	Pexels  struct {
		Key string `mapstructure:"key"`
	} `mapstructure:"pexels"`
	Unsplash struct {
		AccessKey string `mapstructure:"access"`
		SecretKey string `mapstructure:"secret"`
	} `mapstructure:"unsplash"`
	Pixabay struct {
		Key string `mapstructure:"key"`
	} `mapstructure:"pixabay"`
	HTTP struct {
		Addr    string        `mapstructure:"addr"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"http"`
	Notices struct {
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"notices"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Debug struct {
		PrettyJson bool `mapstructure:"pretty_json"`
	} `mapstructure:"debug"`
}

const defaultConfigDir = "conf"

var sources = []string{"pixabay", "pexels", "unsplash"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source", "")
	v.SetDefault("per_page", 12)
	v.SetDefault("pixabay.key", "")
	v.SetDefault("pexels.key", "")
	v.SetDefault("unsplash.access", "")
	v.SetDefault("unsplash.secret", "")
	v.SetDefault("http.addr", "127.0.0.1:8081")
	v.SetDefault("http.timeout", "0s")
	v.SetDefault("notices.ttl", "4s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("debug.pretty_json", false)
}

// LoadConfig reads path, or conf/config.json when path is empty, and
// applies GALLERY_* environment overrides. A missing default file is not
// an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("GALLERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(defaultConfigDir)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))
	return &cfg, nil
}

func (cfg *Config) keyFor(source string) string {
	switch source {
	case "pixabay":
		return cfg.Pixabay.Key
	case "pexels":
		return cfg.Pexels.Key
	case "unsplash":
		return cfg.Unsplash.AccessKey
	}
	return ""
}

// ResolveSource returns the configured source, or the first one with a key.
func (cfg *Config) ResolveSource() (string, error) {
	if cfg.Source != "" {
		if !slices.Contains(sources, cfg.Source) {
			return "", fmt.Errorf("unknown source: %s", cfg.Source)
		}
		if cfg.keyFor(cfg.Source) == "" {
			return "", fmt.Errorf("missing api key for source %s", cfg.Source)
		}
		return cfg.Source, nil
	}
	for _, s := range sources {
		if cfg.keyFor(s) != "" {
			return s, nil
		}
	}
	return "", errors.New("no image source configured: set pixabay.key, pexels.key or unsplash.access")
}

func (cfg *Config) Validate() error {
	if cfg.PerPage < 1 {
		return fmt.Errorf("per_page must be positive, got %d", cfg.PerPage)
	}
	if cfg.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative, got %s", cfg.HTTP.Timeout)
	}
	if cfg.Notices.TTL <= 0 {
		return fmt.Errorf("notices.ttl must be positive, got %s", cfg.Notices.TTL)
	}
	_, err := cfg.ResolveSource()
	return err
}

// NewSearcher builds the ImageSearcher for the resolved source.
func NewSearcher(cfg *Config, logger *slog.Logger) (ImageSearcher, error) {
	source, err := cfg.ResolveSource()
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: cfg.HTTP.Timeout}
	switch source {
	case "pexels":
		return NewPexelsApi(cfg, client, logger), nil
	case "unsplash":
		return NewUnsplashApi(cfg, client, logger), nil
	default:
		return NewPixabayApi(cfg, client, logger), nil
	}
}
