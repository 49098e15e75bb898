package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Env holds credentials and runtime settings read from the environment.
// NEWS_API_KEY and HUGGINGFACE_API_KEY are checked per request rather than
// at startup, so a misconfigured deploy answers 500 instead of crashing.
type Env struct {
	Port           string `envconfig:"PORT" default:"8080"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	NewsAPIKey     string `envconfig:"NEWS_API_KEY" required:"false"`
	HuggingFaceKey string `envconfig:"HUGGINGFACE_API_KEY" required:"false"`
	OpenAIKey      string `envconfig:"OPENAI_API_KEY" required:"false"`
	JWTSecret      string `envconfig:"JWT_SECRET_KEY" required:"false"`
	Database       DatabaseEnv
}

// DatabaseEnv holds Postgres connection parameters. The store is optional:
// leaving DB_USER empty disables persistence entirely.
type DatabaseEnv struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"false"`
	Password string `envconfig:"DB_PASSWORD" required:"false"`
	Name     string `envconfig:"DB_NAME" default:"moodsy"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

func (d DatabaseEnv) Enabled() bool {
	return d.User != ""
}

// LoadEnv reads the environment into an Env struct.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	return &env, nil
}

// Config holds pipeline tunables loaded from config.yaml.
type Config struct {
	News struct {
		PageSize       int  `yaml:"page_size"`
		TimeoutSeconds int  `yaml:"timeout_seconds"`
		GoogleNewsRSS  bool `yaml:"google_news_rss"`
	} `yaml:"news"`

	Sentiment struct {
		Model string `yaml:"model"`
	} `yaml:"sentiment"`

	Completion struct {
		Model string `yaml:"model"`
	} `yaml:"completion"`

	// Overrides merged on top of the built-in country -> language map.
	Languages map[string]string `yaml:"languages"`
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.News.TimeoutSeconds) * time.Second
}

// Default returns the tunables used when no config.yaml is found.
func Default() *Config {
	cfg := &Config{}
	cfg.News.PageSize = 3
	cfg.News.TimeoutSeconds = 10
	cfg.News.GoogleNewsRSS = true
	cfg.Sentiment.Model = "distilbert-base-uncased-finetuned-sst-2-english"
	cfg.Completion.Model = "gpt-3.5-turbo"
	return cfg
}

// LoadConfig reads config.yaml, probing the same paths whether the binary
// runs from the repo root or from cmd/api. A missing file falls back to
// defaults; a malformed file is an error.
func LoadConfig() (*Config, error) {
	_, filePath, _, ok := runtime.Caller(0)
	var basePath string
	if ok {
		basePath = filepath.Dir(filePath)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	possiblePaths := []string{}
	if basePath != "" {
		possiblePaths = append(possiblePaths, filepath.Join(basePath, "config.yaml"))
	}
	possiblePaths = append(possiblePaths,
		filepath.Join(cwd, "Internal", "utils", "config", "config.yaml"),
		"Internal/utils/config/config.yaml",
		"config.yaml",
	)

	var data []byte
	for _, path := range possiblePaths {
		data, err = os.ReadFile(path)
		if err == nil {
			break
		}
	}
	if err != nil {
		return Default(), nil
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config.yaml: %w", err)
	}
	if cfg.News.PageSize <= 0 {
		cfg.News.PageSize = 3
	}
	if cfg.News.TimeoutSeconds <= 0 {
		cfg.News.TimeoutSeconds = 10
	}
	return cfg, nil
}
