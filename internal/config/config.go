package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all outreach configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	Links    LinksConfig    `yaml:"links"`
}

type ServerConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LLMConfig struct {
	Provider              string  `yaml:"provider"` // "gemini", "anthropic", "ollama"
	Model                 string  `yaml:"model"` // empty picks the provider default
	GeminiKey             string  `yaml:"gemini_key"`
	GeminiBaseURL         string  `yaml:"gemini_base_url"`
	AnthropicKey          string  `yaml:"anthropic_key"`
	OllamaURL             string  `yaml:"ollama_url"`
	OllamaModel           string  `yaml:"ollama_model"` // e.g. "llama3.2"
	GenerationTemperature float64 `yaml:"generation_temperature"`
	ExtractionTemperature float64 `yaml:"extraction_temperature"`
}

type LinksConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	RateLimitRPS float64       `yaml:"rate_limit_rps"` // 0 disables the limiter
	UserAgent    string        `yaml:"user_agent"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37780,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via store.DefaultDBPath()
		},
		LLM: LLMConfig{
			Provider:              "gemini",
			OllamaURL:             "http://localhost:11434",
			OllamaModel:           "llama3.2",
			GenerationTemperature: 0.3,
			ExtractionTemperature: 0.2,
		},
		Links: LinksConfig{
			Timeout:      10 * time.Second,
			MaxBodyBytes: 2 << 20,
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (if any), then environment overrides. A .env file in the working
// directory is loaded first when present.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	str("GEMINI_API_KEY", &c.LLM.GeminiKey)
	str("GEMINI_BASE_URL", &c.LLM.GeminiBaseURL)
	str("ANTHROPIC_API_KEY", &c.LLM.AnthropicKey)
	str("OUTREACH_LLM_PROVIDER", &c.LLM.Provider)
	str("OUTREACH_DB", &c.Database.Path)
	str("OUTREACH_BIND", &c.Server.Bind)

	if v := getenv("GEMINI_MODEL"); v != "" && c.LLM.Provider == "gemini" {
		c.LLM.Model = v
	}
	if v := getenv("OUTREACH_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("OUTREACH_PORT: %w", err)
		}
		c.Server.Port = port
	}
	return nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
