package personasdk

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// GenerationConfig configures the external generation service call.
type GenerationConfig struct {
	Model          string  `toml:"model"`
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	Temperature    float64 `toml:"temperature"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// RedisConfig configures the Redis-backed profile store.
type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// Config is the SDK configuration loaded from a TOML file, with environment
// overrides for the secrets.
type Config struct {
	Generation GenerationConfig `toml:"generation"`
	Redis      RedisConfig      `toml:"redis"`
}

// DefaultConfig returns the shipped defaults: DeepSeek-V3 through the
// DashScope OpenAI-compatible endpoint, local Redis.
func DefaultConfig() Config {
	return Config{
		Generation: GenerationConfig{
			Model:          "deepseek-v3",
			BaseURL:        "https://dashscope.aliyuncs.com/compatible-mode/v1",
			Temperature:    0.8,
			TimeoutSeconds: 30,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "edge_persona_db",
		},
	}
}

// LoadConfig reads a TOML config file, fills unset fields from the defaults
// and applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()
	return &cfg, nil
}

// applyEnv lets deployment secrets override file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("EDGE_PERSONA_API_KEY"); v != "" {
		c.Generation.APIKey = v
	}
	if v := os.Getenv("EDGE_PERSONA_BASE_URL"); v != "" {
		c.Generation.BaseURL = v
	}
	if v := os.Getenv("EDGE_PERSONA_MODEL"); v != "" {
		c.Generation.Model = v
	}
	if v := os.Getenv("EDGE_PERSONA_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
}
