package personasdk

import (
	"os"
	"path/filepath"
	"testing"
)

// ══════════════════════════════════════════════
// Config tests
// ══════════════════════════════════════════════

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Generation.Model != "deepseek-v3" {
		t.Fatalf("unexpected default model %q", cfg.Generation.Model)
	}
	if cfg.Generation.BaseURL != "https://dashscope.aliyuncs.com/compatible-mode/v1" {
		t.Fatalf("unexpected default base url %q", cfg.Generation.BaseURL)
	}
	if cfg.Redis.KeyPrefix != "edge_persona_db" {
		t.Fatalf("unexpected default key prefix %q", cfg.Redis.KeyPrefix)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[generation]
model = "qwen-max"
temperature = 0.3

[redis]
addr = "redis.internal:6380"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generation.Model != "qwen-max" {
		t.Fatalf("file value should win, got %q", cfg.Generation.Model)
	}
	if cfg.Generation.Temperature != 0.3 {
		t.Fatalf("file value should win, got %v", cfg.Generation.Temperature)
	}
	if cfg.Generation.TimeoutSeconds != 30 {
		t.Fatalf("unset field should keep the default, got %d", cfg.Generation.TimeoutSeconds)
	}
	if cfg.Redis.Addr != "redis.internal:6380" {
		t.Fatalf("file value should win, got %q", cfg.Redis.Addr)
	}
	if cfg.Redis.KeyPrefix != "edge_persona_db" {
		t.Fatalf("unset field should keep the default, got %q", cfg.Redis.KeyPrefix)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[generation]\napi_key = \"file-key\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("EDGE_PERSONA_API_KEY", "env-key")
	t.Setenv("EDGE_PERSONA_REDIS_ADDR", "10.0.0.5:6379")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generation.APIKey != "env-key" {
		t.Fatalf("env should override the file, got %q", cfg.Generation.APIKey)
	}
	if cfg.Redis.Addr != "10.0.0.5:6379" {
		t.Fatalf("env should override the default, got %q", cfg.Redis.Addr)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("missing file should be an error")
	}
}

func TestLoadConfig_BadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("== not toml =="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("malformed file should be an error")
	}
}
