package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "HUGGINGFACE_API_KEY", "GEMINI_API_KEY", "MISTRAL_API_KEY",
		"FALCON_API_URL", "GEMINI_API_URL", "MISTRAL_API_URL",
		"STORE_DRIVER", "STORE_PATH", "PERSIST_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("Port = %s, want 5000", cfg.Port)
	}
	if cfg.Addr() != ":5000" {
		t.Errorf("Addr = %s, want :5000", cfg.Addr())
	}
	if cfg.StoreDriver != "bolt" {
		t.Errorf("StoreDriver = %s, want bolt", cfg.StoreDriver)
	}
	if cfg.PersistTimeout != 10*time.Second {
		t.Errorf("PersistTimeout = %v, want 10s", cfg.PersistTimeout)
	}
	if cfg.GeminiAPIKey != "" {
		t.Errorf("GeminiAPIKey = %q, want empty", cfg.GeminiAPIKey)
	}
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("GEMINI_API_KEY", "gm")
	t.Setenv("HUGGINGFACE_API_KEY", "hf")
	t.Setenv("MISTRAL_API_KEY", "ms")
	t.Setenv("MISTRAL_API_URL", "http://localhost:9999/v1/chat/completions")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("PERSIST_TIMEOUT", "3s")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8081" || cfg.GeminiAPIKey != "gm" || cfg.HuggingFaceAPIKey != "hf" || cfg.MistralAPIKey != "ms" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.MistralURL != "http://localhost:9999/v1/chat/completions" {
		t.Errorf("MistralURL = %s", cfg.MistralURL)
	}
	if cfg.StoreDriver != "sqlite" || cfg.PersistTimeout != 3*time.Second {
		t.Errorf("StoreDriver = %s, PersistTimeout = %v", cfg.StoreDriver, cfg.PersistTimeout)
	}
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "sqlite")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--port", "7000"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "7000" {
		t.Errorf("Port = %s, want 7000 from flag", cfg.Port)
	}
	// flag não alterada não vence o ambiente
	if cfg.StoreDriver != "sqlite" {
		t.Errorf("StoreDriver = %s, want sqlite from env", cfg.StoreDriver)
	}
}

func TestLoad_InvalidDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "firestore")

	if _, err := Load(nil); err == nil {
		t.Error("expected error for invalid driver")
	}
}
