// Package config carrega a configuração do relay a partir de flags, ambiente e padrões.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config reúne tudo que o servidor precisa na inicialização
type Config struct {
	Port string

	HuggingFaceAPIKey string
	GeminiAPIKey      string
	MistralAPIKey     string

	// Endpoints opcionais; vazio usa o endpoint público do provider
	FalconURL  string
	GeminiURL  string
	MistralURL string

	StoreDriver    string
	StorePath      string
	PersistTimeout time.Duration
}

// flags e a chave de ambiente correspondente
var flagKeys = map[string]string{
	"port":         "PORT",
	"store-driver": "STORE_DRIVER",
	"store-path":   "STORE_PATH",
}

// RegisterFlags adiciona as flags que sobrescrevem o ambiente
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("port", "5000", "port to listen on (PORT)")
	fs.String("store-driver", "bolt", "chat store driver: bolt, sqlite or memory (STORE_DRIVER)")
	fs.String("store-path", "", "path of the chat store file (STORE_PATH)")
}

// Load resolve a configuração: flag alterada > variável de ambiente > padrão.
// fs pode ser nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("PORT", "5000")
	v.SetDefault("STORE_DRIVER", "bolt")
	v.SetDefault("STORE_PATH", "")
	v.SetDefault("PERSIST_TIMEOUT", "10s")
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		Port:              v.GetString("PORT"),
		HuggingFaceAPIKey: v.GetString("HUGGINGFACE_API_KEY"),
		GeminiAPIKey:      v.GetString("GEMINI_API_KEY"),
		MistralAPIKey:     v.GetString("MISTRAL_API_KEY"),
		FalconURL:         v.GetString("FALCON_API_URL"),
		GeminiURL:         v.GetString("GEMINI_API_URL"),
		MistralURL:        v.GetString("MISTRAL_API_URL"),
		StoreDriver:       v.GetString("STORE_DRIVER"),
		StorePath:         v.GetString("STORE_PATH"),
		PersistTimeout:    v.GetDuration("PERSIST_TIMEOUT"),
	}

	switch cfg.StoreDriver {
	case "bolt", "sqlite", "memory":
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: expected bolt, sqlite or memory", cfg.StoreDriver)
	}
	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT must not be empty")
	}

	return cfg, nil
}

// Addr retorna o endereço de escuta do servidor HTTP
func (c *Config) Addr() string {
	return ":" + c.Port
}
