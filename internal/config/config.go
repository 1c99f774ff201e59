package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Provider     string       `yaml:"provider" mapstructure:"provider"`
	Ollama       OllamaConfig `yaml:"ollama" mapstructure:"ollama"`
	OpenAI       APIConfig    `yaml:"openai" mapstructure:"openai"`
	Gemini       APIConfig    `yaml:"gemini" mapstructure:"gemini"`
	DBPath       string       `yaml:"db_path" mapstructure:"db_path"`
	WorkspaceDir string       `yaml:"workspace_dir" mapstructure:"workspace_dir"`
	Debug        bool         `yaml:"debug" mapstructure:"debug"`
}

type OllamaConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

type APIConfig struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	Model  string `yaml:"model" mapstructure:"model"`
}

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Provider: "ollama",
		Ollama: OllamaConfig{
			BaseURL: "http://localhost:11434",
			Model:   "mistral",
		},
		OpenAI: APIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: APIConfig{
			Model: "gemini-2.0-flash",
		},
		DBPath:       filepath.Join(home, ".config", "tend", "tend.db"),
		WorkspaceDir: "pdf_workspace",
	}
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths
	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "tend"))
	}
	home, _ := os.UserHomeDir()
	viper.AddConfigPath(filepath.Join(home, ".config", "tend"))

	// Environment variables: TEND_PROVIDER, TEND_OPENAI_API_KEY, ...
	viper.SetEnvPrefix("TEND")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error produced
			return nil, err
		}
		// Config file not found; ignore and use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Manual expansion for keys in config file
	cfg.OpenAI.APIKey = expandEnv(cfg.OpenAI.APIKey)
	cfg.Gemini.APIKey = expandEnv(cfg.Gemini.APIKey)
	cfg.Ollama.BaseURL = expandEnv(cfg.Ollama.BaseURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Provider {
	case "ollama":
		if c.Ollama.BaseURL == "" {
			return fmt.Errorf("config: provider ollama requires base_url")
		}
		if c.Ollama.Model == "" {
			return fmt.Errorf("config: provider ollama requires model")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("config: provider openai requires api_key")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("config: provider gemini requires api_key")
		}
	default:
		return fmt.Errorf("config: invalid provider %q (must be ollama, openai, or gemini)", c.Provider)
	}

	if c.DBPath == "" {
		return fmt.Errorf("config: db_path is required")
	}
	return nil
}
