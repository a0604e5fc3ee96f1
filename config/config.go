package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	ProviderAzure  = "azure"
	ProviderOpenAI = "openai"

	DefaultOpenAIModel         = "gpt-4o-mini"
	DefaultMaxCompletionTokens = 16384
	DefaultServerAddr          = ":8080"
)

// Config is resolved once at process entry and passed down explicitly.
type Config struct {
	LLM        LLM
	ServerAddr string
}

// LLM holds the completion service credentials and sampling constants.
// Azure needs Endpoint, APIKey, Deployment and APIVersion; OpenAI only needs APIKey.
type LLM struct {
	Provider   string
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
	Model      string
	BaseURL    string

	MaxCompletionTokens int64
	// Nil leaves the value to the service default.
	Temperature *float64
	TopP        *float64
}

// Options controls where Load looks for values.
type Options struct {
	// EnvFile is a dotenv file; a missing file is ignored.
	EnvFile string
	// ConfigFile is an explicit yaml path. Empty means an optional ./slogan.yaml.
	ConfigFile string
}

// Load reads .env, an optional yaml file and the process environment.
// Missing credentials are not an error here; call LLM.Validate before use.
func Load(opts Options) (Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("slogan")
		v.AddConfigPath(".")
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetDefault("llm.provider", ProviderAzure)
	v.SetDefault("llm.max_completion_tokens", DefaultMaxCompletionTokens)
	v.SetDefault("server.addr", DefaultServerAddr)

	_ = v.BindEnv("llm.provider", "SLOGAN_PROVIDER")
	provider := strings.ToLower(strings.TrimSpace(v.GetString("llm.provider")))
	switch provider {
	case ProviderAzure:
		v.SetDefault("llm.model", "")
		_ = v.BindEnv("llm.api_key", "AZURE_OPENAI_KEY")
	case ProviderOpenAI:
		v.SetDefault("llm.model", DefaultOpenAIModel)
		_ = v.BindEnv("llm.api_key", "OPENAI_API_KEY")
	default:
		return Config{}, fmt.Errorf("llm provider %q not supported (use %s or %s)", provider, ProviderAzure, ProviderOpenAI)
	}
	_ = v.BindEnv("llm.endpoint", "AZURE_OPENAI_ENDPOINT")
	_ = v.BindEnv("llm.deployment", "AZURE_OPENAI_DEPLOYMENT")
	_ = v.BindEnv("llm.api_version", "AZURE_OPENAI_API_VERSION")
	_ = v.BindEnv("llm.model", "OPENAI_MODEL")
	_ = v.BindEnv("llm.base_url", "OPENAI_BASE_URL")
	_ = v.BindEnv("llm.max_completion_tokens", "SLOGAN_MAX_COMPLETION_TOKENS")
	_ = v.BindEnv("llm.temperature", "SLOGAN_TEMPERATURE")
	_ = v.BindEnv("llm.top_p", "SLOGAN_TOP_P")
	_ = v.BindEnv("server.addr", "SLOGAN_SERVER_ADDR")

	cfg := Config{
		LLM: LLM{
			Provider:            provider,
			Endpoint:            strings.TrimSpace(v.GetString("llm.endpoint")),
			APIKey:              strings.TrimSpace(v.GetString("llm.api_key")),
			Deployment:          strings.TrimSpace(v.GetString("llm.deployment")),
			APIVersion:          strings.TrimSpace(v.GetString("llm.api_version")),
			Model:               strings.TrimSpace(v.GetString("llm.model")),
			BaseURL:             strings.TrimSpace(v.GetString("llm.base_url")),
		},
		ServerAddr: v.GetString("server.addr"),
	}

	// Sampling values are sent as-is, so a value that does not parse is an error, never zero.
	tokens, err := cast.ToInt64E(trimmed(v.Get("llm.max_completion_tokens")))
	if err != nil || tokens < 0 {
		return Config{}, fmt.Errorf("invalid SLOGAN_MAX_COMPLETION_TOKENS %q: want a non-negative integer", fmt.Sprint(v.Get("llm.max_completion_tokens")))
	}
	cfg.LLM.MaxCompletionTokens = tokens
	if cfg.LLM.Temperature, err = optionalFloat(v, "llm.temperature", "SLOGAN_TEMPERATURE"); err != nil {
		return Config{}, err
	}
	if cfg.LLM.TopP, err = optionalFloat(v, "llm.top_p", "SLOGAN_TOP_P"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func optionalFloat(v *viper.Viper, key, env string) (*float64, error) {
	if !v.IsSet(key) {
		return nil, nil
	}
	f, err := cast.ToFloat64E(trimmed(v.Get(key)))
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: want a number", env, fmt.Sprint(v.Get(key)))
	}
	return &f, nil
}

func trimmed(val any) any {
	if s, ok := val.(string); ok {
		return strings.TrimSpace(s)
	}
	return val
}

// MissingError names the configuration keys that are absent for a provider.
type MissingError struct {
	Provider string
	Fields   []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing %s configuration: %s", e.Provider, strings.Join(e.Fields, ", "))
}

// Validate reports absent required keys as a *MissingError, or nil when usable.
func (l LLM) Validate() error {
	var missing []string
	switch l.Provider {
	case ProviderOpenAI:
		if l.APIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	case ProviderAzure, "":
		if l.Endpoint == "" {
			missing = append(missing, "AZURE_OPENAI_ENDPOINT")
		}
		if l.APIKey == "" {
			missing = append(missing, "AZURE_OPENAI_KEY")
		}
		if l.Deployment == "" {
			missing = append(missing, "AZURE_OPENAI_DEPLOYMENT")
		}
		if l.APIVersion == "" {
			missing = append(missing, "AZURE_OPENAI_API_VERSION")
		}
	default:
		return fmt.Errorf("llm provider %q not supported", l.Provider)
	}
	if len(missing) > 0 {
		provider := l.Provider
		if provider == "" {
			provider = ProviderAzure
		}
		return &MissingError{Provider: provider, Fields: missing}
	}
	return nil
}

// ModelName is the deployment for azure and the model otherwise.
func (l LLM) ModelName() string {
	if l.Provider == ProviderOpenAI {
		if l.Model == "" {
			return DefaultOpenAIModel
		}
		return l.Model
	}
	return l.Deployment
}
