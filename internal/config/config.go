package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is built once at startup and handed to every component that needs it.
type Config struct {
	App     AppConfig
	DB      DBConfig
	Gemini  GeminiConfig
	LLM     LLMConfig
	OCR     OCRConfig
	Storage StorageConfig
	Search  SearchConfig
	Cache   CacheConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "resume-matcher")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_URL", "http://localhost:8080")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")

	v.SetDefault("GEMINI_CHAT_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_EMBEDDING_MODEL", "gemini-embedding-001")
	v.SetDefault("GEMINI_MAX_RETRIES", 3)
	v.SetDefault("GEMINI_REQUEST_TIMEOUT", 90*time.Second)

	v.SetDefault("LLM_PROVIDER", ProviderOpenAI)
	v.SetDefault("LLM_BASE_URL", "https://openrouter.ai/api/v1")
	v.SetDefault("LLM_MODEL", "openai/gpt-4o-mini")
	v.SetDefault("AZURE_OPENAI_API_VERSION", "2024-06-01")
	v.SetDefault("LLM_TEMPERATURE", 0.2)
	v.SetDefault("LLM_MAX_LOG_LENGTH", 200)
	v.SetDefault("RESUME_PARSE_POLICY", "strict")

	v.SetDefault("OCR_MODEL", "prebuilt-read")
	v.SetDefault("OCR_API_VERSION", "2023-07-31")
	v.SetDefault("OCR_POLL_INTERVAL", time.Second)
	v.SetDefault("OCR_TIMEOUT", 2*time.Minute)

	v.SetDefault("STORAGE_URL", "file:///tmp/resume-matcher/gtfydemo")
	v.SetDefault("STORAGE_RESUME_FOLDER", "resume")
	v.SetDefault("STORAGE_ENHANCED_FOLDER", "enhanced_cv")
	v.SetDefault("SAS_EXPIRY", 60*time.Minute)
	v.SetDefault("MAX_UPLOAD_BYTES", 5*1024*1024)

	v.SetDefault("SEARCH_BACKEND", SearchBackendIndex)
	v.SetDefault("SEARCH_API_VERSION", "2023-11-01")
	v.SetDefault("SEARCH_TOP", 20)
	v.SetDefault("SEARCH_HIGHLIGHT_FIELDS", "job_desc,req_skills")
	v.SetDefault("SEARCH_SELECT", "id,job_id,title,company,location,type,req_skills,key_responsibilities")
	v.SetDefault("MATCH_MALFORMED_HIT_POLICY", "skip_and_collect")

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", 24*time.Hour)
}

// Load reads the configuration from the environment (and any values already
// set on v, e.g. bound flags).
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Env:     v.GetString("APP_ENV"),
			Port:    v.GetString("APP_PORT"),
			BaseURL: v.GetString("APP_URL"),
			Debug:   v.GetBool("DEBUG"),
			JSONLog: v.GetBool("JSON"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			TimeZone: v.GetString("DB_TIMEZONE"),
		},
		Gemini: GeminiConfig{
			APIKey:         v.GetString("GEMINI_API_KEY"),
			ChatModel:      v.GetString("GEMINI_CHAT_MODEL"),
			EmbeddingModel: v.GetString("GEMINI_EMBEDDING_MODEL"),
			MaxRetries:     v.GetInt("GEMINI_MAX_RETRIES"),
			RequestTimeout: v.GetDuration("GEMINI_REQUEST_TIMEOUT"),
		},
		LLM: LLMConfig{
			Provider:        v.GetString("LLM_PROVIDER"),
			APIKey:          v.GetString("LLM_API_KEY"),
			BaseURL:         v.GetString("LLM_BASE_URL"),
			Model:           v.GetString("LLM_MODEL"),
			AzureEndpoint:   v.GetString("AZURE_OPENAI_ENDPOINT"),
			AzureDeployment: v.GetString("AZURE_OPENAI_DEPLOYMENT"),
			AzureAPIVersion: v.GetString("AZURE_OPENAI_API_VERSION"),
			Temperature:     v.GetFloat64("LLM_TEMPERATURE"),
			MaxLogLength:    v.GetInt("LLM_MAX_LOG_LENGTH"),
			ParsePolicy:     v.GetString("RESUME_PARSE_POLICY"),
		},
		OCR: OCRConfig{
			Endpoint:     v.GetString("OCR_ENDPOINT"),
			APIKey:       v.GetString("OCR_KEY"),
			Model:        v.GetString("OCR_MODEL"),
			APIVersion:   v.GetString("OCR_API_VERSION"),
			PollInterval: v.GetDuration("OCR_POLL_INTERVAL"),
			Timeout:      v.GetDuration("OCR_TIMEOUT"),
		},
		Storage: StorageConfig{
			BaseURL:        v.GetString("STORAGE_URL"),
			ResumeFolder:   v.GetString("STORAGE_RESUME_FOLDER"),
			EnhancedFolder: v.GetString("STORAGE_ENHANCED_FOLDER"),
			SigningKey:     v.GetString("STORAGE_SIGNING_KEY"),
			LinkTTL:        v.GetDuration("SAS_EXPIRY"),
			MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
		},
		Search: SearchConfig{
			Backend:            v.GetString("SEARCH_BACKEND"),
			Endpoint:           v.GetString("SEARCH_ENDPOINT"),
			Index:              v.GetString("SEARCH_INDEX"),
			APIKey:             v.GetString("SEARCH_KEY"),
			APIVersion:         v.GetString("SEARCH_API_VERSION"),
			Top:                v.GetInt("SEARCH_TOP"),
			HighlightFields:    v.GetString("SEARCH_HIGHLIGHT_FIELDS"),
			Select:             v.GetString("SEARCH_SELECT"),
			MalformedHitPolicy: v.GetString("MATCH_MALFORMED_HIT_POLICY"),
		},
		Cache: CacheConfig{
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
			TTL:           v.GetDuration("CACHE_TTL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise only fail on first use.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	case ProviderAzure:
		if c.LLM.AzureEndpoint == "" || c.LLM.AzureDeployment == "" {
			return fmt.Errorf("azure provider requires AZURE_OPENAI_ENDPOINT and AZURE_OPENAI_DEPLOYMENT")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	switch c.Search.Backend {
	case SearchBackendPGVector:
	case SearchBackendIndex:
		if c.Search.Endpoint == "" || c.Search.Index == "" {
			return fmt.Errorf("index search backend requires SEARCH_ENDPOINT and SEARCH_INDEX")
		}
	default:
		return fmt.Errorf("unknown SEARCH_BACKEND %q", c.Search.Backend)
	}

	if (c.LLM.Provider == ProviderGemini || c.Search.Backend == SearchBackendPGVector) && c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY not set")
	}

	if c.Storage.SigningKey == "" {
		return fmt.Errorf("STORAGE_SIGNING_KEY not set")
	}
	return nil
}
