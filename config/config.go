package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port     string `yaml:"port"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"server"`

	Postgres struct {
		URI string `yaml:"uri"`
	} `yaml:"postgres"`

	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`

	Redis struct {
		Addr string `yaml:"addr"`
	} `yaml:"redis"`

	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
		Issuer    string `yaml:"issuer"`
		Audience  string `yaml:"audience"`
	} `yaml:"auth"`

	LLM struct {
		Provider string `yaml:"provider"` // groq|vertex

		GroqAPIKey  string `yaml:"groq_api_key"`
		GroqBaseURL string `yaml:"groq_base_url"`
		GroqModel   string `yaml:"groq_model"`

		OpenAIAPIKey         string `yaml:"openai_api_key"`
		OpenAIBaseURL        string `yaml:"openai_base_url"`
		OpenAIModel          string `yaml:"openai_model"`
		OpenAIEmbeddingModel string `yaml:"openai_embedding_model"`
	} `yaml:"llm"`

	Google struct {
		ProjectID       string `yaml:"project_id"`
		Location        string `yaml:"location"`
		VertexModel     string `yaml:"vertex_model"`
		CredentialsFile string `yaml:"credentials_file"`
		Bucket          string `yaml:"bucket"`
	} `yaml:"google"`

	Jobs struct {
		JSearchAPIKey        string `yaml:"jsearch_api_key"`
		LinkedInClientID     string `yaml:"linkedin_client_id"`
		LinkedInClientSecret string `yaml:"linkedin_client_secret"`
		SearchCacheMinutes   int    `yaml:"search_cache_minutes"`
	} `yaml:"jobs"`

	Capabilities struct {
		MessageSender         string `yaml:"message_sender"`     // mock|whatsapp
		DocumentExtractor     string `yaml:"document_extractor"` // mock|vertex
		Transcriber           string `yaml:"transcriber"`        // mock|google
		WhatsAppToken         string `yaml:"whatsapp_token"`
		WhatsAppPhoneNumberID string `yaml:"whatsapp_phone_number_id"`
	} `yaml:"capabilities"`

	Scheduler struct {
		Enabled               bool `yaml:"enabled"`
		CheckIntervalSec      int  `yaml:"check_interval_sec"`
		IngestIntervalMinutes int  `yaml:"ingest_interval_minutes"`
		AlertIntervalMinutes  int  `yaml:"alert_interval_minutes"`
		AlertWorkers          int  `yaml:"alert_workers"`
	} `yaml:"scheduler"`
}

// Load reads .env, then the optional YAML file, then environment overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	path := os.Getenv("JOBMATE_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	setStr(&c.Server.Port, "PORT")
	setStr(&c.Server.LogLevel, "LOG_LEVEL")

	setStr(&c.Postgres.URI, "POSTGRES_URI")
	setStr(&c.Mongo.URI, "MONGO_URI")
	setStr(&c.Mongo.Database, "MONGO_DB")
	setStr(&c.Redis.Addr, "REDIS_URL")
	setStr(&c.Redis.Addr, "REDIS_URI")
	setStr(&c.Redis.Addr, "REDIS_ADDR")

	setStr(&c.Auth.JWTSecret, "SUPABASE_JWT_SECRET")
	setStr(&c.Auth.Issuer, "SUPABASE_JWT_ISSUER")
	setStr(&c.Auth.Audience, "SUPABASE_JWT_AUDIENCE")

	setStr(&c.LLM.Provider, "LLM_PROVIDER")
	setStr(&c.LLM.GroqAPIKey, "GROQ_API_KEY")
	setStr(&c.LLM.GroqBaseURL, "GROQ_BASE_URL")
	setStr(&c.LLM.GroqModel, "GROQ_MODEL")
	setStr(&c.LLM.OpenAIAPIKey, "OPENAI_API_KEY")
	setStr(&c.LLM.OpenAIBaseURL, "OPENAI_BASE_URL")
	setStr(&c.LLM.OpenAIModel, "OPENAI_MODEL")
	setStr(&c.LLM.OpenAIEmbeddingModel, "OPENAI_EMBEDDING_MODEL")

	setStr(&c.Google.ProjectID, "VERTEX_PROJECT_ID")
	setStr(&c.Google.Location, "VERTEX_LOCATION")
	setStr(&c.Google.VertexModel, "VERTEX_MODEL")
	setStr(&c.Google.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")
	setStr(&c.Google.Bucket, "GCS_BUCKET")

	setStr(&c.Jobs.JSearchAPIKey, "JSEARCH_API_KEY")
	setStr(&c.Jobs.LinkedInClientID, "LINKEDIN_CLIENT_ID")
	setStr(&c.Jobs.LinkedInClientSecret, "LINKEDIN_CLIENT_SECRET")
	setInt(&c.Jobs.SearchCacheMinutes, "JOB_SEARCH_CACHE_MINUTES")

	setStr(&c.Capabilities.MessageSender, "MESSAGE_SENDER")
	setStr(&c.Capabilities.DocumentExtractor, "DOCUMENT_EXTRACTOR")
	setStr(&c.Capabilities.Transcriber, "TRANSCRIBER")
	setStr(&c.Capabilities.WhatsAppToken, "WHATSAPP_TOKEN")
	setStr(&c.Capabilities.WhatsAppPhoneNumberID, "WHATSAPP_PHONE_NUMBER_ID")

	setBool(&c.Scheduler.Enabled, "SCHEDULER_ENABLED")
	setInt(&c.Scheduler.IngestIntervalMinutes, "INGEST_INTERVAL_MINUTES")
	setInt(&c.Scheduler.AlertIntervalMinutes, "ALERT_INTERVAL_MINUTES")
	setInt(&c.Scheduler.AlertWorkers, "ALERT_WORKERS")
}

func (c *Config) applyDefaults() {
	def := func(p *string, v string) {
		if *p == "" {
			*p = v
		}
	}
	defInt := func(p *int, v int) {
		if *p <= 0 {
			*p = v
		}
	}

	def(&c.Server.Port, "8080")
	def(&c.Server.LogLevel, "info")
	def(&c.Mongo.Database, "jobmate")

	def(&c.LLM.Provider, "groq")
	def(&c.LLM.GroqBaseURL, "https://api.groq.com/openai/v1")
	def(&c.LLM.GroqModel, "llama3-8b-8192")
	def(&c.LLM.OpenAIBaseURL, "https://api.openai.com/v1")
	def(&c.LLM.OpenAIModel, "gpt-4o-mini")
	def(&c.LLM.OpenAIEmbeddingModel, "text-embedding-3-small")

	def(&c.Google.Location, "us-central1")
	def(&c.Google.VertexModel, "gemini-1.5-flash")

	defInt(&c.Jobs.SearchCacheMinutes, 10)

	def(&c.Capabilities.MessageSender, "mock")
	def(&c.Capabilities.DocumentExtractor, "mock")
	def(&c.Capabilities.Transcriber, "mock")

	defInt(&c.Scheduler.CheckIntervalSec, 60)
	defInt(&c.Scheduler.IngestIntervalMinutes, 360)
	defInt(&c.Scheduler.AlertIntervalMinutes, 60)
	defInt(&c.Scheduler.AlertWorkers, 4)
}

func setStr(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
