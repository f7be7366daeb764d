package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Settings holds everything that varies between deployments. Fixed tuning
// values live in environmentVariables.go; anything secret or
// environment-specific is loaded here with SWIPPE_* env overrides.
type Settings struct {
	IsProd     bool   `koanf:"is_prod"`
	ListenAddr string `koanf:"listen_addr"`

	SqlitePath  string `koanf:"sqlite_path"`
	CatalogCSV  string `koanf:"catalog_csv"`
	RedisAddr   string `koanf:"redis_addr"`
	RedisSecret string `koanf:"redis_secret"`

	QdrantHost string `koanf:"qdrant_host"`
	QdrantPort int    `koanf:"qdrant_port"`

	GeminiAPIKey   string `koanf:"gemini_api_key"`
	GeminiModel    string `koanf:"gemini_model"`
	EmbeddingModel string `koanf:"embedding_model"`

	JWTSecret string `koanf:"jwt_secret"`

	SMTPHost   string `koanf:"smtp_host"`
	SMTPPort   int    `koanf:"smtp_port"`
	SMTPSender string `koanf:"smtp_sender"`
	SMTPSecret string `koanf:"smtp_secret"`
	SenderName string `koanf:"sender_name"`
}

func defaultSettings() Settings {
	return Settings{
		IsProd:         false,
		ListenAddr:     ":3000",
		SqlitePath:     "instance/swippe.db",
		CatalogCSV:     "products.csv",
		RedisAddr:      "127.0.0.1:6379",
		QdrantHost:     "127.0.0.1",
		QdrantPort:     6334,
		GeminiModel:    "gemini-2.5-flash-lite-preview-09-2025",
		EmbeddingModel: "gemini-embedding-001",
		SMTPHost:       "smtp.gmail.com",
		SMTPPort:       587,
		SenderName:     "Swippe Quick Commerce",
	}
}

// Load layers defaults then SWIPPE_* environment variables, e.g.
// SWIPPE_REDIS_ADDR, SWIPPE_GEMINI_API_KEY, SWIPPE_JWT_SECRET.
func Load() (Settings, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultSettings(), "koanf"), nil); err != nil {
		return Settings{}, fmt.Errorf("loading default settings: %w", err)
	}

	envProvider := env.Provider("SWIPPE_", ".", func(key string) string {
		return strings.ToLower(strings.TrimPrefix(key, "SWIPPE_"))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Settings{}, fmt.Errorf("loading environment: %w", err)
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return Settings{}, fmt.Errorf("unmarshalling settings: %w", err)
	}

	if s.JWTSecret == "" {
		return Settings{}, fmt.Errorf("SWIPPE_JWT_SECRET is required")
	}
	return s, nil
}

// MailEnabled reports whether SMTP credentials were configured; when false
// invoice jobs complete without sending anything.
func (s Settings) MailEnabled() bool {
	return s.SMTPSender != "" && s.SMTPSecret != ""
}
