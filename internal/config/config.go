package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bookloader/internal/catalog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreREST     = "rest"
	StorePostgres = "postgres"
)

type (
	Config struct {
		Supabase
		Postgres
		OpenLibrary
		HTTP
		Import
		Log
	}

	Supabase struct {
		URL string
		Key string
	}
	Postgres struct {
		DSN           string
		MigrationsDir string
	}
	OpenLibrary struct {
		BaseURL   string
		CoversURL string
	}
	// HTTP applies to both the search API and the table API.
	HTTP struct {
		UserAgent string
		Timeout   time.Duration // zero keeps the transport default
	}
	Import struct {
		Store      string
		InputPath  string
		CategoryID string
		FailFast   bool
		DryRun     bool
	}
	Log struct {
		Env   string
		Level string
	}
)

// LoadEnvFiles reads .env and .env.local without overriding variables that
// are already set in the environment.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds the configuration from the environment. It does not validate;
// call Validate once flags have been applied.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("store", StoreREST)
	v.SetDefault("input_path", "pdfs.csv")
	v.SetDefault("category_id", catalog.DefaultCategoryID)
	v.SetDefault("openlibrary_base_url", "http://openlibrary.org")
	v.SetDefault("covers_base_url", "http://covers.openlibrary.org")
	v.SetDefault("user_agent", "bookloader/1.0")
	v.SetDefault("http_timeout", "0s")
	v.SetDefault("fail_fast", false)
	v.SetDefault("migrations_dir", "db/migrations")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")

	return &Config{
		Supabase: Supabase{
			URL: v.GetString("SUPABASE_URL"),
			Key: v.GetString("SUPABASE_KEY"),
		},
		Postgres: Postgres{
			DSN:           v.GetString("DB_DSN"),
			MigrationsDir: v.GetString("MIGRATIONS_DIR"),
		},
		OpenLibrary: OpenLibrary{
			BaseURL:   v.GetString("OPENLIBRARY_BASE_URL"),
			CoversURL: v.GetString("COVERS_BASE_URL"),
		},
		HTTP: HTTP{
			UserAgent: v.GetString("USER_AGENT"),
			Timeout:   v.GetDuration("HTTP_TIMEOUT"),
		},
		Import: Import{
			Store:      strings.ToLower(v.GetString("STORE")),
			InputPath:  v.GetString("INPUT_PATH"),
			CategoryID: v.GetString("CATEGORY_ID"),
			FailFast:   v.GetBool("FAIL_FAST"),
		},
		Log: Log{
			Env:   v.GetString("APP_ENV"),
			Level: v.GetString("LOG_LEVEL"),
		},
	}
}

// Validate checks what an import run needs. Connection settings for the
// selected store have no defaults and must be present.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(&c.Import,
		validation.Field(&c.Import.Store, validation.Required, validation.In(StoreREST, StorePostgres)),
		validation.Field(&c.Import.InputPath, validation.Required),
		validation.Field(&c.Import.CategoryID, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("import settings: %w", err)
	}

	if err := validation.ValidateStruct(&c.OpenLibrary,
		validation.Field(&c.OpenLibrary.BaseURL, validation.Required, is.URL),
		validation.Field(&c.OpenLibrary.CoversURL, validation.Required, is.URL),
	); err != nil {
		return fmt.Errorf("openlibrary settings: %w", err)
	}

	if c.Import.DryRun {
		return nil
	}
	return c.ValidateStore()
}

// ValidateStore checks only the connection settings of the selected store.
func (c *Config) ValidateStore() error {
	switch c.Import.Store {
	case StoreREST:
		if err := validation.ValidateStruct(&c.Supabase,
			validation.Field(&c.Supabase.URL, validation.Required.Error("SUPABASE_URL is required"), is.URL),
			validation.Field(&c.Supabase.Key, validation.Required.Error("SUPABASE_KEY is required")),
		); err != nil {
			return fmt.Errorf("supabase settings: %w", err)
		}
	case StorePostgres:
		if err := validation.Validate(c.Postgres.DSN, validation.Required.Error("DB_DSN is required")); err != nil {
			return fmt.Errorf("postgres settings: %w", err)
		}
	default:
		return errors.New("unknown store: " + c.Import.Store)
	}
	return nil
}
