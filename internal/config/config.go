package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"medialetter/internal/core"
)

// Config holds all application configuration
type Config struct {
	AI         AI        `mapstructure:"ai"`
	Newsletter Letter    `mapstructure:"newsletter"`
	Jellyfin   Jellyfin  `mapstructure:"jellyfin"`
	SMTP       SMTP      `mapstructure:"smtp"`
	Recipients []string `mapstructure:"recipients" validate:"dive,email"`
	Schedule   Schedule `mapstructure:"schedule"`
	Logging    Logging  `mapstructure:"logging"`
}

// AI holds text-generation provider configuration
type AI struct {
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=openai anthropic gemini custom"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	BaseURL  string `mapstructure:"base_url" validate:"omitempty,url"`
}

// Configured reports whether the provider can be called at all.
func (a AI) Configured() bool {
	return a.APIKey != ""
}

// Letter holds newsletter content configuration
type Letter struct {
	Tone               string   `mapstructure:"tone"`
	Personalization    bool     `mapstructure:"personalization"`
	CustomPrompt       string   `mapstructure:"custom_prompt"`
	MaxItems           int      `mapstructure:"max_items" validate:"gt=0"`
	DaysBack           int      `mapstructure:"days_back" validate:"gt=0"`
	Libraries          []string `mapstructure:"libraries"`
	ContentTypes       []string `mapstructure:"content_types"`
	SubjectTemplate    string   `mapstructure:"subject_template"`
	IncludePosters     bool     `mapstructure:"include_posters"`
}

// Jellyfin holds media server connection configuration
type Jellyfin struct {
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey  string `mapstructure:"api_key"`
}

// SMTP holds mail delivery configuration
type SMTP struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port" validate:"gt=0,lte=65535"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	UseTLS      bool   `mapstructure:"use_tls"`
	SenderEmail string `mapstructure:"sender_email" validate:"omitempty,email"`
	SenderName  string `mapstructure:"sender_name"`
}

// Schedule holds recurring-run configuration
type Schedule struct {
	Enabled       bool `mapstructure:"enabled"`
	IntervalHours int  `mapstructure:"interval_hours" validate:"gt=0"`
}

// Logging holds logging configuration
type Logging struct {
	Level string `mapstructure:"level"`
}

var globalConfig *Config

// Load loads the configuration from file, environment and defaults.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".medialetter")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

func setDefaults() {
	viper.SetDefault("ai.provider", "openai")
	viper.SetDefault("ai.model", "gpt-4o-mini")
	viper.SetDefault("ai.base_url", "https://api.openai.com/v1")

	viper.SetDefault("newsletter.tone", "friendly")
	viper.SetDefault("newsletter.personalization", true)
	viper.SetDefault("newsletter.max_items", 10)
	viper.SetDefault("newsletter.days_back", 7)
	viper.SetDefault("newsletter.content_types", []string{
		core.TypeMovie, core.TypeSeries, core.TypeSeason, core.TypeEpisode,
		core.TypeMusicAlbum, core.TypeAudio,
	})
	viper.SetDefault("newsletter.subject_template", "🎬 Your Weekly Media Update - {ItemCount} New Items")
	viper.SetDefault("newsletter.include_posters", true)

	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("smtp.use_tls", true)
	viper.SetDefault("smtp.sender_name", "Media Newsletter")

	viper.SetDefault("schedule.enabled", false)
	viper.SetDefault("schedule.interval_hours", 168)

	viper.SetDefault("logging.level", "info")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("ai.api_key", []string{
		"AI_API_KEY",
		"OPENAI_API_KEY",
		"ANTHROPIC_API_KEY",
		"GEMINI_API_KEY",
	})

	bindEnvKeys("jellyfin.base_url", []string{
		"JELLYFIN_BASE_URL",
		"JELLYFIN_URL",
	})

	bindEnvKeys("jellyfin.api_key", []string{
		"JELLYFIN_API_KEY",
		"JELLYFIN_TOKEN",
	})

	bindEnvKeys("smtp.host", []string{
		"SMTP_HOST",
		"EMAIL_SMTP_HOST",
	})

	bindEnvKeys("smtp.username", []string{
		"SMTP_USERNAME",
		"EMAIL_USERNAME",
	})

	bindEnvKeys("smtp.password", []string{
		"SMTP_PASSWORD",
		"EMAIL_PASSWORD",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// ValidationError aggregates every constraint violation found in a config.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration errors:\n- %s", strings.Join(e.Problems, "\n- "))
}

var validate = validator.New()

// Validate checks field constraints plus the cross-field rules the struct
// tags cannot express. Delivery settings are only required when recipients
// are configured.
func (c *Config) Validate() error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validating config: %w", err)
		}
		for _, fe := range fieldErrs {
			problems = append(problems, fmt.Sprintf("%s fails %q constraint", fe.Namespace(), fe.Tag()))
		}
	}

	if len(c.Recipients) > 0 {
		if c.SMTP.Host == "" {
			problems = append(problems, "smtp.host is required when recipients are configured")
		}
		if c.SMTP.SenderEmail == "" {
			problems = append(problems, "smtp.sender_email is required when recipients are configured")
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Convenience getters for commonly used configuration values
func GetAI() AI             { return Get().AI }
func GetNewsletter() Letter { return Get().Newsletter }
func GetSMTP() SMTP         { return Get().SMTP }
func GetLogLevel() string   { return Get().Logging.Level }

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
