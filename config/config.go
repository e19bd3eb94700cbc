package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type GeminiConfig struct {
	APIKey      string
	Model       string
	Endpoint    string
	UseADC      bool
	Timeout     time.Duration
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
}

type BrowserConfig struct {
	Headless          bool
	NavigationTimeout time.Duration
	SettleDelay       time.Duration
	ClickSettle       time.Duration
	DropdownSettle    time.Duration
}

type LoggerConfig struct {
	Level      string
	Format     string
	LogFile    string
	MaxSize    int
	MaxBackups int
	MaxAge     int
}

type ScreenshotConfig struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Enabled reports whether confirmation screenshots should be uploaded.
func (s ScreenshotConfig) Enabled() bool {
	return s.Region != "" && s.Bucket != "" && s.AccessKey != "" && s.SecretKey != ""
}

type AppConfig struct {
	Port               string
	Environment        string
	AllowedOrigins     []string
	JWTSecret          string
	RateLimitPerMinute int
	Gemini             GeminiConfig
	Browser            BrowserConfig
	Logger             LoggerConfig
	Screenshots        ScreenshotConfig
}

// SetDefaults registers every key with its default so AutomaticEnv can resolve it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "5002")
	v.SetDefault("environment", "development")
	v.SetDefault("allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("rate_limit_per_minute", 10)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.endpoint", "")
	v.SetDefault("gemini.use_adc", false)
	v.SetDefault("gemini.timeout", "30s")
	v.SetDefault("gemini.temperature", 0.7)
	v.SetDefault("gemini.top_p", 0.9)
	v.SetDefault("gemini.top_k", 40)
	v.SetDefault("gemini.max_tokens", 220)

	v.SetDefault("headless", true)
	v.SetDefault("navigation_timeout", "60s")
	v.SetDefault("settle_delay", "3s")
	v.SetDefault("click_settle", "300ms")
	v.SetDefault("dropdown_settle", "500ms")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 7)

	v.SetDefault("aws.region", "")
	v.SetDefault("aws.s3_bucket", "")
	v.SetDefault("aws.access_key_id", "")
	v.SetDefault("aws.secret_access_key", "")
}

// NewViper returns a viper instance reading defaults and environment variables.
// Nested keys map to underscored env names, e.g. gemini.api_key -> GEMINI_API_KEY.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads an optional .env file and builds the AppConfig from the environment.
func Load() (*AppConfig, error) {
	return LoadFrom(NewViper(), "")
}

// LoadFrom loads envFile into the process environment and resolves v. An empty envFile
// means an optional ./.env.
func LoadFrom(v *viper.Viper, envFile string) (*AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("could not load %s: %w", envFile, err)
		}
	} else {
		// A missing .env is fine; the process environment still applies.
		_ = godotenv.Load()
	}
	return NewConfigFromViper(v)
}

func NewConfigFromViper(v *viper.Viper) (*AppConfig, error) {
	cfg := &AppConfig{
		Port:               v.GetString("port"),
		Environment:        v.GetString("environment"),
		AllowedOrigins:     splitList(v.GetString("allowed_origins")),
		JWTSecret:          v.GetString("jwt_secret"),
		RateLimitPerMinute: v.GetInt("rate_limit_per_minute"),
		Gemini: GeminiConfig{
			APIKey:      v.GetString("gemini.api_key"),
			Model:       v.GetString("gemini.model"),
			Endpoint:    v.GetString("gemini.endpoint"),
			UseADC:      v.GetBool("gemini.use_adc"),
			Timeout:     v.GetDuration("gemini.timeout"),
			Temperature: v.GetFloat64("gemini.temperature"),
			TopP:        v.GetFloat64("gemini.top_p"),
			TopK:        v.GetInt("gemini.top_k"),
			MaxTokens:   v.GetInt("gemini.max_tokens"),
		},
		Browser: BrowserConfig{
			Headless:          v.GetBool("headless"),
			NavigationTimeout: v.GetDuration("navigation_timeout"),
			SettleDelay:       v.GetDuration("settle_delay"),
			ClickSettle:       v.GetDuration("click_settle"),
			DropdownSettle:    v.GetDuration("dropdown_settle"),
		},
		Logger: LoggerConfig{
			Level:      v.GetString("log.level"),
			Format:     v.GetString("log.format"),
			LogFile:    v.GetString("log.file"),
			MaxSize:    v.GetInt("log.max_size"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAge:     v.GetInt("log.max_age"),
		},
		Screenshots: ScreenshotConfig{
			Region:    v.GetString("aws.region"),
			Bucket:    v.GetString("aws.s3_bucket"),
			AccessKey: v.GetString("aws.access_key_id"),
			SecretKey: v.GetString("aws.secret_access_key"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("gemini model is required")
	}
	if c.Gemini.Timeout <= 0 {
		return fmt.Errorf("gemini timeout must be positive, got %s", c.Gemini.Timeout)
	}
	if c.Browser.NavigationTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be positive, got %s", c.Browser.NavigationTimeout)
	}
	if c.Browser.SettleDelay < 0 || c.Browser.ClickSettle < 0 || c.Browser.DropdownSettle < 0 {
		return fmt.Errorf("settle delays cannot be negative")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("rate limit cannot be negative")
	}
	return nil
}

// IsProduction mirrors the ENVIRONMENT switch used for gin's release mode.
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
