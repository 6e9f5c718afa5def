package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Branding BrandingConfig `mapstructure:"branding"`
	Renderer RendererConfig `mapstructure:"renderer"`
	Export   ExportConfig   `mapstructure:"export"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// BrandingConfig holds the issuer identity seeded into new invoices
type BrandingConfig struct {
	CompanyName   string `mapstructure:"company_name"`
	CompanyEmail  string `mapstructure:"company_email"`
	InvoicePrefix string `mapstructure:"invoice_prefix"`
	Currency      string `mapstructure:"currency"`
	Locale        string `mapstructure:"locale"`
	LogoPath      string `mapstructure:"logo_path"`
}

// RendererConfig holds PDF rendering configuration
type RendererConfig struct {
	MarginMM     float64 `mapstructure:"margin_mm"`
	ImageQuality float64 `mapstructure:"image_quality"`
	Scale        float64 `mapstructure:"scale"`
	PageSize     string  `mapstructure:"page_size"`
	Orientation  string  `mapstructure:"orientation"`
}

// ExportConfig holds export output configuration
type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Override with environment variables
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	// Branding defaults
	viper.SetDefault("branding.company_name", "Lightspeed Labs")
	viper.SetDefault("branding.company_email", "lightspeedlabs.io@gmail.com")
	viper.SetDefault("branding.invoice_prefix", "INV-")
	viper.SetDefault("branding.currency", "LKR")
	viper.SetDefault("branding.locale", "en-US")

	// Renderer defaults
	viper.SetDefault("renderer.margin_mm", 10.0)
	viper.SetDefault("renderer.image_quality", 0.98)
	viper.SetDefault("renderer.scale", 2.0)
	viper.SetDefault("renderer.page_size", "A4")
	viper.SetDefault("renderer.orientation", "P")

	// Export defaults
	viper.SetDefault("export.output_dir", "downloads")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	viper.BindEnv("branding.company_name", "COMPANY_NAME")
	viper.BindEnv("branding.company_email", "COMPANY_EMAIL")
	viper.BindEnv("branding.logo_path", "LOGO_PATH")
	viper.BindEnv("export.output_dir", "EXPORT_OUTPUT_DIR")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Branding.CompanyName == "" {
		return fmt.Errorf("branding.company_name is required")
	}
	if c.Branding.Currency == "" {
		return fmt.Errorf("branding.currency is required")
	}

	if c.Renderer.Scale <= 0 {
		return fmt.Errorf("renderer.scale must be positive")
	}
	if c.Renderer.ImageQuality <= 0 || c.Renderer.ImageQuality > 1 {
		return fmt.Errorf("renderer.image_quality must be in (0, 1]")
	}
	if c.Renderer.Orientation != "P" && c.Renderer.Orientation != "L" {
		return fmt.Errorf("renderer.orientation must be P or L")
	}

	if c.Export.OutputDir == "" {
		return fmt.Errorf("export.output_dir is required")
	}

	return nil
}
