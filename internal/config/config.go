package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	API     APIConfig     `mapstructure:"api"`
	Billing BillingConfig `mapstructure:"billing"`
	Receipt ReceiptConfig `mapstructure:"receipt"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// APIConfig holds the clinic backend settings
type APIConfig struct {
	BaseURL       string          `mapstructure:"base_url"`
	Token         string          `mapstructure:"token"`
	Timeout       time.Duration   `mapstructure:"timeout"`
	BalancesLimit int             `mapstructure:"balances_limit"`
	Endpoints     EndpointsConfig `mapstructure:"endpoints"`
}

// EndpointsConfig holds backend paths relative to the base URL
type EndpointsConfig struct {
	RoomPayments   string   `mapstructure:"room_payments"`
	Registrations  string   `mapstructure:"registrations"`
	Balances       string   `mapstructure:"balances"`
	UserProfile    string   `mapstructure:"user_profile"`
	Patient        string   `mapstructure:"patient"`
	PaymentHistory []string `mapstructure:"payment_history"`
}

// BillingConfig holds accrual and view settings
type BillingConfig struct {
	Timezone            string `mapstructure:"timezone"`
	DischargedRoomLabel string `mapstructure:"discharged_room_label"`
	ProcessedByFallback string `mapstructure:"processed_by_fallback"`
}

// ReceiptConfig holds the receipt page settings
type ReceiptConfig struct {
	PopupURL string `mapstructure:"popup_url"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from an optional YAML file and environment
// variables. An empty path or a missing file leaves defaults and env only.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvVars(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("api.base_url", "http://localhost:8000/api/v1")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.balances_limit", 500)
	v.SetDefault("api.endpoints.room_payments", "treatment-room-payments/")
	v.SetDefault("api.endpoints.registrations", "treatment-registrations/")
	v.SetDefault("api.endpoints.balances", "patient-balances/data/")
	v.SetDefault("api.endpoints.user_profile", "user-profile/")
	v.SetDefault("api.endpoints.patient", "patients/{id}/")
	v.SetDefault("api.endpoints.payment_history", []string{
		"payments/patient/{id}/",
		"patient-payments/?patient_id={id}",
		"wallet/transactions/?patient={id}",
	})

	v.SetDefault("billing.timezone", "Asia/Tashkent")
	v.SetDefault("billing.discharged_room_label", "Discharged (inpatient ward)")
	v.SetDefault("billing.processed_by_fallback", "System")

	v.SetDefault("receipt.popup_url", "http://localhost:8000/static/treatment_room_receipt_popup/receipt.html")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars(v *viper.Viper) {
	v.BindEnv("api.base_url", "CLINIC_API_BASE_URL")
	v.BindEnv("api.token", "CLINIC_API_TOKEN")
	v.BindEnv("receipt.popup_url", "CLINIC_RECEIPT_URL")
	v.BindEnv("logger.level", "ROOMBILLING_LOG_LEVEL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Endpoints.RoomPayments == "" || c.API.Endpoints.Registrations == "" || c.API.Endpoints.Balances == "" {
		return fmt.Errorf("api.endpoints room_payments, registrations and balances are required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	return nil
}

// Location resolves billing.timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Billing.Timezone)
	if err != nil {
		return nil, fmt.Errorf("billing.timezone %q: %w", c.Billing.Timezone, err)
	}
	return loc, nil
}
