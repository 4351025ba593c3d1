package appconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

// Config holds all configuration details
type Config struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Sandbox SandboxConfig `yaml:"sandbox"`
}

// APIConfig defines how the CRM REST API is reached
type APIConfig struct {
	BaseURL string `yaml:"baseURL"`
	// Timeout of zero means requests never time out
	Timeout time.Duration `yaml:"timeout"`
}

// StorageConfig defines where the bearer credential is persisted
type StorageConfig struct {
	Driver   string      `yaml:"driver"` // file, redis or memory
	Path     string      `yaml:"path"`
	TokenKey string      `yaml:"tokenKey"`
	Redis    RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// SandboxConfig defines the in-memory backend started by the serve command
type SandboxConfig struct {
	Host      string        `yaml:"host"`
	Port      int           `yaml:"port"`
	JWTSecret string        `yaml:"jwtSecret"`
	TokenTTL  time.Duration `yaml:"tokenTTL"`
	Users     []SandboxUser `yaml:"users"`
}

type SandboxUser struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Email       string   `yaml:"email"`
	Password    string   `yaml:"password"`
	Role        string   `yaml:"role"`
	Permissions []string `yaml:"permissions"`
}

const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		API: APIConfig{BaseURL: "http://localhost:8080"},
		Storage: StorageConfig{
			Driver: DriverFile,
			Redis:  RedisConfig{Addr: "localhost:6379", Prefix: "crm-console:"},
		},
		Sandbox: SandboxConfig{
			Host:     "0.0.0.0",
			Port:     8080,
			TokenTTL: 24 * time.Hour,
		},
	}
}

// LoadConfig loads and parses the configuration from a given file path.
// Values not present in the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		err := errors.New("config file path is required")
		log.Error().Err(err).Msg("config file not provided")
		return nil, err
	}

	// Parse the template file
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		log.Error().Err(err).Msg("error parsing config file template")
		return nil, err
	}

	// Create a map of environment variables
	envVars := loadEnvVars()

	// Execute the template with environment variables
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, envVars)
	if err != nil {
		log.Error().Err(err).Msg("error executing config file template")
		return nil, err
	}

	// Load and unmarshal the YAML
	config := Default()
	if err := yaml.Unmarshal(buf.Bytes(), config); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal config YAML")
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the values that would otherwise fail much later.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.baseURL is required")
	}
	switch c.Storage.Driver {
	case DriverFile, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.API.Timeout < 0 {
		return errors.New("api.timeout must not be negative")
	}
	return nil
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
