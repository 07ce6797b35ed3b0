// Package config loads the settings of the ksoap2call tool from a YAML file.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/a8m/envsubst"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the environment variable that points at the config file.
const EnvConfigFile = "KSOAP2_CONFIG"

// Config describes one ASP.NET service host.
type Config struct {
	// Namespace is the XML namespace of the web services, e.g. http://tempuri.org/
	Namespace string `yaml:"namespace" validate:"required"`
	// Address is the URL prefix the service names (Authenticate.asmx) are appended to.
	Address string `yaml:"address" validate:"required,url"`

	LoggingLevel string        `yaml:"logging_level" validate:"oneof=silent minimal medium verbose"`
	LogJSON      bool          `yaml:"log_json"`
	Timeout      time.Duration `yaml:"timeout" validate:"gte=0"`
}

func defaultConfig() *Config {
	return &Config{
		Namespace:    "http://tempuri.org/",
		LoggingLevel: "silent",
		Timeout:      30 * time.Second,
	}
}

// Load returns the default configuration overridden by the given YAML file. An empty
// filename falls back to $KSOAP2_CONFIG; if that is unset too only the defaults are returned.
// ${VAR} references in the file are replaced from the environment before decoding.
// The result is not validated; call Validate once all overrides are applied.
func Load(filename string) (*Config, error) {
	cfg := defaultConfig()

	if filename == "" {
		filename = os.Getenv(EnvConfigFile)
	}
	if filename == "" {
		return cfg, nil
	}

	if err := loadConfigFile(cfg, filename); err != nil {
		return nil, fmt.Errorf("failed to load config from yaml: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(cfg any, filename string) error {
	data, err := envsubst.ReadFile(filename)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}

	return nil
}

// Normalize brings the logging level into its canonical spelling: trimmed, lower case,
// with the empty string and "none" meaning silent.
func (c *Config) Normalize() {
	level := strings.ToLower(strings.TrimSpace(c.LoggingLevel))
	if level == "" || level == "none" {
		level = "silent"
	}
	c.LoggingLevel = level
}

// Validate checks that the configuration can be used to reach a service.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("invalid config value for %s: failed %q check", fe.Field(), fe.Tag())
	}

	return err
}

// HTTPClient returns an HTTP client honouring the configured timeout. A zero timeout means none.
func (c *Config) HTTPClient() *http.Client {
	return &http.Client{Timeout: c.Timeout}
}
