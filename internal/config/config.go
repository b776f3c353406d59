package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the full application configuration loaded from file/env.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Jira   JiraConfig   `mapstructure:"jira"`
}

// ServerConfig holds server-specific options.
type ServerConfig struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// JiraConfig describes the optional preconfigured Jira connection.
// When Site is empty the server starts disconnected and waits for the
// jira.connect tool.
type JiraConfig struct {
	Site               string `mapstructure:"site"`
	ServiceCredentials `mapstructure:",squash"`
}

// ServiceCredentials describes authentication for the Jira site.
type ServiceCredentials struct {
	Email      string `mapstructure:"email"`
	APIToken   string `mapstructure:"api_token"`
	OAuthToken string `mapstructure:"oauth_token"`
}

// Load reads configuration from the provided directory and environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if path != "" {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			v.AddConfigPath(path)
		} else {
			v.SetConfigFile(path)
		}
	} else {
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("jira_analyzer")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.applyNetrcDefaults(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	// A preconfigured site must carry usable credentials. Without a site the
	// server starts disconnected and relies on the jira.connect tool.
	if c.Jira.Site != "" {
		if err := c.Jira.ServiceCredentials.validate("jira"); err != nil {
			return err
		}
	}

	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}

	if c.Server.LogFormat == "" {
		c.Server.LogFormat = "json"
	}

	return nil
}

func (s ServiceCredentials) validate(name string) error {
	if s.OAuthToken == "" && s.APIToken == "" {
		return fmt.Errorf("config: %s requires either oauth_token or an api_token", name)
	}
	return nil
}
