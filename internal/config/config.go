// Package config loads the process configuration exactly once at startup.
//
// Components receive the Config struct explicitly; nothing in the core
// reads ambient environment state.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the backend.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Auth   AuthConfig   `mapstructure:"auth"`
	CORS   CORSConfig   `mapstructure:"cors"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	GinMode     string `mapstructure:"gin_mode"`
	LogFormat   string `mapstructure:"log_format"`
	EnablePprof bool   `mapstructure:"enable_pprof"`
}

type DBConfig struct {
	// Path of the sqlite database file.
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	// Secret signs access and refresh tokens. It must be set in
	// production; the default only exists so that tests can run
	// without configuration.
	Secret          string        `mapstructure:"secret"`
	AccessLifetime  time.Duration `mapstructure:"access_lifetime"`
	RefreshLifetime time.Duration `mapstructure:"refresh_lifetime"`
	Issuer          string        `mapstructure:"issuer"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// Load reads the configuration file (if one exists at path) and merges
// environment variables with the CULTURABASE_ prefix over it.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("server.log_format", "")
	v.SetDefault("server.enable_pprof", false)
	v.SetDefault("db.path", "data/backend.db")
	v.SetDefault("auth.secret", "insecure-development-secret")
	v.SetDefault("auth.access_lifetime", time.Hour)
	v.SetDefault("auth.refresh_lifetime", 7*24*time.Hour)
	v.SetDefault("auth.issuer", "culturabase")
	v.SetDefault("cors.allow_origins", []string{})

	v.SetEnvPrefix("CULTURABASE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("could not parse configuration: %w", err)
	}

	return config, nil
}
