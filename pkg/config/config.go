package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Admin    AdminConfig    `mapstructure:"admin"`
	EventLog EventLogConfig `mapstructure:"event_log"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	ProductionMode bool   `mapstructure:"production_mode"`
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig carries the store coordinates and pool bounds.
// Driver is "postgres" for deployments, "sqlite" for local development.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Name            string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	Path            string `mapstructure:"path"` // sqlite only
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_minutes"`
}

func (d *DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Minute
}

type AuthConfig struct {
	DefaultPassword string `mapstructure:"default_password"`
}

type AdminConfig struct {
	Username    string `mapstructure:"username"`
	DisplayName string `mapstructure:"display_name"`
	Password    string `mapstructure:"password"`
}

type EventLogConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads config.yaml (path overridable via TASKBOARD_CONFIG) with
// environment variable overrides. A missing file or missing database
// coordinates is a hard error; the caller is expected to treat it as fatal.
func Load(path string) (*Config, error) {
	// .env is optional, used for local development
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("TASKBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 60)
	v.SetDefault("auth.default_password", "changeme123!")
	v.SetDefault("event_log.path", "events.log")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (d *DatabaseConfig) validate() error {
	switch d.Driver {
	case "postgres":
		if d.Host == "" || d.Name == "" || d.User == "" {
			return fmt.Errorf("database config incomplete: host, name and user are required for postgres")
		}
	case "sqlite":
		if d.Path == "" {
			return fmt.Errorf("database config incomplete: path is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", d.Driver)
	}
	return nil
}
