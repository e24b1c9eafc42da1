// Package config loads service configuration from the environment with
// viper. A local .env file is honored in development; explicit environment
// variables always win.
package config

import (
	"errors"
	"sync"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
	Addr     string `mapstructure:"listen_addr"`

	DBType        string `mapstructure:"storage_backend"` // file | postgres
	DBDSN         string `mapstructure:"postgres_dsn"`
	FileCycles    string `mapstructure:"cycles_file"`
	FileGoals     string `mapstructure:"goals_file"`
	FileExercises string `mapstructure:"exercises_file"`

	AuthToken      string `mapstructure:"auth_token"`
	AuthServiceURL string `mapstructure:"auth_service_url"`

	// Implicit daily targets the progress ratios are computed against.
	WaterTarget int `mapstructure:"goal_water_target"` // ml
	StepTarget  int `mapstructure:"goal_step_target"`
}

var (
	cfg  *Config
	once sync.Once
)

// Load reads configuration once per process. It panics on an invalid
// configuration, matching startup-fatal semantics.
func Load() *Config {
	once.Do(func() {
		c, err := load()
		if err != nil {
			panic("invalid config: " + err.Error())
		}
		cfg = c
	})
	return cfg
}

func load() (*Config, error) {
	v := viper.New()

	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("listen_addr", ":8088")
	v.SetDefault("storage_backend", "file")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("cycles_file", "data/sleep_cycles.json")
	v.SetDefault("goals_file", "data/goals.json")
	v.SetDefault("exercises_file", "data/exercises.json")
	v.SetDefault("auth_token", "MOCK-TOKEN")
	v.SetDefault("auth_service_url", "")
	v.SetDefault("goal_water_target", 2000)
	v.SetDefault("goal_step_target", 10000)

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // optional

	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.DBType != "file" && c.DBType != "postgres" {
		return errors.New("STORAGE_BACKEND must be one of: file, postgres")
	}
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && (c.FileCycles == "" || c.FileGoals == "" || c.FileExercises == "") {
		return errors.New("file storage requires CYCLES_FILE, GOALS_FILE and EXERCISES_FILE")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != "development" && c.AuthServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL is required outside development")
	}
	if c.WaterTarget < 0 || c.StepTarget < 0 {
		return errors.New("goal targets must not be negative")
	}
	return nil
}
