package commands

import (
	"errors"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the CLI configuration, read from .planner.yaml and PLANNER_* env.
type Config struct {
	APIURL   string
	Token    string
	DataPath string
	UserID   string
	Timeout  time.Duration
	LogLevel string
}

// LoadConfig reads the config file from PLANNER_CONFIG_PATH, the working
// directory or the home directory. A missing file is not an error.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetDefault("api_url", "")
	v.SetDefault("token", "")
	v.SetDefault("data_path", "~/.timeblock/planner.db")
	v.SetDefault("user_id", "demo-user")
	v.SetDefault("timeout", 5*time.Second)
	v.SetDefault("log_level", "warn")

	v.SetConfigName(".planner")
	v.SetEnvPrefix("PLANNER")
	v.AutomaticEnv()

	if override := os.Getenv("PLANNER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("data_path"))
	if err != nil {
		return nil, err
	}

	return &Config{
		APIURL:   v.GetString("api_url"),
		Token:    v.GetString("token"),
		DataPath: path,
		UserID:   v.GetString("user_id"),
		Timeout:  v.GetDuration("timeout"),
		LogLevel: v.GetString("log_level"),
	}, nil
}
