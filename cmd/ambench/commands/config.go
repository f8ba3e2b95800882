package commands

import (
	"errors"

	"github.com/spf13/viper"
)

// Config is the app-level configuration (.ambench.yaml). The classifier
// config bundle is a separate JSON file, see pkg/automl.
type Config struct {
	Server       string `mapstructure:"server"`
	APIKey       string `mapstructure:"apikey"`
	JobsDir      string `mapstructure:"jobs_dir"`
	ConfigFile   string `mapstructure:"config"`
	Log          string `mapstructure:"log"`
	HeadersFile  string `mapstructure:"headers_file"`
	Program      string `mapstructure:"program"`
	QueueCommand string `mapstructure:"queue_command"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".ambench")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
