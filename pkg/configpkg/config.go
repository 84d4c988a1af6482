// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	DBDriver        string `mapstructure:"DB_DRIVER"`
	DBSource        string `mapstructure:"DB_SOURCE"`
	MigrationsPath  string `mapstructure:"MIGRATIONS_PATH"`
	ServerAddress   string `mapstructure:"SERVER_ADDRESS"`
	TransferRetries int    `mapstructure:"TRANSFER_RETRIES"`
	Environement    string `mapstructure:"GO_ENV"`
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	if c.TransferRetries <= 0 {
		c.TransferRetries = 3
	}

	return c, nil
}
