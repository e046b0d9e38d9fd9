package config

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// Load reads configuration from the JSON config file and sets default
// values. configDir is the directory containing the config file. A missing
// config file is fine, the defaults apply.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./npcedlogs")
	viper.SetDefault("dataFile", "bot_spawn_commands.txt")
	viper.SetDefault("workspaceFile", "workspace.json")

	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.keep", 50)
	viper.SetDefault("history.db.type", "sqlite")
	viper.SetDefault("history.db.path", "./npced_history.db")
	viper.SetDefault("history.db.host", "localhost")
	viper.SetDefault("history.db.port", "5432")
	viper.SetDefault("history.db.username", "postgres")
	viper.SetDefault("history.db.password", "postgres")
	viper.SetDefault("history.db.database", "npced")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "npced-metrics")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("telemetry.enabled", false)

	viper.SetConfigName("npced.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %v", err)
		}
	}

	return validate()
}

func validate() error {
	logLevel := viper.GetString("logLevel")
	dbType := viper.GetString("history.db.type")

	err := validation.Errors{
		"logLevel": validation.Validate(logLevel,
			validation.Required,
			validation.In("trace", "debug", "info", "warn", "error")),
		"history.db.type": validation.Validate(dbType,
			validation.Required,
			validation.In("sqlite", "postgres")),
	}.Filter()
	if err != nil {
		return fmt.Errorf("invalid config: %v", err)
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
