// Package config loads RunConfig defaults and HTTP/log settings the same
// way noah-isme-sma-adp-api's pkg/config does: godotenv for a local .env,
// viper for env-var binding and defaults.
package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/russross/classroom-scheduler/internal/orchestrator"
)

// ServerConfig controls the HTTP façade and logging, independent of any
// single run's RunConfig.
type ServerConfig struct {
	Port      int
	LogLevel  string
	LogFormat string
}

// Load reads a .env file if present, then environment variables, and
// returns the server config plus a RunConfig seeded with the spec's
// documented defaults (§6) so CLI/HTTP callers only need to override what
// they care about.
func Load() (ServerConfig, orchestrator.RunConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return ServerConfig{}, orchestrator.RunConfig{}, err
		}
	}

	server := ServerConfig{
		Port:      v.GetInt("PORT"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
	}

	run := orchestrator.RunConfig{
		Strategy:            v.GetString("SCHEDULE_STRATEGY"),
		Optimizer:           v.GetString("SCHEDULE_OPTIMIZER"),
		NumPreferences:      v.GetInt("SCHEDULE_NUM_PREFERENCES"),
		CompletePreferences: v.GetBool("SCHEDULE_COMPLETE_PREFERENCES"),
		UseExistingCourses:  v.GetBool("SCHEDULE_USE_EXISTING_COURSES"),
		NumCourses:          v.GetInt("SCHEDULE_NUM_COURSES"),
		MinSize:             v.GetInt("SCHEDULE_MIN_SIZE"),
		MaxSize:             v.GetInt("SCHEDULE_MAX_SIZE"),
		ChangeSize:          v.GetInt("SCHEDULE_CHANGE_SIZE"),
		Seed:                v.GetInt64("SCHEDULE_SEED"),
	}

	return server, run, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHEDULE_STRATEGY", "SmartRandom")
	v.SetDefault("SCHEDULE_OPTIMIZER", "SimulatedAnnealing")
	v.SetDefault("SCHEDULE_NUM_PREFERENCES", 10)
	v.SetDefault("SCHEDULE_COMPLETE_PREFERENCES", true)
	v.SetDefault("SCHEDULE_USE_EXISTING_COURSES", false)
	v.SetDefault("SCHEDULE_NUM_COURSES", 100)
	v.SetDefault("SCHEDULE_MIN_SIZE", 10)
	v.SetDefault("SCHEDULE_MAX_SIZE", 200)
	v.SetDefault("SCHEDULE_CHANGE_SIZE", 60)
	v.SetDefault("SCHEDULE_SEED", 0)
}
