// Package config loads chief's configuration.
//
// Settings come from ~/.chief/config.yaml with CHIEF_* environment overrides
// (CHIEF_TOKEN, CHIEF_TASKS_DATA_SOURCE, ...). The loaded Config is built once
// at process start and passed to components explicitly; nothing reads viper
// after Load returns.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything chief needs to talk to its collaborators.
type Config struct {
	// Token authenticates against the structured record store.
	Token string
	// BaseURL is the record store API root.
	BaseURL string

	// Data source identifiers for the three record collections.
	TasksDataSource    string
	ProjectsDataSource string
	MeetingsDataSource string

	// SelfNames are the name variants that mark an action item as
	// self-assigned rather than waiting-on-someone.
	SelfNames []string

	// ContextPath points at the strategic context document used by the
	// executive rollup and LNO classification.
	ContextPath string
}

// Load reads configuration from disk and environment.
// A missing config file is not an error; env vars alone are a valid setup.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".chief"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("CHIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", "https://api.notion.com")
	v.SetDefault("self_names", []string{"rajiv", "rajiv chopra"})

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Token:              v.GetString("token"),
		BaseURL:            v.GetString("base_url"),
		TasksDataSource:    v.GetString("tasks_data_source"),
		ProjectsDataSource: v.GetString("projects_data_source"),
		MeetingsDataSource: v.GetString("meetings_data_source"),
		SelfNames:          v.GetStringSlice("self_names"),
		ContextPath:        v.GetString("context_path"),
	}
	return cfg, nil
}
