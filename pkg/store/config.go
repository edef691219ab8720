package store

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/kcal/pkg/timeutil"
)

const (
	// DefaultBasePath is where the store lives when no path is configured.
	DefaultBasePath = "~/.local/state/calorieCounter"

	DefaultLeftClickAmount  = 50
	DefaultRightClickAmount = 10
)

// Config locates the store and carries the tunables the core needs.
type Config interface {
	BasePath() string
	ArchiveRetention() time.Duration
	Defaults() Snapshot
}

// LoadConfig reads .kcal.yaml and KCAL_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", DefaultBasePath)
	viper.SetDefault("archive_retention", timeutil.DefaultArchiveRetention)
	viper.SetDefault("left_click_amount", DefaultLeftClickAmount)
	viper.SetDefault("right_click_amount", DefaultRightClickAmount)
	viper.SetConfigName(".kcal") // .yaml is implicit
	viper.SetEnvPrefix("KCAL")
	viper.AutomaticEnv()

	if override := os.Getenv("KCAL_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME/.config/kcal")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	retention, _, err := timeutil.ParseWindow(viper.GetString("archive_retention"))
	if err != nil {
		return nil, fmt.Errorf("store: archive_retention: %w", err)
	}

	return &fileConfig{
		Path:             path,
		Retention:        retention,
		LeftClickAmount:  max(0, viper.GetInt("left_click_amount")),
		RightClickAmount: max(0, viper.GetInt("right_click_amount")),
	}, nil
}

type fileConfig struct {
	Path             string        `json:"path"`
	Retention        time.Duration `json:"archive_retention"`
	LeftClickAmount  int           `json:"left_click_amount"`
	RightClickAmount int           `json:"right_click_amount"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) ArchiveRetention() time.Duration {
	return f.Retention
}

func (f *fileConfig) Defaults() Snapshot {
	return Snapshot{
		LeftClickAmount:  f.LeftClickAmount,
		RightClickAmount: f.RightClickAmount,
	}
}
