// Package config exposes the settings of vara-cs backed by viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	keyPaperConfigFolder  = "paper_config.folder"
	keyCurrentPaperConfig = "paper_config.current_config"
	keyResultDir          = "result_dir"
	keyCacheDir           = "cache_dir"
	keyEditor             = "editor"
	keyHashLength         = "display.hash_length"
)

// Init loads the config file and environment. An empty cfgFile searches
// $HOME/.config/varats/config.toml. A missing config file is not an error.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}
		viper.AddConfigPath(filepath.Join(home, ".config", "varats"))
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("varats")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// SetDefaults registers the default values of all settings
func SetDefaults() {
	cacheDir := "cache"
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "varats")
	}

	viper.SetDefault(keyPaperConfigFolder, "paper_configs")
	viper.SetDefault(keyCurrentPaperConfig, "")
	viper.SetDefault(keyResultDir, "results")
	viper.SetDefault(keyCacheDir, cacheDir)
	viper.SetDefault(keyEditor, "")
	viper.SetDefault(keyHashLength, 10)
}

// ConfigFileUsed returns the path of the loaded config file, if any
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// GetPaperConfigFolder returns the folder containing all paper configs
func GetPaperConfigFolder() string {
	return viper.GetString(keyPaperConfigFolder)
}

// GetCurrentPaperConfig returns the name of the active paper config
func GetCurrentPaperConfig() string {
	return viper.GetString(keyCurrentPaperConfig)
}

// SetCurrentPaperConfig overrides the active paper config for this run
func SetCurrentPaperConfig(name string) {
	viper.Set(keyCurrentPaperConfig, name)
}

// GetResultDir returns the directory holding result files per project
func GetResultDir() string {
	return viper.GetString(keyResultDir)
}

// GetCacheDir returns the directory for commit map caches
func GetCacheDir() string {
	return viper.GetString(keyCacheDir)
}

// GetEditor returns the editor for viewing result files. The EDITOR
// environment variable is used when unset, then vi.
func GetEditor() string {
	if editor := viper.GetString(keyEditor); editor != "" {
		return editor
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vi"
}

// GetHashLength returns the number of hash characters shown in output
func GetHashLength() int {
	return viper.GetInt(keyHashLength)
}
