package common

import (
	"log/slog"

	"github.com/bjulian5/varats/internal/config"
	"github.com/bjulian5/varats/internal/paperconfig"
)

// LoadPaperConfig loads the active paper config. A non-empty override
// replaces the configured current paper config for this run.
func LoadPaperConfig(override string) (*paperconfig.PaperConfig, error) {
	if override != "" {
		config.SetCurrentPaperConfig(override)
	}
	dir, err := paperconfig.Path(config.GetPaperConfigFolder(), config.GetCurrentPaperConfig())
	if err != nil {
		return nil, err
	}
	slog.Debug("loading paper config", "dir", dir)
	return paperconfig.Load(dir)
}
