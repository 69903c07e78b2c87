package orchestration

import (
	"github.com/agbru/fibseq/internal/config"
	"github.com/agbru/fibseq/internal/sequence"
)

// GetGeneratorsToRun returns every registered generator in compare mode and
// the generator for the configured width otherwise. An unknown width yields
// nil.
func GetGeneratorsToRun(cfg config.AppConfig, factory sequence.Factory) []sequence.Generator {
	if cfg.Compare {
		return factory.GetAll()
	}
	if gen, err := factory.Get(cfg.Width); err == nil {
		return []sequence.Generator{gen}
	}
	return nil
}
