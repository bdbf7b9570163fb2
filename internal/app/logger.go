package app

import (
	"github.com/andreicionca/motivare-absente/internal/config"

	"go.uber.org/zap"
)

// NewLogger returns a JSON logger in production and a console one elsewhere.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
