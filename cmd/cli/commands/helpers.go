package commands

import (
	"fmt"

	"github.com/health-center-lookup/app/config"
	"github.com/health-center-lookup/internal/query"
	"github.com/health-center-lookup/internal/resolver"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}
	return cfg, nil
}

// newLogger logs to stderr: debug with --verbose, warnings otherwise.
func newLogger() (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if !verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return zc.Build()
}

func openEngine(cfg *config.Config, logger *zap.Logger) (*query.Engine, error) {
	return query.NewEngine(query.Options{
		DataPath:   cfg.Data.Path,
		CacheSize:  1,
		Similarity: resolver.Options{Threshold: cfg.Similarity.Threshold},
	}, logger)
}
