package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"uidriver/internal/catalog"
	"uidriver/internal/engine"
	"uidriver/internal/logger"
	"uidriver/internal/platform"
)

// loadCatalog reads the descriptor dump named by the --dump flag. An empty
// catalog is an error for every command: without descriptors nothing can be
// driven.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("dump")
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load descriptor dump %s: %w", path, err)
	}
	if cat.Len() == 0 {
		return nil, fmt.Errorf("descriptor dump %s is missing or empty", path)
	}
	return cat, nil
}

// loadEngine builds the engine from flags: catalog, platform provider,
// window pattern, and optional log file. The returned closer flushes the log.
func loadEngine(cmd *cobra.Command) (*engine.Engine, func(), error) {
	cat, err := loadCatalog(cmd)
	if err != nil {
		return nil, nil, err
	}

	provider, err := platform.NewProvider()
	if err != nil {
		return nil, nil, err
	}

	var log *logger.Logger
	if path, _ := cmd.Flags().GetString("log"); path != "" {
		log, err = logger.New(path)
		if err != nil {
			return nil, nil, err
		}
	}

	windowRegex, _ := cmd.Flags().GetString("window-regex")
	eng := engine.New(cat, provider, windowRegex, log)
	return eng, func() { log.Close() }, nil
}
