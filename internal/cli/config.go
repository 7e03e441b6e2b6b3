package cli

import (
	"github.com/leapstack-labs/sqlclause/internal/cli/config"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
)

// dialectNames lists registered dialects for shell completion.
func dialectNames() []string {
	return dialect.List()
}

// targetNames lists the named targets of the config file for shell completion.
// Errors yield no suggestions.
func targetNames() []string {
	cfg, err := config.LoadConfig(cfgFile, nil)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(cfg.Targets))
	for name := range cfg.Targets {
		names = append(names, name)
	}
	return names
}
