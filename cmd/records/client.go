package records

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/libremedic_admin/config"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
	"github.com/Alijeyrad/libremedic_admin/pkg/logs"
)

// newClient builds the backend client from the --config flag. Tests
// replace it.
var newClient = func(cmd *cobra.Command) (*clinicapi.Client, error) {
	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		cfgPath = "config.yaml"
	}

	cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
	if err != nil {
		return nil, err
	}

	logger := logs.New(cfg)
	slog.SetDefault(logger)

	return clinicapi.NewFromConfig(cfg.API, clinicapi.WithLogger(logger))
}
