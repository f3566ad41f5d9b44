package commands

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/takumiyoshikawa/ddschema/internal/config"
	"github.com/takumiyoshikawa/ddschema/internal/fetch"
	"github.com/takumiyoshikawa/ddschema/internal/registry"
)

func NewUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Re-fetch all integration schemas and register them",
		Long: `Fetch the upstream spec for every configured integration, replacing any
existing schema files, then register the schema/glob associations with
the YAML extension settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger()

			syncer := fetch.New(cfg, log)
			if err := syncer.Sync(cmd.Context(), true); err != nil {
				return fmt.Errorf("updating schemas: %w", err)
			}

			if err := registerSchemas(cfg, syncer, log); err != nil {
				return err
			}

			fmt.Printf("Updated schemas for %d integrations in %s\n", len(cfg.Integrations), cfg.SchemasDir)
			return nil
		},
	}
}

// registerSchemas associates schema files with glob patterns in the
// editor settings. An unparseable settings file degrades to printing the
// manual snippet instead of failing the command.
func registerSchemas(cfg *config.Config, syncer *fetch.Syncer, log *logrus.Logger) error {
	assoc := registry.Associations(syncer.Store(), cfg.Integrations, cfg.Globs)

	err := registry.Register(cfg.SettingsPath, assoc)
	if errors.Is(err, registry.ErrUnregisterable) {
		log.WithField("settings", cfg.SettingsPath).Warn("automatic registration unavailable")
		fmt.Print(registry.ManualInstructions(assoc))
		return nil
	}
	if err != nil {
		return fmt.Errorf("registering schemas: %w", err)
	}

	fmt.Printf("Registered %d schema associations in %s\n", len(assoc), cfg.SettingsPath)
	return nil
}
