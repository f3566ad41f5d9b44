package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/takumiyoshikawa/ddschema/internal/fetch"
)

func NewConfigureCmd() *cobra.Command {
	var skipFetch bool

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Fetch missing schemas and register them with the YAML extension",
		Long: `First-run setup: fetch specs only for integrations that do not yet have
a schema file, then register the schema/glob associations with the YAML
extension settings. Existing schema files are left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger()

			syncer := fetch.New(cfg, log)
			if !skipFetch {
				if err := syncer.Sync(cmd.Context(), false); err != nil {
					return fmt.Errorf("fetching schemas: %w", err)
				}
			}

			return registerSchemas(cfg, syncer, log)
		},
	}

	cmd.Flags().BoolVar(&skipFetch, "skip-fetch", false, "Register existing schema files without fetching")

	return cmd
}
