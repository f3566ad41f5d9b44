package commands

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/takumiyoshikawa/ddschema/internal/config"
)

var (
	cfgFile string
	verbose bool
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ddschema",
		Short: "Generate and register JSON Schemas for Datadog integration config files",
		Long: `ddschema downloads Datadog integrations-core configuration specs,
converts them into JSON Schemas, and registers the schema files with
yaml-language-server via .vscode/settings.json so the editor offers
autocompletion and validation for Agent conf.d files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default: ddschema.yml if present)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(NewUpdateCmd())
	cmd.AddCommand(NewConfigureCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration: an explicit --config file must load,
// ddschema.yml is picked up when present, and the built-in defaults apply
// otherwise.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	if _, err := os.Stat(config.DefaultFile); err == nil {
		return config.Load(config.DefaultFile)
	}
	return config.Default(), nil
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
