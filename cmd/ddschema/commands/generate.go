package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/takumiyoshikawa/ddschema/internal/convert"
	"github.com/takumiyoshikawa/ddschema/internal/fetch"
	"github.com/takumiyoshikawa/ddschema/internal/spec"
)

func NewGenerateCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "generate <integration>",
		Short: "Generate the JSON Schema for a single integration",
		Long: `Fetch one integration's upstream spec and print the converted JSON
Schema. When the spec cannot be fetched or parsed, the generic fallback
schema is emitted instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger()
			name := args[0]

			client := fetch.NewClient(cfg.SourceURL, time.Duration(cfg.TimeoutSeconds)*time.Second)

			schema := convert.Fallback(name)
			raw, err := client.FetchSpec(cmd.Context(), name)
			if err != nil {
				log.WithError(err).Warn("using generic fallback schema")
			} else if doc, perr := spec.Parse(raw); perr != nil {
				log.WithError(perr).Warn("using generic fallback schema")
			} else {
				schema = convert.Schema(doc, name)
			}

			data, err := convert.Marshal(schema)
			if err != nil {
				return fmt.Errorf("serializing schema: %w", err)
			}

			if outputFile != "" {
				if dir := filepath.Dir(outputFile); dir != "." {
					if err := os.MkdirAll(dir, 0o750); err != nil {
						return fmt.Errorf("creating directory %s: %w", dir, err)
					}
				}
				if err := os.WriteFile(outputFile, data, 0o600); err != nil {
					return fmt.Errorf("writing schema: %w", err)
				}
				fmt.Printf("JSON Schema written to %s\n", outputFile)
			} else {
				fmt.Println(string(data))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
