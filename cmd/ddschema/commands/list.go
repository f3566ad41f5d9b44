package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/takumiyoshikawa/ddschema/internal/store"
)

func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List generated schema files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			entries, err := store.New(cfg.SchemasDir).List()
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No schema files found. Run `ddschema configure` first.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "INTEGRATION\tPATH\tSIZE\tMODIFIED")
			for _, e := range entries {
				fmt.Fprintf(
					w,
					"%s\t%s\t%d\t%s\n",
					e.Name,
					e.Path,
					e.Size,
					e.ModTime.Format(time.RFC3339),
				)
			}
			_ = w.Flush()
			return nil
		},
	}
}
