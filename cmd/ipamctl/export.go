package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Flarenzy/site-ipam/internal/domain"
)

func newExportCmd(c *cli) *cobra.Command {
	var (
		site   string
		dir    string
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export devices as CSV",
		Long: `Write devices to devices_<site|all>_<timestamp>.csv in --dir. Columns are
the union of every device's fields, sorted by name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.service(cmd.Context())
			if err != nil {
				return err
			}

			if stdout {
				_, err := svc.ExportCSV(cmd.Context(), cmd.OutOrStdout(), site)
				return err
			}

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create export dir: %w", err)
			}
			path := filepath.Join(dir, domain.ExportFilename(site, c.now()))
			n, err := svc.ExportToFile(cmd.Context(), path, site)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d devices to %s\n", n, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&site, "site", "", "only devices of this site")
	cmd.Flags().StringVar(&dir, "dir", envOr("EXPORT_DIR", "exports"), "directory for the CSV file")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write the CSV to standard output instead")
	return cmd
}
