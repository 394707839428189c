package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Flarenzy/site-ipam/internal/domain"
	"github.com/Flarenzy/site-ipam/internal/storage"
)

const (
	defaultInventoryPath = "data/devices.yaml"
	defaultPlanLogPath   = "vlan_calculations.csv"
)

type cli struct {
	inventory string
	verbose   bool
	logger    *slog.Logger
	now       func() time.Time
}

func newRootCmd() *cobra.Command {
	c := &cli{now: time.Now}

	root := &cobra.Command{
		Use:               "ipamctl",
		Short:             "Manage a multi-site IP address inventory",
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
		Long: `ipamctl reads and edits the YAML device inventory served by the site IPAM API.

Every mutation is written back to the inventory file before the command returns.

  ipamctl devices --site hq --vlan 20`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if c.verbose {
				level = slog.LevelDebug
			}
			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	root.PersistentFlags().StringVarP(&c.inventory, "inventory", "i", envOr("INVENTORY_PATH", defaultInventoryPath), "inventory YAML file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newPlanCmd(c),
		newSitesCmd(c),
		newDevicesCmd(c),
		newDeviceCmd(c),
		newFreeIPsCmd(c),
		newStatsCmd(c),
		newAddCmd(c),
		newUpdateCmd(c),
		newDeleteCmd(c),
		newExportCmd(c),
		newCheckCmd(c),
	)
	return root
}

// service loads the inventory file and wraps it for logging.
func (c *cli) service(ctx context.Context) (domain.InventoryService, error) {
	repo := storage.NewYAMLRepository(c.inventory)
	inventory, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	return domain.NewLoggingInventoryService(c.logger, domain.NewInventoryService(inventory, repo)), nil
}

func envOr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseVlanArg(s string) (domain.VlanID, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: vlan must be a positive integer, got %q", domain.ErrInvalidInput, s)
	}
	return domain.VlanID(id), nil
}
