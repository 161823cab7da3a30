package cli

import (
	"errors"
	"fmt"

	"github.com/AtRiskMedia/tractstack-inspector/internal/application/services"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/seed"
	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixture.yaml>",
		Short: "Load pages and components from a YAML fixture",
		Long: `Seed reads a YAML fixture of pages and their components and creates every
component in the store. Components whose id already exists are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}

			c, err := storeOpener(nil)
			if err != nil {
				return err
			}
			defer closeQuietly(c)

			out := cmd.OutOrStdout()
			created, skipped := 0, 0
			for _, comp := range fixture.Components() {
				saved, err := c.ComponentService.Create(comp)
				if errors.Is(err, services.ErrComponentExists) {
					warnColor.Fprintf(out, "skip %s: already exists\n", comp.ID)
					skipped++
					continue
				}
				if err != nil {
					return fmt.Errorf("failed to seed component on page %s: %w", comp.PageID, err)
				}
				dimColor.Fprintf(out, "created %s %s on %s\n", saved.Type, saved.ID, saved.PageID)
				created++
			}

			activeColor.Fprintf(out, "seeded %d pages: %d created, %d skipped\n", len(fixture.Pages), created, skipped)
			return nil
		},
	}
}
