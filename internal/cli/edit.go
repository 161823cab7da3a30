package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/inspector"
	"github.com/spf13/cobra"
)

const cliEditor = "cli"

func newEditCommand() *cobra.Command {
	var tab string

	cmd := &cobra.Command{
		Use:   "edit <component-id> <field> [value]",
		Short: "Set one inspector field on a component",
		Long: `Edit opens an inspector session on the component, applies one field edit
exactly as the inspector form would, and prints the emitted patch.

Omitting the value clears a text field or unchecks a checkbox.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := storeOpener(nil)
			if err != nil {
				return err
			}
			defer closeQuietly(c)

			raw := ""
			if len(args) == 3 {
				raw = args[2]
			}

			view, err := c.InspectorService.Open(args[0], cliEditor)
			if err != nil {
				return err
			}
			defer c.InspectorService.Close(view.SessionID)

			result, err := c.InspectorService.Edit(view.SessionID, inspector.Tab(tab), args[1], raw)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Patch.IsEmpty() {
				dimColor.Fprintln(out, "no change")
				return nil
			}
			encoded, err := json.MarshalIndent(result.Patch, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal patch: %w", err)
			}
			labelColor.Fprintf(out, "updated %s\n", strings.Join(result.Patch.Buckets(), ", "))
			fmt.Fprintln(out, string(encoded))
			return nil
		},
	}

	cmd.Flags().StringVarP(&tab, "tab", "t", string(inspector.TabProperties), "tab the field belongs to")
	return cmd
}
