package cli

import (
	"fmt"
	"io"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/inspector"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/clipboard"
	"github.com/spf13/cobra"
)

func newExportCommand() *cobra.Command {
	var stdout bool

	cmd := &cobra.Command{
		Use:   "export <component-id>",
		Short: "Copy a component's JSON to the system clipboard",
		Long: `Export serialises the full component to indented JSON and copies it to the
system clipboard. With --stdout the JSON is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cb inspector.Clipboard
			if !stdout {
				cb = clipboard.System{}
			}
			c, err := storeOpener(cb)
			if err != nil {
				return err
			}
			defer closeQuietly(c)

			comp, err := c.ComponentService.Get(args[0])
			if err != nil {
				return err
			}
			result := inspector.NewShell(comp, nil, nil).Export(cb)
			return reportExport(cmd.OutOrStdout(), cmd.ErrOrStderr(), result, stdout)
		},
	}

	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the JSON instead of copying it")
	return cmd
}

// reportExport prints the payload or the clipboard notice. A failed export
// is returned as an error in both modes.
func reportExport(out, errOut io.Writer, result inspector.ExportResult, stdout bool) error {
	if !result.Success {
		warnColor.Fprintln(errOut, result.Message)
		return result.Err
	}
	if stdout {
		fmt.Fprintln(out, result.Payload)
		return nil
	}
	activeColor.Fprintln(out, result.Message)
	return nil
}
