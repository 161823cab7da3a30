package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/inspector"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	activeColor = color.New(color.FgGreen, color.Bold)
	labelColor  = color.New(color.FgWhite, color.Bold)
	dimColor    = color.New(color.FgHiBlack)
	warnColor   = color.New(color.FgYellow)
)

func newInspectCommand() *cobra.Command {
	var tab string

	cmd := &cobra.Command{
		Use:   "inspect <component-id>",
		Short: "Print the inspector panel for a component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := storeOpener(nil)
			if err != nil {
				return err
			}
			defer closeQuietly(c)

			comp, err := c.ComponentService.Get(args[0])
			if err != nil {
				return err
			}
			shell := inspector.NewShell(comp, nil, nil)
			if err := shell.SelectTab(inspector.Tab(tab)); err != nil {
				return err
			}
			printPanel(cmd.OutOrStdout(), comp, shell.Panel())
			return nil
		},
	}

	cmd.Flags().StringVarP(&tab, "tab", "t", string(inspector.TabProperties), "tab to print (properties, styles, responsive, advanced)")
	return cmd
}

func printPanel(w io.Writer, c *component.Component, p inspector.Panel) {
	headerColor.Fprintf(w, "%s", c.Name)
	dimColor.Fprintf(w, "  %s  %s\n", c.Type, c.ID)

	tabs := make([]string, len(inspector.Tabs))
	for i, t := range inspector.Tabs {
		if t == p.Tab {
			tabs[i] = activeColor.Sprintf("[%s]", t.Label())
		} else {
			tabs[i] = t.Label()
		}
	}
	fmt.Fprintln(w, strings.Join(tabs, "  "))
	fmt.Fprintln(w)

	if p.IsEmpty() {
		warnColor.Fprintln(w, p.Empty.Title)
		fmt.Fprintln(w, p.Empty.Message)
		return
	}

	group := ""
	for _, f := range p.Fields {
		if f.Group != group {
			group = f.Group
			if group != "" {
				headerColor.Fprintln(w, group)
			}
		}
		labelColor.Fprintf(w, "  %s", f.Label)
		dimColor.Fprintf(w, " (%s, %s)", f.ID, f.Control)
		fmt.Fprintf(w, ": %s\n", formatValue(f))
		if len(f.Options) > 0 {
			values := make([]string, len(f.Options))
			for i, o := range f.Options {
				values[i] = o.Value
			}
			dimColor.Fprintf(w, "      options: %s\n", strings.Join(values, ", "))
		}
	}
}

func formatValue(f inspector.FieldValue) string {
	switch v := f.Value.(type) {
	case nil:
		return dimColor.Sprint("unset")
	case string:
		if v == "" {
			return dimColor.Sprint("unset")
		}
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}
