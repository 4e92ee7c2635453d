package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/phanxgames/inkwell/scene"
	"github.com/spf13/cobra"
)

func newScenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "list registered scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("scenes"))
			for _, name := range scene.Names() {
				fmt.Fprintf(out, "  %-12s %s\n", name, labelStyle.Render(scene.Title(name)))
			}
			return nil
		},
	}
}

func newTunablesCmd() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "tunables <scene>",
		Short: "show a scene's default tunables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := scene.Defaults(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asYAML {
				return t.Encode(out)
			}
			fmt.Fprintln(out, titleStyle.Render(scene.Title(args[0])))
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tVALUE\tMIN\tMAX\tSTEP\tLABEL")
			for _, name := range t.Names() {
				e := t[name]
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					name, num(e.Value), num(e.Min), num(e.Max), num(e.Step), e.Label)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print as a YAML file that can be edited and passed back with --tunables")
	return cmd
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
