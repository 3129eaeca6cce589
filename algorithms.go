package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/beka-birhanu/vinom-pathfinding/search"
	"github.com/spf13/cobra"
)

func newAlgorithmsCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "algorithms",
		Short: "Describe the available search algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validOutput(output); err != nil {
				return err
			}
			if output != outputText {
				return printStructured(cmd.OutOrStdout(), output, search.Catalog())
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 8, 3, ' ', 0)
			fmt.Fprintln(w, "ALGORITHM\tNAME\tTIME (WORST)\tSPACE\tSHORTEST PATH")
			for _, d := range search.Catalog() {
				fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n", d.Kind, d.Name, d.Worst, d.Space, d.Optimal)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if verbose, _ := cmd.Flags().GetBool("steps"); verbose {
				for _, d := range search.Catalog() {
					fmt.Fprintf(cmd.OutOrStdout(), "\n%v: %v\n  - %v\n", d.Name, d.Description, strings.Join(d.Steps, "\n  - "))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")
	cmd.Flags().Bool("steps", false, "Also print the description and steps of each algorithm")
	return cmd
}
