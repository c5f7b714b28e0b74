package cmd

import (
	"github.com/spf13/cobra"

	"github.com/boga881/drupalextension/src/driver"
	"github.com/boga881/drupalextension/src/output"
)

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "List the drivers a configuration can activate",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		color := output.UseColor()
		sec := output.NewSection(cmd.OutOrStdout(), "Drivers", 0, color)
		for _, name := range driver.All() {
			sec.Row("%-10s %s", name, output.Dimmed(driver.DriverPrefix+name, color))
		}
		sec.Close()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(driversCmd)
}
