package cmd

import (
	"github.com/spf13/cobra"

	"github.com/boga881/drupalextension/src/config"
)

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Print the annotated configuration reference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := config.Schema().Reference()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(referenceCmd)
}
