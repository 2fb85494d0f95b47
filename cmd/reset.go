package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every archived exam result",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to delete results without --yes")
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.ResultRepo().DeleteAll(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info().Int64("deleted", n).Msg("results archive reset")
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d result(s).\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
