package cmd

import (
	"fmt"
	"strconv"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/nazolab/mogi/internal/store"
	"github.com/nazolab/mogi/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived exam results",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := store.QueryOpts{}
		opts.Limit, _ = cmd.Flags().GetInt("limit")
		opts.HandleName, _ = cmd.Flags().GetString("handle")
		if since, _ := cmd.Flags().GetDuration("since"); since > 0 {
			opts.From = time.Now().Add(-since)
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		results, err := st.ResultRepo().Query(cmd.Context(), opts)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No exams yet.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderHistory(results))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of results (0 for all)")
	historyCmd.Flags().String("handle", "", "Only show results for this handle name")
	historyCmd.Flags().Duration("since", 0, "Only show results finished within this window, e.g. 168h")
}

func renderHistory(results []store.ResultRecord) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			strconv.FormatInt(r.Sequence, 10),
			r.FinishedAt.Local().Format("2006-01-02 15:04"),
			r.HandleName,
			r.QuestionSet,
			fmt.Sprintf("%d / %d", r.TotalScore, r.MaxScore),
			strconv.Itoa(r.Correct),
			r.Reason,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("#", "Finished", "Name", "Set", "Score", "Correct", "Reason").
		Rows(rows...).
		String()
}
