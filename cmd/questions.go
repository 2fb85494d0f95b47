package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nazolab/mogi/internal/exam"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Work with question-set files",
}

var questionsValidateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a question-set file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := exam.LoadFile(args[0])
		if err != nil {
			var verr *exam.ValidationError
			if errors.As(err, &verr) {
				for _, p := range verr.Problems {
					fmt.Fprintln(cmd.ErrOrStderr(), "  -", p)
				}
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions, %d points, %s\n",
			set.Name, set.Len(), set.MaxScore(), set.TimeLimit)
		return nil
	},
}

var questionsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active question set's summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadQuestionSet()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s), %d questions, %d points, %s\n",
			set.Name, set.Title, set.Len(), set.MaxScore(), timeLimit(set))
		for _, q := range set.Questions {
			fmt.Fprintf(cmd.OutOrStdout(), "  %2d  %-8s %2d pts  %s\n", q.ID, q.Kind, q.Points, q.ImageRef)
		}
		return nil
	},
}

func init() {
	questionsCmd.AddCommand(questionsValidateCmd)
	questionsCmd.AddCommand(questionsShowCmd)
}
