package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quizbank/internal/service"
)

const defaultCleanOutput = "local-output/messages.clean.jsonl"

func (a *app) cleanCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "clean [export.csv]",
		Short: "Convert a CSV message export into cleaned JSONL",
		Long: `Writes one JSON object per message with date, time, user, text and
datetime_local. The cleaned file is meant to stay local; build accepts it
in place of the raw export.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := a.cfg.InputPath
			if len(args) == 1 {
				input = args[0]
			}

			result, err := service.NewCleanService(a.cfg.Participants, a.logger).CleanFile(input, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d messages to %s (%d rows skipped)\n", result.Written, out, result.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", defaultCleanOutput, "Output JSONL path")
	return cmd
}
