package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"quizbank/internal/service"
)

func (a *app) publishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish [bank.json]",
		Short: "Store a generated quiz bank in the database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := a.cfg.OutputPath
			if len(args) == 1 {
				path = args[0]
			}

			return a.withPublisher(ctx, func(ps *service.PublishService) error {
				bankUUID, err := ps.Import(ctx, path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Published bank %s from %s\n", bankUUID, path)
				return nil
			})
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <bank-id>",
		Short: "Write a published quiz bank back to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if out == "" {
				out = fmt.Sprintf("quiz-bank_%s.json", time.Now().Format("20060102_150405"))
			}
			return a.withPublisher(ctx, func(ps *service.PublishService) error {
				if err := ps.Export(ctx, args[0], out); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported bank %s to %s\n", args[0], out)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file path (default: quiz-bank_YYYYMMDD_HHMMSS.json)")
	return cmd
}

func (a *app) banksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List published quiz banks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return a.withPublisher(ctx, func(ps *service.PublishService) error {
				banks, err := ps.Banks(ctx)
				if err != nil {
					return err
				}
				if len(banks) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No published banks")
					return nil
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tSOURCE\tSTART\tDAYS\tPER DAY\tQUESTIONS\tGENERATED")
				for _, b := range banks {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
						b.UUID, b.Source, b.StartDate, b.DaysCount, b.PerDay, b.Questions, b.GeneratedAt)
				}
				return w.Flush()
			})
		},
	}
}

func (a *app) todayCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the published questions for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			day := service.Today()
			if date != "" {
				d, err := service.ParseStartDate(date)
				if err != nil {
					return err
				}
				day = d
			}
			key := day.Format(service.DateLayout)

			return a.withPublisher(ctx, func(ps *service.PublishService) error {
				questions, err := ps.Today(ctx, key)
				if err != nil {
					return fmt.Errorf("no questions for %s: %w", key, err)
				}
				for _, q := range questions {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n    answer: %s (%s)\n", q.ID, q.Text, q.Answer, q.Timestamp)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show, YYYY-MM-DD (default today)")
	return cmd
}
