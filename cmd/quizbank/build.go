package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quizbank/internal/corpus"
	"quizbank/internal/models"
	"quizbank/internal/service"
)

type buildFlags struct {
	input       string
	format      string
	out         string
	seed        string
	startDate   string
	days        int
	perDay      int
	generatedAt string
	publish     bool
	notify      bool
}

func (a *app) buildCmd() *cobra.Command {
	var f buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the quiz bank JSON from a message export",
		Long: `Reads a CSV export or cleaned JSONL file, counts emoji, reactions and words
for both participants and writes one set of questions per day.

The same input and flags always produce the same bank. Set --generated-at or
SOURCE_DATE_EPOCH to make the generatedAt field reproducible too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBuild(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Message export to read (CSV or JSONL)")
	cmd.Flags().StringVar(&f.format, "format", "auto", "Input format: auto, csv or jsonl")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output JSON path")
	cmd.Flags().StringVar(&f.seed, "seed", "", "Seed for the deterministic shuffle")
	cmd.Flags().StringVar(&f.startDate, "start-date", "", "First quiz day, YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&f.days, "days", 0, "Number of days to generate")
	cmd.Flags().IntVar(&f.perDay, "per-day", 0, "Questions per day")
	cmd.Flags().StringVar(&f.generatedAt, "generated-at", "", "RFC 3339 time recorded as generatedAt")
	cmd.Flags().BoolVar(&f.publish, "publish", false, "Also store the bank in the configured database")
	cmd.Flags().BoolVar(&f.notify, "notify", false, "Email the build report to REPORT_TO_EMAIL")

	return cmd
}

func (a *app) runBuild(cmd *cobra.Command, f buildFlags) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	input := a.cfg.InputPath
	if flags.Changed("input") {
		input = f.input
	}
	formatName := a.cfg.Format
	if flags.Changed("format") {
		formatName = f.format
	}
	out := a.cfg.OutputPath
	if flags.Changed("out") {
		out = f.out
	}

	opts := service.BuildOptions{
		Seed:   a.cfg.Seed,
		Days:   a.cfg.Days,
		PerDay: a.cfg.PerDay,
	}
	if flags.Changed("seed") {
		opts.Seed = f.seed
	}
	if flags.Changed("days") {
		opts.Days = f.days
	}
	if flags.Changed("per-day") {
		opts.PerDay = f.perDay
	}

	opts.StartDate = service.Today()
	if f.startDate != "" {
		start, err := service.ParseStartDate(f.startDate)
		if err != nil {
			return err
		}
		opts.StartDate = start
	}

	clock, err := buildClock(f.generatedAt, os.Getenv("SOURCE_DATE_EPOCH"))
	if err != nil {
		return err
	}

	format, err := corpus.ParseFormat(formatName, input)
	if err != nil {
		return err
	}
	c, err := corpus.NewLoader(a.cfg.Participants, a.logger).Load(input, format)
	if err != nil {
		return err
	}

	qs := service.NewQuizService(a.logger, a.cfg.Thresholds)
	qs.SetClock(clock)

	bank, report, err := qs.Build(c, opts)
	if err != nil {
		return err
	}
	if err := qs.Write(bank, out); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d questions for %d days starting %s to %s\n",
		report.Questions, opts.Days, bank.StartDate, out)

	if f.publish {
		err := a.withPublisher(ctx, func(ps *service.PublishService) error {
			bankUUID, err := ps.Publish(ctx, bank)
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Published bank %s\n", bankUUID)
			}
			return err
		})
		if err != nil {
			return err
		}
	}

	if f.notify {
		return a.sendReport(ctx, report)
	}
	return nil
}

func (a *app) sendReport(ctx context.Context, report *models.BuildReport) error {
	mailer, err := service.NewEmailService(ctx, a.cfg.AWSRegion, a.cfg.SESFromEmail, a.cfg.SESFromName, a.logger)
	if err != nil {
		return err
	}
	if !mailer.IsEnabled() {
		a.logger.Warn("Build report not sent: email is not configured")
		return nil
	}
	if err := mailer.SendBuildReport(ctx, a.cfg.ReportToEmail, report); err != nil {
		return err
	}
	a.logger.Info("Build report sent", zap.String("to", a.cfg.ReportToEmail))
	return nil
}

// buildClock picks the time recorded as generatedAt: an explicit RFC 3339 value, then
// SOURCE_DATE_EPOCH, then the wall clock
func buildClock(generatedAt, sourceDateEpoch string) (func() time.Time, error) {
	if generatedAt != "" {
		t, err := time.Parse(time.RFC3339, generatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid --generated-at %q: %w", generatedAt, err)
		}
		return func() time.Time { return t }, nil
	}
	if sourceDateEpoch != "" {
		secs, err := strconv.ParseInt(sourceDateEpoch, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SOURCE_DATE_EPOCH %q: %w", sourceDateEpoch, err)
		}
		t := time.Unix(secs, 0)
		return func() time.Time { return t }, nil
	}
	return time.Now, nil
}
