package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"

	"quizbank/internal/models"
)

// sesClient is the part of the SES API the email service uses
type sesClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client    sesClient
	fromEmail string
	fromName  string
	enabled   bool
	logger    *zap.Logger
}

// NewEmailService creates a new email service. An empty fromEmail gives a disabled
// service whose sends are no-ops.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName string, logger *zap.Logger) (*EmailService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fromEmail == "" {
		logger.Info("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, logger: logger}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info("Email service enabled", zap.String("from", fromEmail), zap.String("region", awsRegion))
	return newEmailService(sesv2.NewFromConfig(cfg), fromEmail, fromName, logger), nil
}

func newEmailService(client sesClient, fromEmail, fromName string, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		logger:    logger,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendBuildReport mails the summary of a quiz bank build
func (s *EmailService) SendBuildReport(ctx context.Context, toEmail string, report *models.BuildReport) error {
	if !s.enabled {
		s.logger.Info("Skipping email send (service disabled)", zap.String("to", toEmail))
		return nil
	}
	if toEmail == "" {
		return fmt.Errorf("no report recipient configured")
	}

	subject := fmt.Sprintf("Quiz bank built: %d questions from %s", report.Questions, report.StartDate)
	return s.sendEmail(ctx, toEmail, subject, buildReportHTML(report), BuildReportText(report))
}

// BuildReportText renders a build report as plain text
func BuildReportText(r *models.BuildReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Source: %s\n", r.Source)
	fmt.Fprintf(&b, "Start date: %s\n", r.StartDate)
	fmt.Fprintf(&b, "Days: %d, questions per day: %d\n", r.Days, r.PerDay)
	fmt.Fprintf(&b, "Questions written: %d (%d short days)\n", r.Questions, r.ShortDays)
	fmt.Fprintf(&b, "Eligible quotes: %d for %d quote slots\n", r.EligibleQuotes, r.QuoteSlots)
	fmt.Fprintf(&b, "Stat pools: %d emoji, %d reactions, %d words\n", r.EmojiItems, r.ReactionItems, r.WordItems)
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", w)
	}
	return b.String()
}

func buildReportHTML(r *models.BuildReport) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
<h2>Quiz bank build</h2>
<table>
`)
	row := func(label, value string) {
		fmt.Fprintf(&b, "<tr><td><strong>%s</strong></td><td>%s</td></tr>\n", label, html.EscapeString(value))
	}
	row("Source", r.Source)
	row("Start date", r.StartDate)
	row("Days", fmt.Sprint(r.Days))
	row("Questions per day", fmt.Sprint(r.PerDay))
	row("Questions written", fmt.Sprint(r.Questions))
	row("Short days", fmt.Sprint(r.ShortDays))
	row("Eligible quotes", fmt.Sprintf("%d for %d slots", r.EligibleQuotes, r.QuoteSlots))
	row("Stat pools", fmt.Sprintf("%d emoji, %d reactions, %d words", r.EmojiItems, r.ReactionItems, r.WordItems))
	b.WriteString("</table>\n")
	if len(r.Warnings) > 0 {
		b.WriteString("<h3>Warnings</h3>\n<ul>\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(w))
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	fields := []zap.Field{zap.String("to", toEmail), zap.String("subject", subject)}
	if result.MessageId != nil {
		fields = append(fields, zap.String("message_id", *result.MessageId))
	}
	s.logger.Info("Email sent successfully", fields...)
	return nil
}
