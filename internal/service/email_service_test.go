package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quizbank/internal/models"
)

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func sampleReport() *models.BuildReport {
	return &models.BuildReport{
		Source:         "messages.csv",
		StartDate:      "2026-02-11",
		Days:           365,
		PerDay:         3,
		EligibleQuotes: 120,
		QuoteSlots:     365,
		EmojiItems:     12,
		ReactionItems:  3,
		WordItems:      40,
		Questions:      1095,
		Warnings:       []string{"only 120 eligible quote messages for 365 quote slots; repeats may occur"},
	}
}

func TestDisabledEmailServiceSkipsSend(t *testing.T) {
	s, err := NewEmailService(context.Background(), "us-east-1", "", "Quiz Bank", zap.NewNop())
	require.NoError(t, err)
	assert.False(t, s.IsEnabled())
	assert.NoError(t, s.SendBuildReport(context.Background(), "me@example.com", sampleReport()))
}

func TestSendBuildReport(t *testing.T) {
	client := &fakeSES{}
	s := newEmailService(client, "quiz@example.com", "Quiz Bank", zap.NewNop())

	require.NoError(t, s.SendBuildReport(context.Background(), "me@example.com", sampleReport()))
	require.Len(t, client.inputs, 1)

	input := client.inputs[0]
	assert.Equal(t, "Quiz Bank <quiz@example.com>", aws.ToString(input.FromEmailAddress))
	assert.Equal(t, []string{"me@example.com"}, input.Destination.ToAddresses)
	assert.Equal(t, "Quiz bank built: 1095 questions from 2026-02-11", aws.ToString(input.Content.Simple.Subject.Data))
	assert.Contains(t, aws.ToString(input.Content.Simple.Body.Text.Data), "Stat pools: 12 emoji, 3 reactions, 40 words")
	assert.Contains(t, aws.ToString(input.Content.Simple.Body.Html.Data), "<li>only 120 eligible quote messages")
}

func TestSendBuildReportErrors(t *testing.T) {
	client := &fakeSES{err: errors.New("throttled")}
	s := newEmailService(client, "quiz@example.com", "", zap.NewNop())

	err := s.SendBuildReport(context.Background(), "me@example.com", sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")

	assert.Error(t, s.SendBuildReport(context.Background(), "", sampleReport()))
}
