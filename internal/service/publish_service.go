package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"quizbank/internal/models"
	"quizbank/internal/repository"
)

// PublishService moves quiz banks between JSON files and the database
type PublishService struct {
	repo   *repository.QuizRepository
	logger *zap.Logger
}

// NewPublishService creates a new publish service
func NewPublishService(repo *repository.QuizRepository, logger *zap.Logger) *PublishService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublishService{repo: repo, logger: logger}
}

// Import publishes the bank file at inputPath and returns the bank UUID
func (s *PublishService) Import(ctx context.Context, inputPath string) (string, error) {
	bank, err := ReadBank(inputPath)
	if err != nil {
		return "", err
	}
	return s.Publish(ctx, bank)
}

// Publish stores bank, replacing an earlier copy built with the same parameters
func (s *PublishService) Publish(ctx context.Context, bank *models.QuizBank) (string, error) {
	bankUUID, err := s.repo.SaveBank(ctx, bank)
	if err != nil {
		return "", fmt.Errorf("failed to publish quiz bank: %w", err)
	}

	s.logger.Info("Quiz bank published",
		zap.String("bank", bankUUID),
		zap.String("start_date", bank.StartDate),
		zap.Int("days", bank.DaysCount),
		zap.Int("questions", bank.QuestionCount()))
	return bankUUID, nil
}

// Export writes a published bank back to a JSON file in the build output format
func (s *PublishService) Export(ctx context.Context, bankUUID, outputPath string) error {
	bank, err := s.repo.GetBank(ctx, bankUUID)
	if err != nil {
		return fmt.Errorf("failed to load quiz bank %s: %w", bankUUID, err)
	}

	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := EncodeBank(file, bank); err != nil {
		return err
	}

	s.logger.Info("Quiz bank exported", zap.String("bank", bankUUID), zap.String("path", outputPath))
	return file.Close()
}

// Banks lists the published banks
func (s *PublishService) Banks(ctx context.Context) ([]models.BankSummary, error) {
	return s.repo.ListBanks(ctx)
}

// Today returns the questions served for date
func (s *PublishService) Today(ctx context.Context, date string) ([]models.Question, error) {
	_, questions, err := s.repo.FindDay(ctx, date)
	return questions, err
}
