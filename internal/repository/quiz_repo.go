package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"quizbank/internal/database"
	"quizbank/internal/models"
)

// ErrBankNotFound is returned when no published bank matches
var ErrBankNotFound = errors.New("quiz bank not found")

// bankNamespace scopes the name-based bank UUIDs
var bankNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("quizbank:banks"))

// BankID derives a stable identifier from the parameters of a bank, so republishing
// the same build replaces the earlier copy
func BankID(bank *models.QuizBank) string {
	name := fmt.Sprintf("%s|%s|%d|%d", bank.Source, bank.StartDate, bank.DaysCount, bank.PerDay)
	return uuid.NewSHA1(bankNamespace, []byte(name)).String()
}

// QuizRepository stores published quiz banks
type QuizRepository struct {
	db *database.DB
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(db *database.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

// SaveBank replaces the stored copy of bank in one transaction and returns its UUID
func (r *QuizRepository) SaveBank(ctx context.Context, bank *models.QuizBank) (string, error) {
	bankUUID := BankID(bank)

	dates := make([]string, 0, len(bank.Days))
	for date := range bank.Days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		if err := deleteBank(ctx, tx, bankUUID); err != nil {
			return err
		}

		bankID, err := tx.ExecReturningID(ctx, `
			INSERT INTO quiz_banks (bank_uuid, source, start_date, days_count, per_day, generated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, bankUUID, bank.Source, bank.StartDate, bank.DaysCount, bank.PerDay, bank.GeneratedAt)
		if err != nil {
			return fmt.Errorf("failed to insert bank: %w", err)
		}

		for _, date := range dates {
			for i, q := range bank.Days[date] {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO quiz_questions (bank_id, quiz_date, position, question_id, question_text, answer, timestamp_label)
					VALUES (?, ?, ?, ?, ?, ?, ?)
				`, bankID, date, i+1, q.ID, q.Text, string(q.Answer), q.Timestamp)
				if err != nil {
					return fmt.Errorf("failed to insert question %s: %w", q.ID, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return bankUUID, nil
}

func deleteBank(ctx context.Context, tx database.DBTX, bankUUID string) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM quiz_questions
		WHERE bank_id IN (SELECT id FROM quiz_banks WHERE bank_uuid = ?)
	`, bankUUID)
	if err != nil {
		return fmt.Errorf("failed to delete questions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM quiz_banks WHERE bank_uuid = ?`, bankUUID); err != nil {
		return fmt.Errorf("failed to delete bank: %w", err)
	}
	return nil
}

// GetDay returns the questions of one day of a bank in slot order
func (r *QuizRepository) GetDay(ctx context.Context, bankUUID, date string) ([]models.Question, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT q.question_id, q.question_text, q.answer, q.timestamp_label
		FROM quiz_questions q
		JOIN quiz_banks b ON b.id = q.bank_id
		WHERE b.bank_uuid = ? AND q.quiz_date = ?
		ORDER BY q.position
	`, bankUUID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		var answer string
		if err := rows.Scan(&q.ID, &q.Text, &answer, &q.Timestamp); err != nil {
			return nil, err
		}
		q.Answer = models.Sender(answer)
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// FindDay returns the questions for date from the most recently published bank that
// covers it
func (r *QuizRepository) FindDay(ctx context.Context, date string) (string, []models.Question, error) {
	var bankUUID string
	err := r.db.QueryRowContext(ctx, `
		SELECT b.bank_uuid
		FROM quiz_questions q
		JOIN quiz_banks b ON b.id = q.bank_id
		WHERE q.quiz_date = ?
		ORDER BY b.id DESC
		LIMIT 1
	`, date).Scan(&bankUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, ErrBankNotFound
	}
	if err != nil {
		return "", nil, err
	}

	questions, err := r.GetDay(ctx, bankUUID, date)
	return bankUUID, questions, err
}

// GetBank rebuilds a published bank with all of its days
func (r *QuizRepository) GetBank(ctx context.Context, bankUUID string) (*models.QuizBank, error) {
	var bank models.QuizBank
	var bankID int64
	var start dateValue
	err := r.db.QueryRowContext(ctx, `
		SELECT id, source, start_date, days_count, per_day, generated_at
		FROM quiz_banks
		WHERE bank_uuid = ?
	`, bankUUID).Scan(&bankID, &bank.Source, &start, &bank.DaysCount, &bank.PerDay, &bank.GeneratedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBankNotFound
	}
	if err != nil {
		return nil, err
	}
	bank.StartDate = string(start)

	rows, err := r.db.QueryContext(ctx, `
		SELECT quiz_date, question_id, question_text, answer, timestamp_label
		FROM quiz_questions
		WHERE bank_id = ?
		ORDER BY quiz_date, position
	`, bankID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bank.Days = make(map[string][]models.Question, bank.DaysCount)
	for rows.Next() {
		var date dateValue
		var q models.Question
		var answer string
		if err := rows.Scan(&date, &q.ID, &q.Text, &answer, &q.Timestamp); err != nil {
			return nil, err
		}
		q.Answer = models.Sender(answer)
		bank.Days[string(date)] = append(bank.Days[string(date)], q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// days without questions are not stored
	if start, err := time.Parse("2006-01-02", bank.StartDate); err == nil {
		for i := 0; i < bank.DaysCount; i++ {
			date := start.AddDate(0, 0, i).Format("2006-01-02")
			if _, ok := bank.Days[date]; !ok {
				bank.Days[date] = []models.Question{}
			}
		}
	}
	return &bank, nil
}

// CountQuestions returns the number of stored questions of a bank
func (r *QuizRepository) CountQuestions(ctx context.Context, bankUUID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM quiz_questions q
		JOIN quiz_banks b ON b.id = q.bank_id
		WHERE b.bank_uuid = ?
	`, bankUUID).Scan(&count)
	return count, err
}

// ListBanks returns all published banks, newest first
func (r *QuizRepository) ListBanks(ctx context.Context) ([]models.BankSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT b.id, b.bank_uuid, b.source, b.start_date, b.days_count, b.per_day, b.generated_at, COUNT(q.id)
		FROM quiz_banks b
		LEFT JOIN quiz_questions q ON q.bank_id = b.id
		GROUP BY b.id, b.bank_uuid, b.source, b.start_date, b.days_count, b.per_day, b.generated_at
		ORDER BY b.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banks []models.BankSummary
	for rows.Next() {
		var b models.BankSummary
		var start dateValue
		if err := rows.Scan(&b.ID, &b.UUID, &b.Source, &start, &b.DaysCount, &b.PerDay, &b.GeneratedAt, &b.Questions); err != nil {
			return nil, err
		}
		b.StartDate = string(start)
		banks = append(banks, b)
	}
	return banks, rows.Err()
}

// dateValue scans DATE columns, which arrive as time.Time from PostgreSQL and MySQL
// and as text from SQLite
type dateValue string

func (d *dateValue) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = dateValue(v.Format("2006-01-02"))
	case string:
		*d = dateValue(v)
	case []byte:
		*d = dateValue(v)
	case nil:
		*d = ""
	default:
		return fmt.Errorf("unsupported date value %T", src)
	}
	return nil
}
