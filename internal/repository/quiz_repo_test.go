package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quizbank/internal/database"
	"quizbank/internal/models"
)

func newTestRepo(t *testing.T) *QuizRepository {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "quizbank.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations(context.Background(), ""))
	return NewQuizRepository(db)
}

func sampleBank() *models.QuizBank {
	return &models.QuizBank{
		GeneratedAt: "2026-02-11T16:30:00Z",
		Source:      "messages.csv",
		StartDate:   "2026-02-11",
		DaysCount:   2,
		PerDay:      2,
		Days: map[string][]models.Question{
			"2026-02-11": {
				{ID: "2026-02-11-1", Text: "I absolutely cannot believe you did that again", Answer: "alex", Timestamp: "02/10/2026 9:05:03 PM"},
				{ID: "2026-02-11-2", Text: "Who uses the '\U0001F525' emoji the most?", Answer: "sam", Timestamp: "All-time stat"},
			},
			"2026-02-12": {
				{ID: "2026-02-12-1", Text: "see you at the station in ten minutes", Answer: "sam", Timestamp: "02/09/2026 8:00:00 AM"},
			},
		},
	}
}

func TestBankIDIsStable(t *testing.T) {
	a, b := sampleBank(), sampleBank()
	b.GeneratedAt = "2030-01-01T00:00:00Z"
	assert.Equal(t, BankID(a), BankID(b))

	id, err := uuid.Parse(BankID(a))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), id.Version())

	b.PerDay = 3
	assert.NotEqual(t, BankID(a), BankID(b))
}

func TestSaveBankAndGetDay(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	bank := sampleBank()

	bankUUID, err := repo.SaveBank(ctx, bank)
	require.NoError(t, err)
	assert.Equal(t, BankID(bank), bankUUID)

	day, err := repo.GetDay(ctx, bankUUID, "2026-02-11")
	require.NoError(t, err)
	if diff := cmp.Diff(bank.Days["2026-02-11"], day); diff != "" {
		t.Errorf("day mismatch (-want +got):\n%s", diff)
	}

	count, err := repo.CountQuestions(ctx, bankUUID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	empty, err := repo.GetDay(ctx, bankUUID, "2027-01-01")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSaveBankReplacesEarlierCopy(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.SaveBank(ctx, sampleBank())
	require.NoError(t, err)

	bank := sampleBank()
	bank.Days["2026-02-12"] = append(bank.Days["2026-02-12"], models.Question{
		ID: "2026-02-12-2", Text: "Who has used the word 'basically' more in our texts?", Answer: "alex", Timestamp: "Lifetime stats",
	})
	bankUUID, err := repo.SaveBank(ctx, bank)
	require.NoError(t, err)

	count, err := repo.CountQuestions(ctx, bankUUID)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	banks, err := repo.ListBanks(ctx)
	require.NoError(t, err)
	require.Len(t, banks, 1)
	assert.Equal(t, models.BankSummary{
		ID:          banks[0].ID,
		UUID:        bankUUID,
		Source:      "messages.csv",
		StartDate:   "2026-02-11",
		DaysCount:   2,
		PerDay:      2,
		GeneratedAt: "2026-02-11T16:30:00Z",
		Questions:   4,
	}, banks[0])
}

func TestFindDayPrefersLatestBank(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.SaveBank(ctx, sampleBank())
	require.NoError(t, err)

	newer := sampleBank()
	newer.PerDay = 1
	newer.Days = map[string][]models.Question{
		"2026-02-12": {{ID: "2026-02-12-1", Text: "a newer bank covers this day as well", Answer: "alex", Timestamp: "x"}},
	}
	newerUUID, err := repo.SaveBank(ctx, newer)
	require.NoError(t, err)

	bankUUID, day, err := repo.FindDay(ctx, "2026-02-12")
	require.NoError(t, err)
	assert.Equal(t, newerUUID, bankUUID)
	require.Len(t, day, 1)
	assert.Equal(t, "a newer bank covers this day as well", day[0].Text)

	_, _, err = repo.FindDay(ctx, "1999-01-01")
	assert.ErrorIs(t, err, ErrBankNotFound)
}

func TestDateValueScan(t *testing.T) {
	var d dateValue
	require.NoError(t, d.Scan([]byte("2026-02-11")))
	assert.Equal(t, dateValue("2026-02-11"), d)
	assert.Error(t, d.Scan(42))
}

func TestGetBankRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	bank := sampleBank()

	bankUUID, err := repo.SaveBank(ctx, bank)
	require.NoError(t, err)

	got, err := repo.GetBank(ctx, bankUUID)
	require.NoError(t, err)
	if diff := cmp.Diff(bank, got); diff != "" {
		t.Errorf("bank mismatch (-want +got):\n%s", diff)
	}

	_, err = repo.GetBank(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrBankNotFound)
}

func TestGetBankKeepsEmptyDays(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	bank := &models.QuizBank{
		GeneratedAt: "2026-02-11T16:30:00Z",
		Source:      "messages.csv",
		StartDate:   "2026-02-11",
		DaysCount:   2,
		PerDay:      0,
		Days:        map[string][]models.Question{"2026-02-11": {}, "2026-02-12": {}},
	}

	bankUUID, err := repo.SaveBank(ctx, bank)
	require.NoError(t, err)

	got, err := repo.GetBank(ctx, bankUUID)
	require.NoError(t, err)
	assert.Equal(t, bank.Days, got.Days)
}
