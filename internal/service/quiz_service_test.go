package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"quizbank/internal/corpus"
	"quizbank/internal/models"
	"quizbank/internal/pool"
)

func testIdentities() models.Identities {
	return models.Identities{
		A: models.Participant{Name: "alex", EmailPrefix: "alex.k@"},
		B: models.Participant{Name: "sam", Phones: []string{"+15550001111"}},
	}
}

var fixedClock = func() time.Time {
	return time.Date(2026, 2, 11, 8, 30, 0, 0, time.FixedZone("PST", -8*3600))
}

func newTestService() *QuizService {
	s := NewQuizService(zap.NewNop(), pool.DefaultThresholds())
	s.SetClock(fixedClock)
	return s
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseStartDate(s)
	require.NoError(t, err)
	return d
}

// addQuotes adds n distinct quote-worthy messages whose words are all too short to count
func addQuotes(c *corpus.Corpus, sender models.Sender, n int) {
	for i := 0; i < n; i++ {
		c.Observe(sender, fmt.Sprintf("ok so we met at %d and ran", i), fmt.Sprintf("02/10/2026 9:%02d:00 PM", i%60))
	}
}

func TestBuildSingleQuoteScenario(t *testing.T) {
	c := corpus.NewCorpus(testIdentities())
	c.Observe("alex", "I absolutely cannot believe you did that again", "02/10/2026 9:05:03 PM")
	c.Observe("alex", "I absolutely cannot believe you did that again", "02/10/2026 9:06:03 PM")
	c.Observe("sam", `Loved "ok"`, "02/10/2026 9:07:00 PM")

	bank, report, err := newTestService().Build(c, BuildOptions{
		StartDate: mustDate(t, "2026-02-11"), Days: 1, PerDay: 1, Seed: "x",
	})
	require.NoError(t, err)

	require.Len(t, bank.Days, 1)
	day := bank.Days["2026-02-11"]
	require.Len(t, day, 1)
	assert.Equal(t, "2026-02-11-1", day[0].ID)
	assert.Equal(t, models.Sender("alex"), day[0].Answer)
	assert.Equal(t, "I absolutely cannot believe you did that again", day[0].Text)
	assert.Equal(t, 1, report.Questions)
	assert.Empty(t, report.Warnings)
}

func TestBuildEmojiScenario(t *testing.T) {
	c := corpus.NewCorpus(testIdentities())
	for i := 0; i < 5; i++ {
		c.Observe("alex", "\U0001F525", "")
	}
	c.Observe("sam", "\U0001F525", "")
	addQuotes(c, "sam", 3)

	bank, report, err := newTestService().Build(c, BuildOptions{
		StartDate: mustDate(t, "2026-02-11"), Days: 1, PerDay: 2, Seed: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.EmojiItems)
	assert.Equal(t, 0, report.ReactionItems)

	day := bank.Days["2026-02-11"]
	require.Len(t, day, 2)
	assert.Equal(t, models.Question{
		ID:        "2026-02-11-2",
		Text:      "Who uses the '\U0001F525' emoji the most?",
		Answer:    "alex",
		Timestamp: "All-time stat",
	}, day[1])
}

func TestBuildWordScenario(t *testing.T) {
	c := corpus.NewCorpus(testIdentities())
	for i := 0; i < 9; i++ {
		c.Observe("alex", "basically", "")
	}
	c.Observe("sam", "basically", "")
	for i := 0; i < 5; i++ {
		c.Observe("alex", "amazing", "")
		c.Observe("sam", "amazing", "")
	}
	addQuotes(c, "alex", 10)

	bank, report, err := newTestService().Build(c, BuildOptions{
		StartDate: mustDate(t, "2026-02-11"), Days: 3, PerDay: 3, Seed: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.WordItems)

	for date, day := range bank.Days {
		require.Len(t, day, 3, date)
		assert.Equal(t, "Who has used the word 'basically' more in our texts?", day[2].Text)
		assert.Equal(t, models.Sender("alex"), day[2].Answer)
		assert.Equal(t, "Lifetime stats", day[2].Timestamp)
		// no stat items, so slot 2 falls back to a quote
		assert.Equal(t, date+"-2", day[1].ID)
		assert.True(t, strings.HasPrefix(day[1].Text, "ok so we met at"))
	}
}

func TestBuildReactionQuestion(t *testing.T) {
	c := corpus.NewCorpus(testIdentities())
	for i := 0; i < 6; i++ {
		c.Observe("sam", `Laughed at "that was hilarious honestly"`, "")
	}
	for i := 0; i < 2; i++ {
		c.Observe("alex", `Laughed at "that was hilarious honestly"`, "")
	}
	addQuotes(c, "alex", 2)

	bank, _, err := newTestService().Build(c, BuildOptions{
		StartDate: mustDate(t, "2026-02-11"), Days: 1, PerDay: 2, Seed: "x",
	})
	require.NoError(t, err)

	day := bank.Days["2026-02-11"]
	require.Len(t, day, 2)
	assert.Equal(t, "Who laughed at the most messages? (Laughed)", day[1].Text)
	assert.Equal(t, models.Sender("sam"), day[1].Answer)
}

func TestBuildIsReproducible(t *testing.T) {
	build := func() []byte {
		c := corpus.NewCorpus(testIdentities())
		addQuotes(c, "alex", 7)
		addQuotes(c, "sam", 5)
		for i := 0; i < 4; i++ {
			c.Observe("sam", "\U0001F602\U0001F602", "")
		}
		bank, _, err := newTestService().Build(c, BuildOptions{
			StartDate: mustDate(t, "2026-02-11"), Days: 30, PerDay: 4, Seed: "febweb",
		})
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, EncodeBank(&buf, bank))
		return buf.Bytes()
	}

	first, second := build(), build()
	assert.Equal(t, first, second)
}

func TestBuildPerDayZero(t *testing.T) {
	c := corpus.NewCorpus(testIdentities())
	addQuotes(c, "alex", 3)

	bank, report, err := newTestService().Build(c, BuildOptions{
		StartDate: mustDate(t, "2026-02-11"), Days: 2, PerDay: 0, Seed: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, bank.QuestionCount())
	assert.Equal(t, 0, report.ShortDays)

	var buf bytes.Buffer
	require.NoError(t, EncodeBank(&buf, bank))
	assert.Contains(t, buf.String(), `"2026-02-11": []`)
	assert.Contains(t, buf.String(), `"2026-02-12": []`)
}

func TestBuildEmptyCorpus(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewQuizService(zap.New(core), pool.DefaultThresholds())
	s.SetClock(fixedClock)

	bank, report, err := s.Build(corpus.NewCorpus(testIdentities()), BuildOptions{
		StartDate: mustDate(t, "2026-02-11"), Days: 2, PerDay: 3, Seed: "x",
	})
	require.NoError(t, err)

	assert.Len(t, bank.Days, 2)
	for _, day := range bank.Days {
		assert.NotNil(t, day)
		assert.Empty(t, day)
	}
	assert.Equal(t, 2, report.ShortDays)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, 1, logs.FilterMessage("Quote pool smaller than requested slots").Len())
}

func TestBuildQuoteSlotsWarning(t *testing.T) {
	c := corpus.NewCorpus(testIdentities())
	addQuotes(c, "alex", 6)

	_, report, err := newTestService().Build(c, BuildOptions{
		StartDate: mustDate(t, "2026-02-11"), Days: 3, PerDay: 5, Seed: "x",
	})
	require.NoError(t, err)
	// three days of 1 + (5 - 3) quote slots
	assert.Equal(t, 9, report.QuoteSlots)
	assert.Len(t, report.Warnings, 1)
}

func TestBuildRepeatsOnlyAfterExhaustion(t *testing.T) {
	c := corpus.NewCorpus(testIdentities())
	addQuotes(c, "alex", 2)

	bank, _, err := newTestService().Build(c, BuildOptions{
		StartDate: mustDate(t, "2026-02-11"), Days: 1, PerDay: 3, Seed: "x",
	})
	require.NoError(t, err)

	day := bank.Days["2026-02-11"]
	require.Len(t, day, 3)
	assert.NotEqual(t, day[0].Text, day[1].Text)
	assert.Contains(t, []string{day[0].Text, day[1].Text}, day[2].Text)

	var ids []string
	for _, q := range day {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"2026-02-11-1", "2026-02-11-2", "2026-02-11-3"}, ids)
}

func TestBuildRejectsNegativeOptions(t *testing.T) {
	c := corpus.NewCorpus(testIdentities())
	_, _, err := newTestService().Build(c, BuildOptions{Days: -1, PerDay: 3})
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, _, err = newTestService().Build(c, BuildOptions{Days: 1, PerDay: -3})
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestParseStartDate(t *testing.T) {
	d, err := ParseStartDate(" 2026-02-11 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "02/11/2026", "2026-13-01", "tomorrow"} {
		_, err := ParseStartDate(bad)
		assert.ErrorIs(t, err, ErrInvalidStartDate, bad)
	}
}

func TestGeneratedAtUsesClock(t *testing.T) {
	bank, _, err := newTestService().Build(corpus.NewCorpus(testIdentities()), BuildOptions{
		StartDate: mustDate(t, "2026-02-11"), Days: 0, PerDay: 3, Seed: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-02-11T16:30:00Z", bank.GeneratedAt)
	assert.Empty(t, bank.Days)
}

func TestWriteAndReadBank(t *testing.T) {
	c := corpus.NewCorpus(testIdentities())
	c.Source = "messages.csv"
	addQuotes(c, "sam", 4)
	s := newTestService()

	bank, _, err := s.Build(c, BuildOptions{
		StartDate: mustDate(t, "2026-02-11"), Days: 2, PerDay: 2, Seed: "x",
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "data", "quiz-bank.json")
	require.NoError(t, s.Write(bank, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(raw, []byte("}\n")))
	assert.Contains(t, string(raw), "\n  \"generatedAt\": \"2026-02-11T16:30:00Z\",")

	got, err := ReadBank(path)
	require.NoError(t, err)
	if diff := cmp.Diff(bank, got); diff != "" {
		t.Errorf("bank mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeBankKeepsNonASCII(t *testing.T) {
	bank := &models.QuizBank{
		StartDate: "2026-02-11",
		Days: map[string][]models.Question{
			"2026-02-11": {{ID: "2026-02-11-1", Text: "café & <b>", Answer: "alex", Timestamp: "All-time stat"}},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, EncodeBank(&buf, bank))
	assert.Contains(t, buf.String(), "café & <b>")
}

func TestStatQuestionUnknownKind(t *testing.T) {
	_, ok := StatQuestion(models.StatItem{Kind: "color", Key: "red", Winner: "alex"})
	assert.False(t, ok)
}
