package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"quizbank/internal/models"
	"quizbank/internal/pool"
	"quizbank/internal/validation"
)

// Defaults for a build
const (
	DefaultSeed       = "febweb"
	DefaultDays       = 365
	DefaultPerDay     = 3
	DefaultInputPath  = "messages.csv"
	DefaultOutputPath = "data/quiz-bank.json"
	DefaultConfigFile = "quizbank.yaml"
)

// Config holds application configuration
type Config struct {
	InputPath  string `yaml:"input"`
	Format     string `yaml:"format"`
	OutputPath string `yaml:"output"`
	Seed       string `yaml:"seed"`
	Days       int    `yaml:"days"`
	PerDay     int    `yaml:"per_day"`

	Participants models.Identities `yaml:"participants"`
	Thresholds   pool.Thresholds   `yaml:"thresholds"`

	// Publishing target for generated banks
	DatabaseType string `yaml:"database_type"`
	DatabasePath string `yaml:"database_path"`
	DatabaseURL  string `yaml:"-"`

	// MigrationsPath overrides the embedded migrations when set
	MigrationsPath string `yaml:"migrations_path"`

	// Build report email, disabled when SESFromEmail is empty
	AWSRegion     string `yaml:"aws_region"`
	SESFromEmail  string `yaml:"ses_from_email"`
	SESFromName   string `yaml:"ses_from_name"`
	ReportToEmail string `yaml:"report_to_email"`

	Debug bool `yaml:"debug"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		InputPath:  DefaultInputPath,
		OutputPath: DefaultOutputPath,
		Seed:       DefaultSeed,
		Days:       DefaultDays,
		PerDay:     DefaultPerDay,
		Participants: models.Identities{
			A: models.Participant{Name: "a"},
			B: models.Participant{Name: "b"},
		},
		Thresholds:   pool.DefaultThresholds(),
		DatabaseType: "sqlite",
		DatabasePath: "./quizbank.db",
		AWSRegion:    "us-east-1",
		SESFromName:  "Quiz Bank",
	}
}

// Load reads configuration from an optional .env file, an optional YAML file
// (QUIZBANK_CONFIG or ./quizbank.yaml) and environment variables, in that order of
// increasing precedence
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom is Load with an explicit YAML file taking the place of QUIZBANK_CONFIG
func LoadFrom(path string) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = getEnv("QUIZBANK_CONFIG", "")
	}
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile merges a YAML file into cfg; keys missing from the file keep their values
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.InputPath = getEnv("QUIZBANK_INPUT", c.InputPath)
	c.Format = getEnv("QUIZBANK_FORMAT", c.Format)
	c.OutputPath = getEnv("QUIZBANK_OUT", c.OutputPath)
	c.Seed = getEnv("QUIZBANK_SEED", c.Seed)

	c.Participants.A = participantFromEnv("QUIZBANK_SENDER_A", c.Participants.A)
	c.Participants.B = participantFromEnv("QUIZBANK_SENDER_B", c.Participants.B)

	c.DatabaseType = getEnv("DATABASE_TYPE", c.DatabaseType)
	c.DatabasePath = getEnv("DB_PATH", c.DatabasePath)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.MigrationsPath = getEnv("MIGRATIONS_PATH", c.MigrationsPath)

	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.SESFromEmail = getEnv("SES_FROM_EMAIL", c.SESFromEmail)
	c.SESFromName = getEnv("SES_FROM_NAME", c.SESFromName)
	c.ReportToEmail = getEnv("REPORT_TO_EMAIL", c.ReportToEmail)

	var err error
	if c.Days, err = getEnvInt("QUIZBANK_DAYS", c.Days); err != nil {
		return err
	}
	if c.PerDay, err = getEnvInt("QUIZBANK_PER_DAY", c.PerDay); err != nil {
		return err
	}
	if c.Debug, err = getEnvBool("QUIZBANK_DEBUG", c.Debug); err != nil {
		return err
	}
	return nil
}

// Validate checks the values a build depends on
func (c *Config) Validate() error {
	var errs []error
	if c.Days < 0 {
		errs = append(errs, fmt.Errorf("days must not be negative, got %d", c.Days))
	}
	if c.PerDay < 0 {
		errs = append(errs, fmt.Errorf("per-day must not be negative, got %d", c.PerDay))
	}

	a, b := c.Participants.A, c.Participants.B
	errA := validateParticipant("participants.a", a)
	errB := validateParticipant("participants.b", b)
	errs = append(errs, errA, errB)
	if errA == nil && errB == nil && strings.EqualFold(string(a.Name), string(b.Name)) {
		errs = append(errs, fmt.Errorf("participants must differ, both are %q", a.Name))
	}

	if c.SESFromEmail != "" {
		errs = append(errs, validation.ValidateEmail("ses_from_email", c.SESFromEmail))
	}
	if c.ReportToEmail != "" {
		errs = append(errs, validation.ValidateEmail("report_to_email", c.ReportToEmail))
	}
	return errors.Join(errs...)
}

func validateParticipant(field string, p models.Participant) error {
	errs := []error{validation.ValidateSender(field+".name", string(p.Name))}
	for _, phone := range p.Phones {
		errs = append(errs, validation.ValidatePhone(field+".phones", phone))
	}
	return errors.Join(errs...)
}

func participantFromEnv(prefix string, p models.Participant) models.Participant {
	p.Name = models.Sender(strings.ToLower(getEnv(prefix, string(p.Name))))
	p.EmailPrefix = getEnv(prefix+"_EMAIL", p.EmailPrefix)
	if phones := getEnv(prefix+"_PHONES", ""); phones != "" {
		p.Phones = nil
		for _, phone := range strings.Split(phones, ",") {
			if phone = strings.TrimSpace(phone); phone != "" {
				p.Phones = append(p.Phones, phone)
			}
		}
	}
	return p
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
