package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dmorgan81/convergence/internal/log"
	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"
)

const (
	DefaultKeySource      = "openai.key"
	DefaultDescribePrompt = "Describe the image in all details."
	DefaultIterations     = 10
	DefaultTimeout        = 5 * time.Minute
	DefaultDescribeModel  = openai.GPT4VisionPreview
	DefaultGenerateModel  = openai.CreateImageModelDallE3
)

var ErrNegativeIterations = errors.New("number of iterations cannot be negative")

// Config is everything one invocation needs. It is built once at startup and
// handed to the injector.
type Config struct {
	// KeySource is a credential file path, or an SSM parameter path prefixed with "ssm:".
	KeySource      string
	GeneratePrompt string
	Folder         string
	DescribePrompt string
	Iterations     int

	// Set via CONVERGENCE_BASE_URL; empty uses the public OpenAI endpoint
	BaseURL string
	// Set via CONVERGENCE_DESCRIBE_MODEL
	DescribeModel string
	// Set via CONVERGENCE_GENERATE_MODEL
	GenerateModel string
	// Set via CONVERGENCE_TIMEOUT, bounds every HTTP request
	Timeout time.Duration
	// Set via CONVERGENCE_LOG_LEVEL
	LogLevel slog.Level
	// Set via CONVERGENCE_LOG_FORMAT, json or text
	LogFormat log.Format
}

func Default() Config {
	return Config{
		KeySource:      DefaultKeySource,
		DescribePrompt: DefaultDescribePrompt,
		Iterations:     DefaultIterations,
		DescribeModel:  DefaultDescribeModel,
		GenerateModel:  DefaultGenerateModel,
		Timeout:        DefaultTimeout,
		LogLevel:       slog.LevelInfo,
		LogFormat:      log.FormatJSON,
	}
}

// LoadDotEnv loads path into the environment when it exists. Variables already
// set take precedence.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to check if %s exists: %w", path, err)
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("could not load %s: %w", path, err)
	}
	return nil
}

// clean strips quotes and spaces from the value of key
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

// LoadEnv overrides c with the CONVERGENCE_* variables that are set.
func (c *Config) LoadEnv() error {
	if v := clean("CONVERGENCE_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := clean("CONVERGENCE_DESCRIBE_MODEL"); v != "" {
		c.DescribeModel = v
	}
	if v := clean("CONVERGENCE_GENERATE_MODEL"); v != "" {
		c.GenerateModel = v
	}
	if v := clean("CONVERGENCE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CONVERGENCE_TIMEOUT %q: %w", v, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid CONVERGENCE_TIMEOUT %q: must be positive", v)
		}
		c.Timeout = d
	}
	if v := clean("CONVERGENCE_LOG_LEVEL"); v != "" {
		if err := c.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("invalid CONVERGENCE_LOG_LEVEL %q: %w", v, err)
		}
	}
	if v := clean("CONVERGENCE_LOG_FORMAT"); v != "" {
		f, err := log.ParseFormat(v)
		if err != nil {
			return fmt.Errorf("invalid CONVERGENCE_LOG_FORMAT: %w", err)
		}
		c.LogFormat = f
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeIterations, c.Iterations)
	}
	if strings.TrimSpace(c.GeneratePrompt) == "" {
		return errors.New("generate prompt cannot be empty")
	}
	if c.Folder == "" {
		return errors.New("folder cannot be empty")
	}
	if c.KeySource == "" {
		return errors.New("api key source cannot be empty")
	}
	return nil
}
