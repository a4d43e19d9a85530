// Package config provides centralized configuration for the readcast server.
// Values come from environment variables (optionally a .env file), with
// defaults for everything that is not a credential.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"readcast/internal/model"
)

// Config holds all server configuration values.
type Config struct {
	// Port is the HTTP server listen port.
	Port string `envconfig:"PORT" default:"8080"`

	// DataDir holds the state file and the audio directory.
	DataDir string `envconfig:"DATA_DIR" default:"data"`

	// SourceAPIURL is the bookmark provider's API base URL.
	SourceAPIURL string `envconfig:"SOURCE_API_URL"`

	// SourceToken authenticates against the bookmark provider.
	SourceToken string `envconfig:"SOURCE_TOKEN"`

	// SourceTags selects which saved items to process; empty means all.
	SourceTags []string `envconfig:"SOURCE_TAGS"`

	// TargetLanguage enables translation when set (e.g. "German").
	TargetLanguage string `envconfig:"TARGET_LANGUAGE"`

	// CompletionsURL is the chat completions endpoint used for translation.
	CompletionsURL string `envconfig:"COMPLETIONS_URL" default:"https://api.openai.com/v1/chat/completions"`

	// CompletionsModel is the model name sent with each translation request.
	CompletionsModel string `envconfig:"COMPLETIONS_MODEL" default:"gpt-4o-mini"`

	// CompletionsAPIKey authenticates translation requests.
	CompletionsAPIKey string `envconfig:"COMPLETIONS_API_KEY"`

	// TranslateTimeout bounds a single translation attempt.
	TranslateTimeout time.Duration `envconfig:"TRANSLATE_TIMEOUT" default:"60s"`

	// TTSCommand is the speech engine command template. The placeholders
	// {textfile}, {output}, {voice}, {rate} and {pitch} are expanded per call.
	TTSCommand string `envconfig:"TTS_COMMAND" default:"espeak-ng -v {voice} -s {rate} -p {pitch} -w {output} -f {textfile}"`

	// TTSVoice, TTSRate and TTSPitch are passed through to the engine.
	TTSVoice string `envconfig:"TTS_VOICE" default:"en"`
	TTSRate  int    `envconfig:"TTS_RATE" default:"170"`
	TTSPitch int    `envconfig:"TTS_PITCH" default:"50"`

	// SynthTimeout bounds one isolated engine invocation.
	SynthTimeout time.Duration `envconfig:"SYNTH_TIMEOUT" default:"5m"`

	// Concurrency caps how many items are processed at once.
	Concurrency int `envconfig:"CONCURRENCY" default:"2"`

	// Schedule is the recurring run trigger, standard 5-field cron syntax.
	// Empty disables the timer (manual triggers only).
	Schedule string `envconfig:"SCHEDULE" default:"0 */6 * * *"`

	// FeedTitle and FeedBaseURL shape the published RSS feed.
	FeedTitle   string `envconfig:"FEED_TITLE" default:"Readcast"`
	FeedBaseURL string `envconfig:"FEED_BASE_URL" default:"http://localhost:8080"`
}

// Load reads configuration from the environment, consulting a .env file if
// present, and validates it.
func Load() (*Config, error) {
	// Env vars may be set in the shell instead; a missing .env is fine.
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrConfigInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every required setting is present. Validation errors
// are fatal at startup: the process must not begin serving without them.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SourceAPIURL) == "" {
		return fmt.Errorf("%w: SOURCE_API_URL", model.ErrConfigInvalid)
	}
	if strings.TrimSpace(c.SourceToken) == "" {
		return fmt.Errorf("%w: SOURCE_TOKEN", model.ErrConfigInvalid)
	}
	if strings.TrimSpace(c.TTSCommand) == "" {
		return fmt.Errorf("%w: TTS_COMMAND", model.ErrConfigInvalid)
	}
	if c.TranslationEnabled() && strings.TrimSpace(c.CompletionsAPIKey) == "" {
		return fmt.Errorf("%w: COMPLETIONS_API_KEY required when TARGET_LANGUAGE is set", model.ErrConfigInvalid)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: CONCURRENCY must be at least 1", model.ErrConfigInvalid)
	}
	return nil
}

// TranslationEnabled reports whether articles are translated before synthesis.
func (c *Config) TranslationEnabled() bool {
	return strings.TrimSpace(c.TargetLanguage) != ""
}

// StatePath is the location of the durable pipeline state file.
func (c *Config) StatePath() string {
	return filepath.Join(c.DataDir, "state.json")
}

// AudioDir is where synthesized audio artifacts are stored.
func (c *Config) AudioDir() string {
	return filepath.Join(c.DataDir, "audio")
}
