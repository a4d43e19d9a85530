package synth

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// VoiceParams selects the engine voice and prosody.
type VoiceParams struct {
	Voice string
	Rate  int
	Pitch int
}

// Engine renders one piece of text to an audio file. Implemented by
// CommandEngine in production and by fakes in tests.
type Engine interface {
	Render(ctx context.Context, text, outputPath string) error
}

// CommandEngine runs the speech engine as a dedicated OS process per render,
// so an engine hang or crash can never take down the scheduler or the HTTP
// server. The call is bounded by the configured timeout.
type CommandEngine struct {
	// argv is the command template; the placeholders {textfile}, {output},
	// {voice}, {rate} and {pitch} are expanded per render. Text is passed
	// through a temp file to stay clear of argv length limits.
	argv    []string
	voice   VoiceParams
	timeout time.Duration
}

// NewCommandEngine parses a command template like
//
//	espeak-ng -v {voice} -s {rate} -p {pitch} -w {output} -f {textfile}
//
// into an engine bound to the given voice parameters.
func NewCommandEngine(template string, voice VoiceParams, timeout time.Duration) (*CommandEngine, error) {
	argv := strings.Fields(template)
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty synthesis command")
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &CommandEngine{argv: argv, voice: voice, timeout: timeout}, nil
}

// Render writes text to a temp file, expands the command template, and runs
// the engine process to completion or timeout.
func (e *CommandEngine) Render(ctx context.Context, text, outputPath string) error {
	textFile, err := os.CreateTemp("", "readcast-tts-*.txt")
	if err != nil {
		return fmt.Errorf("create text file: %w", err)
	}
	defer os.Remove(textFile.Name())
	if _, err := textFile.WriteString(text); err != nil {
		textFile.Close()
		return fmt.Errorf("write text file: %w", err)
	}
	if err := textFile.Close(); err != nil {
		return fmt.Errorf("close text file: %w", err)
	}

	replacer := strings.NewReplacer(
		"{textfile}", textFile.Name(),
		"{output}", outputPath,
		"{voice}", e.voice.Voice,
		"{rate}", strconv.Itoa(e.voice.Rate),
		"{pitch}", strconv.Itoa(e.voice.Pitch),
	)
	args := make([]string, 0, len(e.argv)-1)
	for _, a := range e.argv[1:] {
		args = append(args, replacer.Replace(a))
	}

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, e.argv[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("engine timed out after %s", e.timeout)
		}
		return fmt.Errorf("engine: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return fmt.Errorf("engine produced no output: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("engine produced empty output")
	}
	return nil
}
