// Package translate wraps the remote completion API as the pipeline's
// translation gateway: skip-if-already-target-language, chunked translation
// for long bodies, and retry with backoff on transient failures.
package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"

	"readcast/internal/model"
	"readcast/internal/retry"
	"readcast/internal/textutil"
)

// maxChunkChars keeps a single remote call well under model context limits.
const maxChunkChars = 4000

// Translator converts text into the configured target language.
type Translator struct {
	target     string
	targetCode string
	completer  Completer
	policy     retry.Policy
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithRetryPolicy overrides the retry policy (tests inject a recording sleeper).
func WithRetryPolicy(p retry.Policy) TranslatorOption {
	return func(t *Translator) { t.policy = p }
}

// New creates a translator targeting the given human language name
// (e.g. "German"). Unknown names disable the skip heuristic but still
// translate: the name is passed to the model verbatim.
func New(targetLanguage string, completer Completer, opts ...TranslatorOption) *Translator {
	t := &Translator{
		target:     strings.TrimSpace(targetLanguage),
		targetCode: codeForLanguage(targetLanguage),
		completer:  completer,
		policy:     retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate returns text in the target language. Text already identified as
// the target language is returned unchanged without any remote call. Long
// bodies are translated in sentence-boundary chunks and rejoined with a
// paragraph separator; titles are always a single call.
func (t *Translator) Translate(ctx context.Context, text string, isTitle bool) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text, nil
	}

	if t.targetCode != "" {
		detected := whatlanggo.LangToString(whatlanggo.Detect(trimmed).Lang)
		if detected == t.targetCode {
			return text, nil
		}
	}

	if isTitle || len(trimmed) <= maxChunkChars {
		out, err := t.translateChunk(ctx, trimmed)
		if err != nil {
			return "", fmt.Errorf("%w: %w", model.ErrTranslationFailed, err)
		}
		return out, nil
	}

	chunks := textutil.PackChunks(textutil.SplitSentences(trimmed), maxChunkChars, " ")
	translated := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		out, err := t.translateChunk(ctx, chunk)
		if err != nil {
			return "", fmt.Errorf("%w: chunk %d/%d: %w", model.ErrTranslationFailed, i+1, len(chunks), err)
		}
		translated = append(translated, out)
	}
	return strings.Join(translated, "\n\n"), nil
}

func (t *Translator) translateChunk(ctx context.Context, chunk string) (string, error) {
	system := fmt.Sprintf(
		"You are a translator. Translate the user's text into %s. Respond with the translation only, no commentary or notes.",
		t.target,
	)

	var result string
	err := t.policy.Do(ctx, func(ctx context.Context) error {
		out, err := t.completer.Complete(ctx, system, chunk)
		if err != nil {
			return err
		}
		if out == "" {
			return fmt.Errorf("empty completion")
		}
		result = out
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}
