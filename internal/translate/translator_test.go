package translate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readcast/internal/model"
	"readcast/internal/retry"
)

// fakeCompleter records every call and replies per a script.
type fakeCompleter struct {
	calls   []string
	systems []string
	reply   func(call int, user string) (string, error)
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.systems = append(f.systems, system)
	f.calls = append(f.calls, user)
	return f.reply(len(f.calls), user)
}

func echoCompleter() *fakeCompleter {
	return &fakeCompleter{reply: func(_ int, user string) (string, error) {
		return "[de] " + user, nil
	}}
}

func noSleep() retry.Policy {
	return retry.Policy{Attempts: 3, BaseDelay: time.Second, Sleep: func(time.Duration) {}}
}

const englishText = "The quick brown fox jumps over the lazy dog. " +
	"It was the best of times, it was the worst of times. " +
	"All the world is a stage and the people merely players."

func TestTranslate_SkipsTextAlreadyInTargetLanguage(t *testing.T) {
	fake := echoCompleter()
	tr := New("English", fake)

	got, err := tr.Translate(context.Background(), englishText, false)
	require.NoError(t, err)
	assert.Equal(t, englishText, got, "text already in the target language passes through unchanged")
	assert.Empty(t, fake.calls, "no remote call when the language already matches")
}

func TestTranslate_UnknownTargetNeverSkips(t *testing.T) {
	fake := echoCompleter()
	tr := New("Klingon", fake)

	got, err := tr.Translate(context.Background(), englishText, false)
	require.NoError(t, err)
	assert.Equal(t, "[de] "+englishText, got)
	require.Len(t, fake.calls, 1)
	assert.Contains(t, fake.systems[0], "Klingon")
}

func TestTranslate_TitleIsSingleCall(t *testing.T) {
	fake := echoCompleter()
	tr := New("German", fake)

	got, err := tr.Translate(context.Background(), "A Guide to Pointers", true)
	require.NoError(t, err)
	assert.Equal(t, "[de] A Guide to Pointers", got)
	assert.Len(t, fake.calls, 1)
}

func TestTranslate_EmptyTextPassesThrough(t *testing.T) {
	fake := echoCompleter()
	tr := New("German", fake)

	got, err := tr.Translate(context.Background(), "   ", false)
	require.NoError(t, err)
	assert.Equal(t, "   ", got)
	assert.Empty(t, fake.calls)
}

func TestTranslate_LongBodyIsChunked(t *testing.T) {
	// ~50 chars per sentence, 120 sentences: about 6000 chars, so at least
	// two chunks under the 4000-char ceiling.
	sentence := "The quick brown fox jumps over the lazy old dog. "
	body := strings.Repeat(sentence, 120)

	fake := echoCompleter()
	tr := New("German", fake)

	got, err := tr.Translate(context.Background(), body, false)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(fake.calls), 2, "a body over the chunk limit needs multiple calls")
	for _, chunk := range fake.calls {
		assert.LessOrEqual(t, len(chunk), maxChunkChars)
	}

	// Chunk results are rejoined in order with a paragraph separator.
	parts := strings.Split(got, "\n\n")
	require.Len(t, parts, len(fake.calls))
	for i, part := range parts {
		assert.Equal(t, "[de] "+fake.calls[i], part)
	}
}

func TestTranslate_RetriesTransientFailures(t *testing.T) {
	var slept []time.Duration
	fake := &fakeCompleter{reply: func(call int, user string) (string, error) {
		if call < 3 {
			return "", errors.New("upstream flake")
		}
		return "done", nil
	}}
	tr := New("German", fake, WithRetryPolicy(retry.Policy{
		Attempts:  3,
		BaseDelay: time.Second,
		Sleep:     func(d time.Duration) { slept = append(slept, d) },
	}))

	got, err := tr.Translate(context.Background(), "Short text", false)
	require.NoError(t, err)
	assert.Equal(t, "done", got)
	assert.Len(t, fake.calls, 3)
	require.Len(t, slept, 2)
	assert.Equal(t, time.Second, slept[0])
	assert.Equal(t, 2*time.Second, slept[1])
}

func TestTranslate_ExhaustedRetriesFail(t *testing.T) {
	fake := &fakeCompleter{reply: func(int, string) (string, error) {
		return "", errors.New("upstream down")
	}}
	tr := New("German", fake, WithRetryPolicy(noSleep()))

	_, err := tr.Translate(context.Background(), "Short text", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrTranslationFailed))
	assert.Len(t, fake.calls, 3)
}

func TestTranslate_EmptyCompletionIsAFailure(t *testing.T) {
	fake := &fakeCompleter{reply: func(int, string) (string, error) {
		return "", nil
	}}
	tr := New("German", fake, WithRetryPolicy(noSleep()))

	_, err := tr.Translate(context.Background(), "Short text", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrTranslationFailed))
}

func TestCodeForLanguage(t *testing.T) {
	assert.Equal(t, "deu", codeForLanguage("German"))
	assert.Equal(t, "deu", codeForLanguage("  german "))
	assert.Equal(t, "cmn", codeForLanguage("Mandarin"))
	assert.Equal(t, "", codeForLanguage("Klingon"))
}
