// Package synth is the speech synthesis gateway: it chunks long text, renders
// each chunk through an isolated engine process, concatenates the segments,
// and names the final audio artifact.
package synth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"readcast/internal/model"
	"readcast/internal/textutil"
)

// maxChunkChars is the largest text the engine is handed in one call.
const maxChunkChars = 3000

// BytesPerSecond is the assumed constant encoding rate (128 kbps MP3).
// Episode duration is audio size divided by this constant, a deliberate
// approximation with no decode step; 192000 bytes comes out as 12 seconds.
// The feed derives enclosure lengths from the same constant so the two
// figures never disagree.
const BytesPerSecond = 16000

// Result describes one synthesized audio artifact.
type Result struct {
	// AudioRef is the artifact's filename within the audio directory.
	AudioRef        string
	DurationSeconds int
}

// Synthesizer renders spoken audio into the audio directory.
type Synthesizer struct {
	engine   Engine
	audioDir string
}

// New creates a synthesizer writing artifacts into audioDir.
func New(engine Engine, audioDir string) *Synthesizer {
	return &Synthesizer{engine: engine, audioDir: audioDir}
}

// Synthesize renders text into a single audio file named from the item ID
// and a slug of the title. Text above the chunk limit is split at paragraph
// boundaries (sentence boundaries for oversized paragraphs), each chunk
// rendered to its own segment, and the segments concatenated in order.
// Per-chunk temp artifacts are removed best-effort either way.
func (s *Synthesizer) Synthesize(ctx context.Context, text, id, title string) (Result, error) {
	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("%w: create audio dir: %w", model.ErrSynthesisFailed, err)
	}

	name := id
	if slug := textutil.Slug(title); slug != "" {
		name += "-" + slug
	}
	name += ".mp3"
	finalPath := filepath.Join(s.audioDir, name)

	chunks := buildChunks(text)
	if len(chunks) == 0 {
		return Result{}, fmt.Errorf("%w: nothing to synthesize", model.ErrSynthesisFailed)
	}

	segments := make([]string, 0, len(chunks))
	defer func() {
		for _, seg := range segments {
			if err := os.Remove(seg); err != nil && !os.IsNotExist(err) {
				slog.Debug("segment cleanup failed", "path", seg, "error", err)
			}
		}
	}()

	for i, chunk := range chunks {
		seg := filepath.Join(os.TempDir(), fmt.Sprintf("readcast-seg-%s.mp3", uuid.NewString()))
		segments = append(segments, seg)
		if err := s.engine.Render(ctx, chunk, seg); err != nil {
			return Result{}, fmt.Errorf("%w: chunk %d/%d: %w", model.ErrSynthesisFailed, i+1, len(chunks), err)
		}
	}

	size, err := concat(segments, finalPath)
	if err != nil {
		os.Remove(finalPath)
		return Result{}, fmt.Errorf("%w: %w", model.ErrSynthesisFailed, err)
	}

	return Result{
		AudioRef:        name,
		DurationSeconds: int(size / BytesPerSecond),
	}, nil
}

// buildChunks splits text for the engine: paragraphs packed up to the chunk
// limit, with any paragraph still too long split at sentence boundaries.
func buildChunks(text string) []string {
	paragraphs := textutil.SplitParagraphs(text)
	pieces := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if len(p) > maxChunkChars {
			pieces = append(pieces, textutil.PackChunks(textutil.SplitSentences(p), maxChunkChars, " ")...)
			continue
		}
		pieces = append(pieces, p)
	}
	return textutil.PackChunks(pieces, maxChunkChars, "\n\n")
}

// concat appends the segment files in order into dst and returns dst's size.
func concat(segments []string, dst string) (int64, error) {
	out, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("create audio file: %w", err)
	}
	defer out.Close()

	var total int64
	for _, seg := range segments {
		in, err := os.Open(seg)
		if err != nil {
			return 0, fmt.Errorf("open segment: %w", err)
		}
		n, err := io.Copy(out, in)
		in.Close()
		if err != nil {
			return 0, fmt.Errorf("append segment: %w", err)
		}
		total += n
	}
	if err := out.Sync(); err != nil {
		return 0, fmt.Errorf("sync audio file: %w", err)
	}
	return total, nil
}
