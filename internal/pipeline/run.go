package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"readcast/internal/model"
)

// Run executes one full discovery-through-commit pass. Item failures are
// isolated: logged, the item skipped for this run, retried next run because
// it never entered the episode map. Only a failed discovery aborts the run.
func (o *Orchestrator) Run(ctx context.Context) error {
	items, err := o.discover(ctx)
	if err != nil {
		return err
	}

	pending := make([]model.SourceItem, 0, len(items))
	for _, it := range items {
		if !o.store.IsProcessed(it.ID) {
			pending = append(pending, it)
		}
	}

	slog.Info("run discovered items", "total", len(items), "new", len(pending))
	if len(pending) == 0 {
		if err := o.store.TouchLastRun(); err != nil {
			slog.Error("failed to record run time", "error", err)
		}
		return nil
	}

	g := new(errgroup.Group)
	g.SetLimit(o.concurrency)
	for _, it := range pending {
		item := it
		g.Go(func() error {
			if err := o.processItem(ctx, item); err != nil {
				slog.Error("item failed, will retry next run", "item_id", item.ID, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait() // drain: workers never propagate errors

	if err := o.store.TouchLastRun(); err != nil {
		slog.Error("failed to record run time", "error", err)
	}
	return nil
}

// discover lists candidate items: everything when no tags are configured,
// otherwise the union of items matching any configured tag, deduplicated
// by ID. The result is sorted by ID so logs and dispatch order are stable
// across runs.
func (o *Orchestrator) discover(ctx context.Context) ([]model.SourceItem, error) {
	if len(o.tags) == 0 {
		items, err := o.source.List(ctx, "")
		if err != nil {
			return nil, err
		}
		model.SortItemsByID(items)
		return items, nil
	}

	var all []model.SourceItem
	for _, tag := range o.tags {
		items, err := o.source.List(ctx, tag)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			// Providers are not trusted to honor the tag parameter: an item
			// whose own tags contradict the filter is dropped here.
			if len(it.Tags) > 0 && !it.HasTag(tag) {
				continue
			}
			all = append(all, it)
		}
	}
	items := model.DedupeItems(all)
	model.SortItemsByID(items)
	return items, nil
}

// processItem drives a single item through the full pipeline and commits the
// resulting episode. Any step's failure aborts just this item.
func (o *Orchestrator) processItem(ctx context.Context, item model.SourceItem) error {
	slog.Info("processing item", "item_id", item.ID, "title", item.Title)

	raw, err := o.source.FetchContent(ctx, item.ID)
	if err != nil {
		return err
	}

	article, err := o.extractor.Extract(item, raw)
	if err != nil {
		return err
	}

	title, body := article.Title, article.Body
	if o.translator != nil {
		if title, err = o.translator.Translate(ctx, article.Title, true); err != nil {
			return err
		}
		if body, err = o.translator.Translate(ctx, article.Body, false); err != nil {
			return err
		}
	}

	// Rebuild the spoken intro with the translated title so the announcement
	// matches the language of the rest of the audio.
	spoken := model.ExtractedArticle{
		ID:           article.ID,
		Title:        title,
		SourceName:   article.SourceName,
		Body:         body,
		Announcement: o.announce(article.SourceName, title),
	}

	result, err := o.synthesizer.Synthesize(ctx, spoken.FullText(), item.ID, title)
	if err != nil {
		return err
	}

	episode := model.Episode{
		ID:              item.ID,
		Title:           title,
		Source:          article.SourceName,
		AudioRef:        result.AudioRef,
		DurationSeconds: result.DurationSeconds,
		PublishedAt:     o.now().UTC(),
	}
	if err := o.store.Commit(episode); err != nil {
		return err
	}

	slog.Info("episode committed",
		"item_id", item.ID,
		"audio_ref", result.AudioRef,
		"duration_seconds", result.DurationSeconds,
	)
	return nil
}
