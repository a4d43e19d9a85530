package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"readcast/internal/api"
	"readcast/internal/config"
	"readcast/internal/extract"
	"readcast/internal/feed"
	"readcast/internal/pipeline"
	"readcast/internal/scheduler"
	"readcast/internal/source"
	"readcast/internal/store"
	"readcast/internal/synth"
	"readcast/internal/translate"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	st := store.New(cfg.StatePath())
	src := source.NewHTTPClient(cfg.SourceAPIURL, cfg.SourceToken)

	var translator pipeline.Translator
	if cfg.TranslationEnabled() {
		slog.Info("translation enabled", "target_language", cfg.TargetLanguage)
		completer := translate.NewCompletionClient(
			cfg.CompletionsURL,
			cfg.CompletionsAPIKey,
			cfg.CompletionsModel,
			translate.WithTimeout(cfg.TranslateTimeout),
		)
		translator = translate.New(cfg.TargetLanguage, completer)
	}

	engine, err := synth.NewCommandEngine(cfg.TTSCommand, synth.VoiceParams{
		Voice: cfg.TTSVoice,
		Rate:  cfg.TTSRate,
		Pitch: cfg.TTSPitch,
	}, cfg.SynthTimeout)
	if err != nil {
		log.Fatalf("synthesis engine: %v", err)
	}

	orchestrator := pipeline.New(pipeline.Deps{
		Source:      src,
		Extractor:   extract.New(),
		Translator:  translator,
		Synthesizer: synth.New(engine, cfg.AudioDir()),
		Store:       st,
		Announce:    extract.Announcement,
		Tags:        cfg.SourceTags,
		Concurrency: cfg.Concurrency,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(orchestrator, st, cfg.Schedule)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	defer sched.Stop()

	fb := feed.New(cfg.FeedTitle, "Saved articles, read aloud", cfg.FeedBaseURL)
	srv := api.New(st, sched, fb, cfg.AudioDir())
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Handler(),
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		slog.Info("shutting down")
		cancel()
		httpServer.Shutdown(context.Background())
	}()

	fmt.Printf("readcast server listening on http://localhost:%s\n", cfg.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
