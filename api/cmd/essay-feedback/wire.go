package main

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"essay-feedback/api/internal/config"
	"essay-feedback/api/internal/essay"
	"essay-feedback/api/internal/essay/gemini"
	"essay-feedback/api/internal/essay/gpt"
	"essay-feedback/api/internal/essay/languagetool"
	"essay-feedback/api/internal/store"
)

// buildService wires engines, the grammar checker and the optional cache. The
// returned close func releases the database.
func buildService(ctx context.Context, cfg *config.Config, log *zap.Logger) (*essay.Service, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	engines := &essay.Engines{Default: cfg.DefaultEngine}
	if cfg.OpenAIAPIKey != "" {
		engines.OpenAI = gpt.New(gpt.Config{
			APIKey:    cfg.OpenAIAPIKey,
			BaseURL:   cfg.OpenAIBaseURL,
			Model:     cfg.OpenAIModel,
			PromptDir: cfg.PromptDir,
		}, log.Named("gpt"))
	}
	if cfg.GeminiAPIKey != "" {
		engines.Gemini = gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.PromptDir, log.Named("gemini"))
	}

	lt := languagetool.New(languagetool.Config{
		BaseURL:  cfg.LanguageToolURL,
		Language: cfg.LanguageToolLanguage,
		Username: cfg.LanguageToolUsername,
		APIKey:   cfg.LanguageToolAPIKey,
	}, log.Named("languagetool"))

	var (
		grammar essay.GrammarChecker = lt
		db      *sql.DB
	)
	if cfg.DatabaseURL != "" {
		var err error
		db, err = store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo := store.NewGrammarRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		grammar = &essay.CachedChecker{
			Next:     lt,
			Cache:    repo,
			Language: lt.Language(),
			MaxAge:   cfg.GrammarCacheTTL,
			Log:      log.Named("grammar-cache"),
		}
		log.Info("grammar cache enabled", zap.Duration("ttl", cfg.GrammarCacheTTL))
	}

	svc := essay.NewService(engines, grammar, essay.Options{
		RequestTimeout:  cfg.RequestTimeout,
		CritiqueTimeout: cfg.CritiqueTimeout,
	}, log.Named("essay"))

	closeFn := func() {
		if db != nil {
			_ = db.Close()
		}
	}
	return svc, closeFn, nil
}
