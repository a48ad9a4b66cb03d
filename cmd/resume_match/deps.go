package main

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/analysis"
	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/labeling"
	"github.com/jonathan/resume-matcher/internal/learning"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/localstore"
)

// exampleStore is implemented by both the PostgreSQL and the SQLite store.
type exampleStore interface {
	learning.ExampleStore
	labeling.ExampleWriter
}

// cleanup collects release functions and runs them in reverse order.
type cleanup []func()

func (c *cleanup) add(fn func()) { *c = append(*c, fn) }

func (c cleanup) run() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// openStore opens PostgreSQL when a database URL is configured, otherwise the
// local SQLite file.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (exampleStore, func(), error) {
	if cfg.UsePostgres() {
		pg, err := db.Connect(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}

	path := cfg.SQLitePath
	if path == "" {
		path = localstore.DefaultPath()
	}
	st, err := localstore.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	st.WithLogger(log)
	log.Debug("opened local example store", zap.String("path", path))
	return st, func() { _ = st.Close() }, nil
}

// newEmbedder builds the configured provider behind the memory cache, plus
// Redis when REDIS_URL is set. An unreachable Redis only disables L2.
func newEmbedder(ctx context.Context, cfg *config.Config, log *zap.Logger) (embedding.Embedder, func(), error) {
	inner, err := embedding.New(ctx, embedding.ProviderConfig{
		Provider: cfg.EmbeddingProvider,
		APIKey:   cfg.APIKey(cfg.EmbeddingProvider),
		Model:    cfg.EmbeddingModel,
		BaseURL:  openAIBaseURL(cfg, cfg.EmbeddingProvider),
	})
	if err != nil {
		return nil, nil, err
	}

	opts := embedding.CacheOptions{Logger: log}
	release := func() {}
	if cfg.RedisURL != "" {
		rdb, err := embedding.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, embedding cache is memory only", zap.Error(err))
		} else {
			opts.Redis = rdb
			release = func() { _ = rdb.Close() }
		}
	}
	return embedding.NewCachedEmbedder(inner, opts), release, nil
}

func newLLM(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	llmCfg := llm.ConfigFor(cfg.LLMProvider)
	llmCfg.BaseURL = openAIBaseURL(cfg, cfg.LLMProvider)
	return llm.NewClient(ctx, llmCfg, cfg.APIKey(cfg.LLMProvider))
}

func openAIBaseURL(cfg *config.Config, provider string) string {
	if strings.EqualFold(provider, embedding.ProviderOpenAI) {
		return cfg.OpenAIBaseURL
	}
	return ""
}

// serviceNeeds selects the optional collaborators of an analysis.Service.
type serviceNeeds struct {
	Embedder bool
	Store    bool
	LLM      bool
}

// services is what a command gets back from buildServices.
type services struct {
	Analysis *analysis.Service
	Embedder embedding.Embedder
	Store    exampleStore
}

// buildServices wires an analysis.Service with only the collaborators a
// command needs. Store implies Embedder.
func buildServices(ctx context.Context, needs serviceNeeds) (*services, func(), error) {
	var done cleanup
	deps := analysis.Dependencies{Logger: appLogger}
	out := &services{}

	if needs.Embedder || needs.Store {
		emb, release, err := newEmbedder(ctx, appConfig, appLogger)
		if err != nil {
			return nil, nil, err
		}
		done.add(release)
		deps.Embedder = emb
		out.Embedder = emb
	}
	if needs.Store {
		st, release, err := openStore(ctx, appConfig, appLogger)
		if err != nil {
			done.run()
			return nil, nil, err
		}
		done.add(release)
		deps.Store = st
		out.Store = st
	}
	if needs.LLM {
		client, err := newLLM(ctx, appConfig)
		if err != nil {
			done.run()
			return nil, nil, err
		}
		done.add(func() { _ = client.Close() })
		deps.LLM = client
	}

	out.Analysis = analysis.NewService(deps)
	return out, done.run, nil
}
