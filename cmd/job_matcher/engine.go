package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/embedding"
	"github.com/jonathan/job-matcher/internal/llm"
	"github.com/jonathan/job-matcher/internal/logger"
	"github.com/jonathan/job-matcher/internal/match"
	"github.com/jonathan/job-matcher/internal/scoring"
)

// runtime bundles the long-lived pieces a command needs.
type runtime struct {
	cfg    *config.Config
	log    *zap.Logger
	client llm.Client
	engine *match.Engine
}

// close releases backend resources. Safe to call with a nil client.
func (r *runtime) close() {
	if r.client != nil {
		_ = r.client.Close()
	}
	_ = r.log.Sync()
}

// buildRuntime loads config and wires up the engine. With no API key the
// engine runs entirely on deterministic fallbacks.
func buildRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(flagJSONLogs, flagVerbose || cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	var client llm.Client
	var backend embedding.Backend
	if cfg.APIKey != "" {
		llmConfig := llm.DefaultConfig()
		if cfg.LiteModel != "" {
			llmConfig = llmConfig.WithModel(llm.TierLite, cfg.LiteModel)
		}
		if cfg.StandardModel != "" {
			llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.StandardModel)
		}
		client, err = llm.NewGeminiClient(ctx, llmConfig, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create model client: %w", err)
		}

		backend, err = embedding.NewGeminiBackend(ctx, cfg.APIKey, cfg.EmbeddingModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedding backend: %w", err)
		}
	} else {
		log.Info("no API key configured, running with deterministic fallbacks")
	}

	opts := []match.Option{}
	if cfg.HasWeights() {
		policy := scoring.DefaultPolicy()
		policy.SkillsWeight = cfg.SkillsWeight
		policy.ExperienceWeight = cfg.ExperienceWeight
		policy.EducationWeight = cfg.EducationWeight
		policy.LocationWeight = cfg.LocationWeight
		opts = append(opts, match.WithPolicy(policy))
	}
	if cfg.Timeout() > 0 {
		opts = append(opts, match.WithTimeout(cfg.Timeout()))
	}
	if cfg.Parallelism > 0 {
		opts = append(opts, match.WithParallelism(cfg.Parallelism))
	}

	engine := match.NewEngine(client, embedding.NewEmbedder(backend, log), log, opts...)

	return &runtime{cfg: cfg, log: log, client: client, engine: engine}, nil
}
