package matching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aidmatch/trust-engine/internal/preferences"
	"github.com/aidmatch/trust-engine/internal/providers"
	"github.com/aidmatch/trust-engine/pkg/common"
	"github.com/aidmatch/trust-engine/pkg/database"
	"github.com/aidmatch/trust-engine/pkg/logger"
	"github.com/aidmatch/trust-engine/pkg/resilience"
	"github.com/aidmatch/trust-engine/pkg/tracing"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const cacheNamespace = "suggest"

// Service loads snapshots from the upstream stores and ranks providers
type Service struct {
	ranker        *Ranker
	providerRepo  providers.RepositoryInterface
	profileRepo   preferences.RepositoryInterface
	recipientRepo RepositoryInterface
	cache         ResultCache
	retry         resilience.RetryConfig
	defaultTopN   int
	maxTopN       int
}

// NewService creates a matching service. The repositories may be nil when no
// snapshot store is configured; only inline requests are served then.
func NewService(ranker *Ranker, providerRepo providers.RepositoryInterface, profileRepo preferences.RepositoryInterface, recipientRepo RepositoryInterface) *Service {
	if ranker == nil {
		ranker = NewRanker(nil)
	}
	return &Service{
		ranker:        ranker,
		providerRepo:  providerRepo,
		profileRepo:   profileRepo,
		recipientRepo: recipientRepo,
		retry:         database.ReadRetryConfig(),
		defaultTopN:   5,
		maxTopN:       50,
	}
}

// WithCache enables the snapshot-keyed result cache
func (s *Service) WithCache(cache ResultCache) *Service {
	s.cache = cache
	return s
}

// WithRetry sets the retry policy for snapshot store reads
func (s *Service) WithRetry(cfg resilience.RetryConfig) *Service {
	s.retry = cfg
	return s
}

// WithTopNLimits sets the default and maximum number of suggestions
func (s *Service) WithTopNLimits(defaultTopN, maxTopN int) *Service {
	s.defaultTopN = defaultTopN
	s.maxTopN = maxTopN
	return s
}

// cacheInput is the exact snapshot a ranking depends on
type cacheInput struct {
	Beneficiary Beneficiary          `json:"beneficiary"`
	Providers   []providers.Provider `json:"providers"`
	Preferences *preferences.Profile `json:"preferences"`
	TopN        int                  `json:"top_n"`
}

// Suggest ranks an inline snapshot
func (s *Service) Suggest(ctx context.Context, req *SuggestRequest) (*RankResult, error) {
	return s.rank(ctx, "inline", cacheInput{
		Beneficiary: req.Beneficiary,
		Providers:   req.Providers,
		Preferences: req.Preferences,
		TopN:        s.normalizeTopN(req.TopN),
	})
}

// SuggestForBeneficiary loads the beneficiary, their preference profile and
// the provider directory, then ranks providers for them.
func (s *Service) SuggestForBeneficiary(ctx context.Context, beneficiaryID string, topN int) (*RankResult, error) {
	if s.providerRepo == nil || s.profileRepo == nil || s.recipientRepo == nil {
		return nil, common.NewServiceUnavailableError("snapshot stores are not configured")
	}

	ctx, span := tracing.Tracer("matching").Start(ctx, "matching.LoadSnapshot")
	span.SetAttributes(attribute.String("beneficiary.id", beneficiaryID))

	beneficiary, err := resilience.Retry(ctx, "load beneficiary", s.retry, func(ctx context.Context) (*Beneficiary, error) {
		return s.recipientRepo.GetBeneficiary(ctx, beneficiaryID)
	})
	if err != nil {
		span.End()
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("beneficiary not found", err)
		}
		return nil, fmt.Errorf("load beneficiary %s: %w", beneficiaryID, err)
	}

	var (
		profile    *preferences.Profile
		candidates []providers.Provider
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = resilience.Retry(gctx, "load preference profile", s.retry, func(ctx context.Context) (*preferences.Profile, error) {
			return s.profileRepo.GetProfile(ctx, beneficiaryID)
		})
		if err != nil {
			return fmt.Errorf("load preference profile %s: %w", beneficiaryID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		candidates, err = resilience.Retry(gctx, "load provider directory", s.retry, s.providerRepo.ListProviders)
		if err != nil {
			return fmt.Errorf("load provider directory: %w", err)
		}
		return nil
	})
	err = g.Wait()
	span.SetAttributes(attribute.Int("providers.count", len(candidates)))
	span.End()
	if err != nil {
		return nil, err
	}

	return s.rank(ctx, "stored", cacheInput{
		Beneficiary: *beneficiary,
		Providers:   candidates,
		Preferences: profile,
		TopN:        s.normalizeTopN(topN),
	})
}

func (s *Service) rank(ctx context.Context, source string, in cacheInput) (*RankResult, error) {
	ctx, span := tracing.Tracer("matching").Start(ctx, "matching.Rank")
	defer span.End()
	span.SetAttributes(
		attribute.String("source", source),
		attribute.Int("providers.count", len(in.Providers)),
		attribute.Int("top_n", in.TopN),
	)

	log := logger.WithContext(ctx)

	if s.cache != nil {
		var cached RankResult
		hit, err := s.cache.Get(ctx, cacheNamespace, in, &cached)
		if err != nil {
			log.Warn("suggestion cache unavailable, recomputing", zap.Error(err))
		} else if hit {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return &cached, nil
		}
	}

	start := time.Now()
	result := s.ranker.Rank(in.Beneficiary, in.Providers, in.Preferences, in.TopN)
	rankDuration.Observe(time.Since(start).Seconds())
	recordRankResult(source, result)

	log.Debug("ranked providers",
		zap.String("source", source),
		zap.String("need_category", in.Beneficiary.NeedCategory),
		zap.String("region", in.Beneficiary.Location.Region),
		zap.Int("candidates", len(in.Providers)),
		zap.Int("ranked", result.Ranked),
		zap.Int("returned", len(result.Suggestions)),
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheNamespace, in, result); err != nil {
			log.Warn("failed to cache suggestions", zap.Error(err))
		}
	}

	return result, nil
}

// normalizeTopN maps an unspecified (zero) count to the default and caps it at the maximum
func (s *Service) normalizeTopN(topN int) int {
	if topN == 0 {
		topN = s.defaultTopN
	}
	if topN > s.maxTopN {
		topN = s.maxTopN
	}
	return topN
}
