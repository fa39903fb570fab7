package fraud

import (
	"context"
	"fmt"
	"time"

	"github.com/aidmatch/trust-engine/pkg/common"
	"github.com/aidmatch/trust-engine/pkg/database"
	"github.com/aidmatch/trust-engine/pkg/eventbus"
	"github.com/aidmatch/trust-engine/pkg/logger"
	"github.com/aidmatch/trust-engine/pkg/resilience"
	"github.com/aidmatch/trust-engine/pkg/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	cacheNamespace = "fraud"

	// DefaultRingSubject is the subject ring alerts are published on
	DefaultRingSubject = "fraud.rings.detected"
)

// Service runs network analyses over inline or stored graph snapshots
type Service struct {
	repo      RepositoryInterface
	cache     ResultCache
	publisher eventbus.Publisher
	subject   string
	retry     resilience.RetryConfig
	now       func() time.Time
}

// NewService creates a fraud analysis service. repo may be nil when no graph
// store is configured; only inline analyses are served then.
func NewService(repo RepositoryInterface) *Service {
	return &Service{
		repo:      repo,
		publisher: eventbus.NoopPublisher{},
		subject:   DefaultRingSubject,
		retry:     database.ReadRetryConfig(),
		now:       time.Now,
	}
}

// WithCache enables the snapshot-keyed result cache
func (s *Service) WithCache(cache ResultCache) *Service {
	s.cache = cache
	return s
}

// WithRetry sets the retry policy for graph store reads
func (s *Service) WithRetry(cfg resilience.RetryConfig) *Service {
	s.retry = cfg
	return s
}

// WithPublisher sets where ring alerts are sent
func (s *Service) WithPublisher(publisher eventbus.Publisher, subject string) *Service {
	if publisher != nil {
		s.publisher = publisher
	}
	if subject != "" {
		s.subject = subject
	}
	return s
}

type snapshot struct {
	Nodes       []FraudNode       `json:"nodes"`
	Connections []FraudConnection `json:"connections"`
}

// Analyze analyzes an inline graph snapshot. No alert is published.
func (s *Service) Analyze(ctx context.Context, req *AnalyzeRequest) (*NetworkAnalysis, error) {
	analysis, _ := s.analyze(ctx, "inline", snapshot{Nodes: req.Nodes, Connections: req.Connections})
	return analysis, nil
}

// AnalyzeNetwork analyzes the stored graph and publishes a ring alert when
// ring members are found.
func (s *Service) AnalyzeNetwork(ctx context.Context) (*NetworkAnalysis, error) {
	if s.repo == nil {
		return nil, common.NewServiceUnavailableError("fraud graph store is not configured")
	}

	graph, err := resilience.Retry(ctx, "load fraud graph", s.retry, s.repo.LoadGraph)
	if err != nil {
		return nil, fmt.Errorf("load fraud graph: %w", err)
	}

	analysis, fresh := s.analyze(ctx, "stored", snapshot{Nodes: graph.Nodes, Connections: graph.Connections})
	if fresh && len(analysis.RingMembers) > 0 {
		s.publishRingAlert(ctx, analysis)
	}

	return analysis, nil
}

// analyze returns the analysis and whether it was computed rather than served from cache
func (s *Service) analyze(ctx context.Context, source string, in snapshot) (*NetworkAnalysis, bool) {
	ctx, span := tracing.Tracer("fraud").Start(ctx, "fraud.Analyze")
	defer span.End()
	span.SetAttributes(
		attribute.String("source", source),
		attribute.Int("nodes.count", len(in.Nodes)),
		attribute.Int("connections.count", len(in.Connections)),
	)

	log := logger.WithContext(ctx)

	if s.cache != nil {
		var cached NetworkAnalysis
		hit, err := s.cache.Get(ctx, cacheNamespace, in, &cached)
		if err != nil {
			log.Warn("analysis cache unavailable, recomputing", zap.Error(err))
		} else if hit {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return &cached, false
		}
	}

	start := time.Now()
	analysis := Analyze(in.Nodes, in.Connections)
	analysisDuration.Observe(time.Since(start).Seconds())
	recordAnalysis(source, analysis)

	for _, w := range analysis.Warnings {
		log.Warn("fraud graph inconsistency", zap.String("source", source), zap.String("warning", w))
	}

	log.Info("fraud network analyzed",
		zap.String("source", source),
		zap.Int("nodes", len(in.Nodes)),
		zap.Int("connections", analysis.TotalConnections),
		zap.Int("dropped_connections", len(analysis.DroppedConnections)),
		zap.Int("ring_members", len(analysis.RingMembers)),
		zap.Int("clusters", len(analysis.Clusters)),
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheNamespace, in, analysis); err != nil {
			log.Warn("failed to cache fraud analysis", zap.Error(err))
		}
	}

	return analysis, true
}

// publishRingAlert is best effort; a failed publish is logged and counted
func (s *Service) publishRingAlert(ctx context.Context, analysis *NetworkAnalysis) {
	memberIDs := make([]string, 0, len(analysis.RingMembers))
	for _, m := range analysis.RingMembers {
		memberIDs = append(memberIDs, m.ID)
	}

	alert := RingAlert{
		ID:          uuid.New(),
		DetectedAt:  s.now().UTC(),
		MemberIDs:   memberIDs,
		Clusters:    analysis.Clusters,
		HighestRisk: analysis.HighestRiskNode,
	}

	log := logger.WithContext(ctx)
	if err := s.publisher.Publish(ctx, s.subject, alert); err != nil {
		ringAlertsPublished.WithLabelValues("failed").Inc()
		log.Error("failed to publish ring alert",
			zap.String("alert_id", alert.ID.String()),
			zap.Error(err),
		)
		return
	}

	ringAlertsPublished.WithLabelValues("published").Inc()
	log.Info("ring alert published",
		zap.String("alert_id", alert.ID.String()),
		zap.String("subject", s.subject),
		zap.Strings("member_ids", memberIDs),
	)
}
