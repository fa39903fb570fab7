package helpers

import (
	"context"
	"sync"

	"github.com/aidmatch/trust-engine/internal/fraud"
	"github.com/aidmatch/trust-engine/internal/matching"
	"github.com/aidmatch/trust-engine/internal/preferences"
	"github.com/aidmatch/trust-engine/internal/providers"
	"github.com/jackc/pgx/v5"
)

// MemoryStore is an in-memory stand-in for the upstream snapshot stores.
// It implements every repository interface the engine reads through.
type MemoryStore struct {
	mu            sync.RWMutex
	providers     []providers.Provider
	beneficiaries map[string]*matching.Beneficiary
	profiles      map[string]*preferences.Profile
	nodes         []fraud.FraudNode
	connections   []fraud.FraudConnection
}

var (
	_ providers.RepositoryInterface   = (*MemoryStore)(nil)
	_ preferences.RepositoryInterface = (*MemoryStore)(nil)
	_ matching.RepositoryInterface    = (*MemoryStore)(nil)
	_ fraud.RepositoryInterface       = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		beneficiaries: make(map[string]*matching.Beneficiary),
		profiles:      make(map[string]*preferences.Profile),
	}
}

// SetProviders replaces the provider directory
func (s *MemoryStore) SetProviders(list []providers.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers = append([]providers.Provider(nil), list...)
}

// PutBeneficiary stores a beneficiary and, when profile is non-nil, their preferences
func (s *MemoryStore) PutBeneficiary(b *matching.Beneficiary, profile *preferences.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beneficiaries[b.ID] = b
	if profile != nil {
		s.profiles[b.ID] = profile
	}
}

// SetGraph replaces the fraud graph
func (s *MemoryStore) SetGraph(nodes []fraud.FraudNode, connections []fraud.FraudConnection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = append([]fraud.FraudNode(nil), nodes...)
	s.connections = append([]fraud.FraudConnection(nil), connections...)
}

func (s *MemoryStore) ListProviders(_ context.Context) ([]providers.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]providers.Provider(nil), s.providers...), nil
}

func (s *MemoryStore) GetProvider(_ context.Context, id string) (*providers.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.providers {
		if s.providers[i].ID == id {
			p := s.providers[i]
			return &p, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *MemoryStore) GetBeneficiary(_ context.Context, id string) (*matching.Beneficiary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.beneficiaries[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *b
	return &copied, nil
}

func (s *MemoryStore) GetProfile(_ context.Context, beneficiaryID string) (*preferences.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.profiles[beneficiaryID]; ok {
		copied := *p
		return &copied, nil
	}
	return &preferences.Profile{BeneficiaryID: beneficiaryID}, nil
}

func (s *MemoryStore) LoadGraph(_ context.Context) (*fraud.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &fraud.Graph{
		Nodes:       append([]fraud.FraudNode(nil), s.nodes...),
		Connections: append([]fraud.FraudConnection(nil), s.connections...),
	}, nil
}

// RecordingPublisher captures published events
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent is one captured publish call
type PublishedEvent struct {
	Subject string
	Event   interface{}
}

// Publish implements eventbus.Publisher
func (p *RecordingPublisher) Publish(_ context.Context, subject string, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, PublishedEvent{Subject: subject, Event: event})
	return nil
}

// Count returns how many events were published
func (p *RecordingPublisher) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Events)
}
