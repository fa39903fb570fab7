package fraud

import (
	"context"
)

// Graph is the stored node and connection set read from one snapshot
type Graph struct {
	Nodes       []FraudNode
	Connections []FraudConnection
}

// RepositoryInterface defines the read operations on the compliance graph store
type RepositoryInterface interface {
	LoadGraph(ctx context.Context) (*Graph, error)
}

// ResultCache stores analysis results keyed by their input snapshot
type ResultCache interface {
	Get(ctx context.Context, namespace string, input interface{}, out interface{}) (bool, error)
	Set(ctx context.Context, namespace string, input interface{}, value interface{}) error
}
