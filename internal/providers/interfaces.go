package providers

import "context"

// RepositoryInterface defines the read operations on the provider directory
type RepositoryInterface interface {
	ListProviders(ctx context.Context) ([]Provider, error)
	GetProvider(ctx context.Context, id string) (*Provider, error)
}
