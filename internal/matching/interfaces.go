package matching

import "context"

// RepositoryInterface defines the read operations on the beneficiary profile store
type RepositoryInterface interface {
	GetBeneficiary(ctx context.Context, id string) (*Beneficiary, error)
}

// ResultCache stores ranking results keyed by their input snapshot
type ResultCache interface {
	Get(ctx context.Context, namespace string, input interface{}, out interface{}) (bool, error)
	Set(ctx context.Context, namespace string, input interface{}, value interface{}) error
}
