package providers

// OrganizationSize describes how large a provider organization is
type OrganizationSize string

const (
	SizeSmall  OrganizationSize = "small"
	SizeMedium OrganizationSize = "medium"
	SizeLarge  OrganizationSize = "large"
)

// ProviderStatus is the compliance status assigned by the directory
type ProviderStatus string

const (
	StatusActive    ProviderStatus = "active"
	StatusWatchlist ProviderStatus = "watchlist"
	StatusSuspended ProviderStatus = "suspended"
)

// ProviderType is the kind of organization a provider is
type ProviderType string

const (
	TypeNGO        ProviderType = "ngo"
	TypeCommunity  ProviderType = "community"
	TypeGovernment ProviderType = "government"
	TypeFaithBased ProviderType = "faith_based"
	TypePrivate    ProviderType = "private"
)

// Provider is a read-only snapshot of an aid provider from the directory
type Provider struct {
	ID               string           `json:"id" validate:"required,notblank"`
	Name             string           `json:"name,omitempty"`
	TrustScore       int              `json:"trust_score"`
	Type             ProviderType     `json:"type,omitempty" validate:"omitempty,oneof=ngo community government faith_based private"`
	Specialization   []string         `json:"specialization"`
	GeographicFocus  []string         `json:"geographic_focus"`
	OrganizationSize OrganizationSize `json:"organization_size" validate:"omitempty,oneof=small medium large"`
	Status           ProviderStatus   `json:"status" validate:"required,oneof=active watchlist suspended"`
}

// Specializes reports whether the provider covers a need category
func (p *Provider) Specializes(need string) bool {
	return contains(p.Specialization, need)
}

// Serves reports whether a region is in the provider's geographic focus
func (p *Provider) Serves(region string) bool {
	return contains(p.GeographicFocus, region)
}

// IsActive reports whether the provider may receive new requests
func (p *Provider) IsActive() bool {
	return p.Status == StatusActive
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
