package domain

import (
	"github.com/google/uuid"
)

// Direction distinguishes money coming into the platform (payments)
// from money going out (payouts).
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionOutcome Direction = "outcome"
)

// Valid reports whether the direction is one of the two known values.
func (d Direction) Valid() bool {
	return d == DirectionIncome || d == DirectionOutcome
}

// Method is a payment instrument category offered in one direction,
// backed by a single provider.
type Method struct {
	ID            uuid.UUID `json:"id"`
	Alias         string    `json:"alias"`
	Name          string    `json:"name"`
	Direction     Direction `json:"direction"`
	ProviderAlias string    `json:"provider_alias"`

	// Platforms restricts the method to specific client platforms
	// (e.g. "web", "ios", "android"). Empty means available everywhere.
	Platforms []string `json:"platforms,omitempty"`
}

// AvailableOn reports whether the method is offered on the given platform.
// An empty platform hint or an unrestricted method always matches.
func (m *Method) AvailableOn(platform string) bool {
	if platform == "" || len(m.Platforms) == 0 {
		return true
	}
	for _, p := range m.Platforms {
		if p == platform {
			return true
		}
	}
	return false
}

// MethodCompany ties a Method, a Company and a provider alias together for
// one direction. It is the unit returned by resolution and attached to every
// transaction.
type MethodCompany struct {
	ID            uuid.UUID `json:"id"`
	CompanyAlias  string    `json:"company_alias"`
	MethodAlias   string    `json:"method_alias"`
	ProviderAlias string    `json:"provider_alias"`
	Direction     Direction `json:"direction"`
}
