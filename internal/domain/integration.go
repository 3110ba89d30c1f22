package domain

// Integration actions used as rule-matching criteria when resolving a
// provider configuration.
const (
	ActionPayment    = "payment"
	ActionPayout     = "payout"
	ActionBind       = "bind"
	ActionCardUnbind = "card_unbind"
)

// IntegrationConfig holds the provider credentials and parameters selected
// by rule matching. The config is owned by the rule engine; transactions
// reference it but never mutate it.
type IntegrationConfig struct {
	Name          string            `json:"name"`
	Action        string            `json:"action"`
	CompanyAlias  string            `json:"company_alias"`
	ProviderAlias string            `json:"provider_alias"`

	// Terminal uniquely names the provider endpoint/account this
	// configuration points at. It is recorded in metrics for attribution.
	Terminal string `json:"terminal"`

	// Params carries the opaque provider-specific parameters
	// (endpoint URLs, merchant ids, keys).
	Params map[string]string `json:"params,omitempty"`
}

// Param returns the named parameter or the empty string.
func (c *IntegrationConfig) Param(key string) string {
	if c == nil || c.Params == nil {
		return ""
	}
	return c.Params[key]
}
