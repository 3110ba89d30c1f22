// Package config loads and validates application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Gateway  GatewayConfig  `mapstructure:"gateway"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// RedisConfig contains the method-listing cache settings. An empty address
// disables the cache; listing then always hits the catalog.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// TTLSeconds bounds how stale a cached method listing may get after a
	// configuration deploy.
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

// AuthConfig contains authentication settings for the client-facing routes.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes bounds how long an issued access token stays valid.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// GatewayConfig contains the gateway core settings.
type GatewayConfig struct {
	// PayoutCompany is the fixed operating company all payout integration
	// configs are anchored to, regardless of the request's company.
	PayoutCompany string `mapstructure:"payout_company" validate:"required"`

	// Currency is the settlement currency recorded on transactions.
	Currency string `mapstructure:"currency" validate:"required,len=3"`

	// RulesFile points at the integration-config rule set definition.
	RulesFile string `mapstructure:"rules_file" validate:"required"`

	// BlockedCardPrefixes lists card number prefixes excluded from payouts.
	// Empty means every stored card is payout-eligible.
	BlockedCardPrefixes []string `mapstructure:"blocked_card_prefixes"`
}
