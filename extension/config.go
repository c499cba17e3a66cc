package extension

// Config holds the Patronage extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.patronage" or "patronage" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// Currency is the currency code used when the extension constructs
	// its default in-memory ledger (default: "SUB"). Ignored when a
	// transferer is provided via WithTransferer.
	Currency string `json:"currency" mapstructure:"currency" yaml:"currency"`

	// MinimumBalance is the existential deposit enforced by the default
	// in-memory ledger, in the smallest currency unit (default: 1).
	// Ignored when a transferer is provided via WithTransferer.
	MinimumBalance int64 `json:"minimum_balance" mapstructure:"minimum_balance" yaml:"minimum_balance"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Currency:       "SUB",
		MinimumBalance: 1,
	}
}
