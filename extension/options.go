package extension

import (
	"github.com/spacefold/patronage"
	"github.com/spacefold/patronage/currency"
	"github.com/spacefold/patronage/hook"
	"github.com/spacefold/patronage/space"
	"github.com/spacefold/patronage/store"
)

// Option configures the Patronage Forge extension.
type Option func(*Extension)

// WithStore sets the store for the patronage service.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithSpaceDirectory sets the space directory consulted for ownership
// checks and recipient resolution.
func WithSpaceDirectory(d space.Directory) Option {
	return func(e *Extension) {
		e.spaces = d
	}
}

// WithTransferer sets the currency transferer used for settlement.
// When unset, an in-memory ledger is constructed from the configured
// currency and minimum balance.
func WithTransferer(t currency.Transferer) Option {
	return func(e *Extension) {
		e.transferer = t
	}
}

// WithServiceOption passes a patronage.Option through to the underlying service.
func WithServiceOption(opt patronage.Option) Option {
	return func(e *Extension) {
		e.serviceOpts = append(e.serviceOpts, opt)
	}
}

// WithHook registers a patronage hook.
func WithHook(h hook.Hook) Option {
	return func(e *Extension) {
		e.serviceOpts = append(e.serviceOpts, patronage.WithHook(h))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}

// WithCurrency sets the currency code for the default in-memory ledger.
func WithCurrency(code string) Option {
	return func(e *Extension) { e.config.Currency = code }
}

// WithMinimumBalance sets the existential deposit for the default
// in-memory ledger.
func WithMinimumBalance(amount int64) Option {
	return func(e *Extension) { e.config.MinimumBalance = amount }
}
