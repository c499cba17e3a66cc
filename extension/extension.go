// Package extension provides the Forge extension adapter for Patronage.
//
// It implements the forge.Extension interface to integrate Patronage
// into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.patronage" or
// "patronage" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/spacefold/patronage"
	"github.com/spacefold/patronage/currency"
	currencymem "github.com/spacefold/patronage/currency/memory"
	"github.com/spacefold/patronage/space"
	"github.com/spacefold/patronage/store"
	"github.com/spacefold/patronage/store/memory"
	"github.com/spacefold/patronage/types"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "patronage"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Subscription plans and payment settlement for content spaces"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Patronage as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config      Config
	service     *patronage.Service
	store       store.Store
	spaces      space.Directory
	transferer  currency.Transferer
	serviceOpts []patronage.Option
}

// New creates a new Patronage Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Service returns the underlying Patronage service.
// This is nil until Register is called.
func (e *Extension) Service() *patronage.Service { return e.service }

// Register implements [forge.Extension]. It loads configuration,
// initializes the patronage service, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Fall back to in-process collaborators when none were provided
	// programmatically.
	if e.store == nil {
		e.store = memory.New()
	}
	if e.spaces == nil {
		e.spaces = space.NewStaticDirectory()
	}
	if e.transferer == nil {
		e.transferer = currencymem.New(types.New(e.config.MinimumBalance, e.config.Currency))
	}

	e.service = patronage.New(e.store, e.spaces, e.transferer, e.serviceOpts...)

	return vessel.Provide(fapp.Container(), func() (*patronage.Service, error) {
		return e.service, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.service == nil {
		return errors.New("patronage: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.service.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.service != nil {
		if err := e.service.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("patronage: store not initialized")
	}
	return e.store.Ping(ctx)
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("patronage: configuration is required but not found in config files; " +
				"ensure 'extensions.patronage' or 'patronage' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("patronage: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("currency", e.config.Currency),
		forge.F("minimum_balance", e.config.MinimumBalance),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.patronage" first (namespaced pattern).
	if cm.IsSet("extensions.patronage") {
		if err := cm.Bind("extensions.patronage", &cfg); err == nil {
			e.Logger().Debug("patronage: loaded config from file",
				forge.F("key", "extensions.patronage"),
			)
			return cfg, true
		}
		e.Logger().Warn("patronage: failed to bind extensions.patronage config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "patronage" key.
	if cm.IsSet("patronage") {
		if err := cm.Bind("patronage", &cfg); err == nil {
			e.Logger().Debug("patronage: loaded config from file",
				forge.F("key", "patronage"),
			)
			return cfg, true
		}
		e.Logger().Warn("patronage: failed to bind patronage config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.Currency == "" {
		cfg.Currency = defaults.Currency
	}
	if cfg.MinimumBalance == 0 {
		cfg.MinimumBalance = defaults.MinimumBalance
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic bool flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// String and numeric fields: YAML takes precedence, programmatic fills gaps.
	if yamlConfig.Currency == "" && programmaticConfig.Currency != "" {
		yamlConfig.Currency = programmaticConfig.Currency
	}
	if yamlConfig.MinimumBalance == 0 && programmaticConfig.MinimumBalance != 0 {
		yamlConfig.MinimumBalance = programmaticConfig.MinimumBalance
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
