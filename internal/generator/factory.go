package generator

import (
	"fmt"

	"go.uber.org/zap"

	"findash/internal/config"
	"findash/internal/port"
)

// ProviderFactory creates a SQLGenerator from a provider config.
type ProviderFactory func(cfg *config.ProviderConfig) (port.SQLGenerator, error)

// registry of provider factories, populated by init() in each provider package.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewGenerator creates a SQLGenerator from a provider config using the registered factory.
func NewGenerator(cfg *config.ProviderConfig) (port.SQLGenerator, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown sql generator provider: %q", cfg.Provider)
	}
	return factory(cfg)
}

// NewFromConfig builds the configured provider chain. A single provider is
// returned as is; more than one are wrapped in a Fallback.
func NewFromConfig(cfg *config.GeneratorConfig, log *zap.Logger) (port.SQLGenerator, error) {
	provCfgs := cfg.Providers()
	gens := make([]port.SQLGenerator, 0, len(provCfgs))
	names := make([]string, 0, len(provCfgs))
	for _, pc := range provCfgs {
		g, err := NewGenerator(pc)
		if err != nil {
			return nil, err
		}
		gens = append(gens, g)
		names = append(names, pc.Provider)
	}

	if len(gens) == 1 {
		return gens[0], nil
	}
	return NewFallback(gens, names, log), nil
}
