package qgen

import (
	"fmt"

	"quizgen/internal/config"
	"quizgen/internal/port"
)

// ProviderFactory is a function that creates a QuestionGenerator from a provider config.
type ProviderFactory func(cfg *config.ProviderConfig) (port.QuestionGenerator, error)

// registry of generation provider factories, populated explicitly via
// RegisterProvider during process wiring.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a generation provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewGenerator creates a QuestionGenerator from a provider config using the registered factory.
func NewGenerator(cfg *config.ProviderConfig) (port.QuestionGenerator, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown generation provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
