package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/devops2blob/internal/domain/entities"
	domainRepos "github.com/rios0rios0/devops2blob/internal/domain/repositories"
)

// ConnectorFactory builds the source and sink of one run for a given authentication mode.
type ConnectorFactory func(settings *entities.Settings) (domainRepos.SourceRepository, domainRepos.SinkRepository, error)

// ConnectorRegistry manages the registered authentication modes.
type ConnectorRegistry struct {
	connectors map[entities.AuthMode]ConnectorFactory
}

// NewConnectorRegistry creates an empty connector registry.
func NewConnectorRegistry() *ConnectorRegistry {
	return &ConnectorRegistry{
		connectors: make(map[entities.AuthMode]ConnectorFactory),
	}
}

// Register adds a connector factory under the given mode (e.g. "managedIdentity").
func (r *ConnectorRegistry) Register(mode entities.AuthMode, factory ConnectorFactory) {
	r.connectors[mode] = factory
}

// Connect returns a freshly built source and sink for the settings' auth mode.
func (r *ConnectorRegistry) Connect(
	settings *entities.Settings,
) (domainRepos.SourceRepository, domainRepos.SinkRepository, error) {
	factory, ok := r.connectors[settings.AuthMode]
	if !ok {
		return nil, nil, fmt.Errorf("unknown auth mode: %q (registered: %v)", settings.AuthMode, r.Modes())
	}
	return factory(settings)
}

// Modes returns the registered modes, sorted.
func (r *ConnectorRegistry) Modes() []entities.AuthMode {
	modes := make([]entities.AuthMode, 0, len(r.connectors))
	for mode := range r.connectors {
		modes = append(modes, mode)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	return modes
}
