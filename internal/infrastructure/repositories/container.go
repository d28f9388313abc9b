package repositories

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/rios0rios0/devops2blob/internal/domain/entities"
	domainRepos "github.com/rios0rios0/devops2blob/internal/domain/repositories"
	"github.com/rios0rios0/devops2blob/internal/infrastructure/repositories/metrics"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register connector registry with both authentication modes
	if err := container.Provide(func() *ConnectorRegistry {
		reg := NewConnectorRegistry()
		reg.Register(entities.AuthModeManagedIdentity, NewManagedIdentityConnector)
		reg.Register(entities.AuthModePATAndKey, NewPATAndKeyConnector)
		return reg
	}); err != nil {
		return err
	}

	// One registry per process, shared by the recorder and the /metrics endpoint
	if err := container.Provide(prometheus.NewRegistry); err != nil {
		return err
	}
	if err := container.Provide(func(registry *prometheus.Registry) prometheus.Gatherer {
		return registry
	}); err != nil {
		return err
	}
	if err := container.Provide(func(registry *prometheus.Registry) domainRepos.RecorderRepository {
		return metrics.NewRecorderRepository(registry)
	}); err != nil {
		return err
	}

	return nil
}
