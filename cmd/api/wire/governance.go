//go:build wireinject
// +build wireinject

package wire

import (
	"veridor-server/internal/governance/httpapi"
	"veridor-server/internal/governance/persistence"
	"veridor-server/internal/governance/usecases"
	"veridor-server/internal/shared_kernel/audit"

	"github.com/google/wire"
)

func InitializeSearchController() (*httpapi.SearchController, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		provideSearchBackend,
		usecases.NewSearchService,
		wire.Bind(new(usecases.SearchService), new(*usecases.SimpleSearchService)),
		httpapi.NewSearchController,
	)

	return nil, nil
}

func InitializePolicyController() (*httpapi.PolicyController, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		providePublisherFactoryForEnvironment,
		audit.NewRecorder,
		wire.Bind(new(audit.Recorder), new(*audit.PubSubRecorder)),
		persistence.NewPolicyRepository,
		wire.Bind(new(usecases.PolicyRepository), new(*persistence.SimplePolicyRepository)),
		usecases.NewPolicyService,
		wire.Bind(new(usecases.PolicyService), new(*usecases.SimplePolicyService)),
		httpapi.NewPolicyController,
	)

	return nil, nil
}
