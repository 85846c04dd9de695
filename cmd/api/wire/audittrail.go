//go:build wireinject
// +build wireinject

package wire

import (
	"veridor-server/internal/audittrail/httpapi"
	"veridor-server/internal/audittrail/persistence"
	"veridor-server/internal/audittrail/usecases"
	"veridor-server/internal/audittrail/workers"

	"github.com/google/wire"
)

func InitializeTrailWorker() (*workers.TrailWorker, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		provideConsumerFactoryForEnvironment,
		persistence.NewTrailRepository,
		wire.Bind(new(usecases.TrailRepository), new(*persistence.SimpleTrailRepository)),
		workers.NewTrailWorker,
	)

	return nil, nil
}

func InitializeTrailController() (*httpapi.TrailController, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		persistence.NewTrailRepository,
		wire.Bind(new(usecases.TrailRepository), new(*persistence.SimpleTrailRepository)),
		usecases.NewTrailService,
		wire.Bind(new(usecases.TrailService), new(*usecases.SimpleTrailService)),
		httpapi.NewTrailController,
	)

	return nil, nil
}
