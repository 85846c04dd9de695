//go:build wireinject
// +build wireinject

package wire

import (
	"veridor-server/internal/records/httpapi"
	"veridor-server/internal/records/persistence"
	"veridor-server/internal/records/usecases"
	"veridor-server/internal/shared_kernel/audit"

	"github.com/google/wire"
)

func InitializeTableController() (*httpapi.TableController, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		provideCache,
		providePublisherFactoryForEnvironment,
		audit.NewRecorder,
		wire.Bind(new(audit.Recorder), new(*audit.PubSubRecorder)),
		persistence.NewTableRepository,
		wire.Bind(new(usecases.TableRepository), new(*persistence.SimpleTableRepository)),
		persistence.NewFieldDefinitionRepository,
		wire.Bind(new(usecases.FieldDefinitionRepository), new(*persistence.SimpleFieldDefinitionRepository)),
		usecases.NewSchemaRegistry,
		wire.Bind(new(usecases.SchemaRegistry), new(*usecases.CachedSchemaRegistry)),
		usecases.NewTableService,
		wire.Bind(new(usecases.TableService), new(*usecases.SimpleTableService)),
		httpapi.NewTableController,
	)

	return nil, nil
}

func InitializeRecordController() (*httpapi.RecordController, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		provideCache,
		providePublisherFactoryForEnvironment,
		audit.NewRecorder,
		wire.Bind(new(audit.Recorder), new(*audit.PubSubRecorder)),
		persistence.NewTableRepository,
		wire.Bind(new(usecases.TableRepository), new(*persistence.SimpleTableRepository)),
		persistence.NewFieldDefinitionRepository,
		wire.Bind(new(usecases.FieldDefinitionRepository), new(*persistence.SimpleFieldDefinitionRepository)),
		persistence.NewRecordRepository,
		wire.Bind(new(usecases.RecordRepository), new(*persistence.SimpleRecordRepository)),
		usecases.NewSchemaRegistry,
		wire.Bind(new(usecases.SchemaRegistry), new(*usecases.CachedSchemaRegistry)),
		usecases.NewRecordService,
		wire.Bind(new(usecases.RecordService), new(*usecases.SimpleRecordService)),
		httpapi.NewRecordController,
	)

	return nil, nil
}
