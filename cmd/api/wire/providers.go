package wire

import (
	"os"
	"sync"

	"veridor-server/cmd/config"
	governancepersistence "veridor-server/internal/governance/persistence"
	governanceusecases "veridor-server/internal/governance/usecases"
	"veridor-server/internal/infra/cache"
	"veridor-server/internal/infra/pubsub"
	"veridor-server/internal/infra/sql"
)

func provideAppConfig() config.AppConfig {
	return config.LoadConfig()
}

var (
	databaseOnce     sync.Once
	databaseInstance sql.ORM
)

// provideDatabase is memoized: every injector runs it, and the
// controllers and the trail worker must share one database handle (the
// in-memory ORM is otherwise a fresh empty database per call).
func provideDatabase(config config.AppConfig) sql.ORM {
	databaseOnce.Do(func() {
		env, ok := os.LookupEnv("ENV")
		if !ok {
			env = "production"
		}

		if env == "local" {
			orm, err := sql.NewMemoryORM()
			if err != nil {
				panic(err)
			}

			databaseInstance = orm
			return
		}

		db := sql.NewPosgreDatabase(config.Postgresql.URL)
		if err := db.Open(); err != nil {
			panic(err)
		}

		orm, err := sql.NewPosgreORM(config.Postgresql.DSN)
		if err != nil {
			panic(err)
		}

		databaseInstance = orm
	})

	return databaseInstance
}

func providePublisherFactoryForEnvironment(config config.AppConfig) pubsub.PublisherFactory {
	env, ok := os.LookupEnv("ENV")
	if !ok {
		env = "production"
	}

	if env == "local" {
		return pubsub.NewMemoryPublisherFactory()
	}

	return pubsub.NewKafkaPublisherFactory(pubsub.KafkaPublisherFactoryOptions{
		Brokers: config.Kafka.Brokers,
	})
}

func provideConsumerFactoryForEnvironment(config config.AppConfig) pubsub.ConsumerFactory {
	env, ok := os.LookupEnv("ENV")
	if !ok {
		env = "production"
	}

	if env == "local" {
		return pubsub.NewMemoryConsumerFactory(config.Kafka.Group)
	}

	return pubsub.NewKafkaConsumerFactory(config.Kafka.Brokers, config.Kafka.Group)
}

var (
	cacheOnce     sync.Once
	cacheInstance cache.Cache
	cacheInitErr  error
)

// provideCache is memoized so the table and record services invalidate
// and read the same cache instance.
func provideCache(config config.AppConfig) (cache.Cache, error) {
	cacheOnce.Do(func() {
		if config.Redis.Addr != "" {
			redisConfig := cache.DefaultRedisConfig()
			redisConfig.Addr = config.Redis.Addr
			redisConfig.Password = config.Redis.Password
			redisConfig.DB = config.Redis.DB
			cacheInstance, cacheInitErr = cache.NewRedisCache(redisConfig)
			return
		}

		cacheInstance, cacheInitErr = cache.New(nil)
	})

	return cacheInstance, cacheInitErr
}

func provideSearchBackend(config config.AppConfig, orm sql.ORM) (governanceusecases.SearchBackend, error) {
	return governancepersistence.NewSearchBackend(config.Search.Engine, orm)
}
