package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpadapter "ricetrade/internal/adapters/in/http"
	"ricetrade/internal/adapters/out/kafka"
	"ricetrade/internal/adapters/out/memory"
	"ricetrade/internal/adapters/out/postgres"
	"ricetrade/internal/adapters/out/postgres/directoryrepo"
	"ricetrade/internal/adapters/out/realtime"
	"ricetrade/internal/core/application/notifications"
	"ricetrade/internal/core/application/usecases/commands"
	"ricetrade/internal/core/application/usecases/queries"
	"ricetrade/internal/core/domain/services"
	"ricetrade/internal/core/ports"
	"ricetrade/internal/jobs"
	"ricetrade/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config  Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	policy  services.AccessPolicy

	uowFactory ports.UnitOfWorkFactory
	directory  ports.DirectoryReader

	hub      *realtime.Hub
	kafka    *kafka.Publisher
	notifier ports.Notifier

	closers []func() error
}

// NewCompositionRoot opens the configured store and builds the shared
// collaborators.
func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:  config,
		logger:  logger,
		metrics: metrics.New(),
		policy:  services.NewAccessPolicy(),
		hub:     realtime.NewHub(),
	}

	switch config.Storage {
	case StorageMemory:
		store := memory.NewStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(store)
		c.directory = store
		logger.Warn("Using in-memory storage, data is lost on restart")
	default:
		db, err := gorm.Open(gorm_postgres.Open(config.DSN()), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if config.DBAutoMigrate {
			if err := postgres.Migrate(db); err != nil {
				return nil, fmt.Errorf("migrate schema: %w", err)
			}
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, sqlDB.Close)
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
		c.directory = directoryrepo.NewGormDirectoryReader(db)
	}

	publishers := []notifications.NamedPublisher{{Name: "realtime", Publisher: c.hub}}
	if brokers := kafka.ParseBrokers(config.KafkaBrokers); len(brokers) > 0 {
		c.kafka = kafka.NewPublisher(brokers, config.KafkaTopic, logger)
		c.closers = append(c.closers, c.kafka.Close)
		publishers = append(publishers, notifications.NamedPublisher{Name: "kafka", Publisher: c.kafka})
	}
	c.notifier = notifications.NewFanout(logger, c.metrics, publishers...)

	return c, nil
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.uow(), c.policy, c.notifier, c.metrics)
}

func (c *CompositionRoot) CreateAssignLogisticsCommandHandler() commands.AssignLogisticsCommandHandler {
	assigner := services.NewLogisticsAssigner(services.NewRandomOTPGenerator())
	return commands.NewAssignLogisticsCommandHandler(c.uow(), c.policy, assigner, c.notifier, c.metrics)
}

func (c *CompositionRoot) CreateVerifyPickupOTPCommandHandler() commands.VerifyPickupOTPCommandHandler {
	return commands.NewVerifyPickupOTPCommandHandler(c.orderUoW(), c.policy, c.notifier, c.metrics)
}

func (c *CompositionRoot) CreateVerifyDeliveryOTPCommandHandler() commands.VerifyDeliveryOTPCommandHandler {
	return commands.NewVerifyDeliveryOTPCommandHandler(c.uow(), c.policy, c.notifier, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	return commands.NewUpdateLocationCommandHandler(c.uow(), c.policy, c.notifier)
}

func (c *CompositionRoot) CreateSetEstimatedDeliveryCommandHandler() commands.SetEstimatedDeliveryCommandHandler {
	return commands.NewSetEstimatedDeliveryCommandHandler(c.orderUoW(), c.policy, c.notifier)
}

func (c *CompositionRoot) CreateReconcileVehiclesCommandHandler() commands.ReconcileVehiclesCommandHandler {
	return commands.NewReconcileVehiclesCommandHandler(c.uow(), c.logger)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.uowFactory.Create().OrderRepository(), c.directory, c.policy)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository(), c.directory, c.policy)
}

// CreateHTTPServer wires every use case behind the echo router.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	server := httpadapter.NewServer(httpadapter.Handlers{
		UpdateOrderStatus:    c.CreateUpdateOrderStatusCommandHandler(),
		AssignLogistics:      c.CreateAssignLogisticsCommandHandler(),
		VerifyPickup:         c.CreateVerifyPickupOTPCommandHandler(),
		VerifyDelivery:       c.CreateVerifyDeliveryOTPCommandHandler(),
		UpdateLocation:       c.CreateUpdateLocationCommandHandler(),
		SetEstimatedDelivery: c.CreateSetEstimatedDeliveryCommandHandler(),
		ListOrders:           c.CreateListOrdersQueryHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
	}, c.hub)

	return httpadapter.NewRouter(server, httpadapter.NewAuthenticator(c.config.JWTSecret), c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewVehicleReconciliationJob(
			c.CreateReconcileVehiclesCommandHandler(),
			c.metrics,
			c.config.ReconcileSchedule,
			c.logger,
		),
	)
}

// CloseStreams ends open event streams ahead of the HTTP shutdown.
func (c *CompositionRoot) CloseStreams() {
	c.hub.Close()
}

// Close releases the store connection and flushes the Kafka writer.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
