package providerrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"ricetrade/internal/adapters/out/postgres/providerrepo"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/logistics"
	"ricetrade/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ProviderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *providerrepo.GormProviderRepository
}

func (suite *ProviderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&providerrepo.ProviderDTO{}, &providerrepo.VehicleDTO{}))
}

func (suite *ProviderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE vehicles, providers").Error)

	suite.repository = providerrepo.NewGormProviderRepository(suite.db)
}

func (suite *ProviderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProviderRepositoryIntegrationTestSuite) TestAddAndGet_KeepsFleetOrder() {
	ctx := context.Background()
	p := suite.newProvider("WB-3", "WB-1", "WB-2")

	suite.Require().NoError(suite.repository.Add(ctx, p))
	got, err := suite.repository.Get(ctx, p.ID())

	suite.Require().NoError(err)
	suite.Equal("Bengal Freight", got.Name())
	suite.True(got.IsVerified())
	numbers := make([]string, 0, 3)
	for _, v := range got.Vehicles() {
		numbers = append(numbers, v.Number())
		suite.True(v.IsAvailable())
	}
	suite.Equal([]string{"WB-3", "WB-1", "WB-2"}, numbers)
}

func (suite *ProviderRepositoryIntegrationTestSuite) TestGet_Unknown_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProviderRepositoryIntegrationTestSuite) TestUpdate_AddsVehiclesWithoutTouchingAvailability() {
	ctx := context.Background()
	p := suite.newProvider("WB-1")
	suite.Require().NoError(suite.repository.Add(ctx, p))
	suite.Require().NoError(suite.repository.UpdateVehicleAvailability(ctx, p.ID(), "WB-1", true, false))

	// The in-memory copy still believes WB-1 is free
	v, err := logistics.NewVehicle("WB-2", logistics.CapacityMedium, 10, logistics.Driver{Name: "Amit"})
	suite.Require().NoError(err)
	suite.Require().NoError(p.AddVehicle(v))
	suite.Require().NoError(suite.repository.Update(ctx, p))

	got, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Len(got.Vehicles(), 2)
	wb1, err := got.Vehicle("WB-1")
	suite.Require().NoError(err)
	suite.False(wb1.IsAvailable())
}

func (suite *ProviderRepositoryIntegrationTestSuite) TestUpdateVehicleAvailability_CompareAndSet() {
	ctx := context.Background()
	p := suite.newProvider("WB-1")
	suite.Require().NoError(suite.repository.Add(ctx, p))

	suite.Require().NoError(suite.repository.UpdateVehicleAvailability(ctx, p.ID(), "WB-1", true, false))

	err := suite.repository.UpdateVehicleAvailability(ctx, p.ID(), "WB-1", true, false)
	suite.Require().ErrorIs(err, logistics.ErrVehicleUnavailable)

	suite.Require().NoError(suite.repository.UpdateVehicleAvailability(ctx, p.ID(), "WB-1", false, true))

	err = suite.repository.UpdateVehicleAvailability(ctx, p.ID(), "WB-1", false, true)
	suite.Require().ErrorIs(err, logistics.ErrVehicleAlreadyAvailable)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	err = suite.repository.UpdateVehicleAvailability(ctx, p.ID(), "WB-9", true, false)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProviderRepositoryIntegrationTestSuite) TestUpdateVehicleAvailability_ConcurrentReservations() {
	ctx := context.Background()
	p := suite.newProvider("WB-1")
	suite.Require().NoError(suite.repository.Add(ctx, p))

	const attempts = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx := suite.db.Begin()
			repo := providerrepo.NewGormProviderRepository(tx)
			if err := repo.UpdateVehicleAvailability(ctx, p.ID(), "WB-1", true, false); err != nil {
				tx.Rollback()
				return
			}
			if tx.Commit().Error == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	suite.Equal(1, wins)
}

func (suite *ProviderRepositoryIntegrationTestSuite) TestUpdateVehicleLocation() {
	ctx := context.Background()
	p := suite.newProvider("WB-1")
	suite.Require().NoError(suite.repository.Add(ctx, p))
	point, err := kernel.NewGeoPoint(22.57, 88.36)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.UpdateVehicleLocation(ctx, p.ID(), "WB-1", point))

	got, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	v, err := got.Vehicle("WB-1")
	suite.Require().NoError(err)
	suite.Require().NotNil(v.Location())
	suite.True(v.Location().IsEqual(point))

	err = suite.repository.UpdateVehicleLocation(ctx, p.ID(), "WB-9", point)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProviderRepositoryIntegrationTestSuite) TestGetAll() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newProvider("WB-1")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newProvider("WB-2", "WB-3")))

	all, err := suite.repository.GetAll(ctx)

	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *ProviderRepositoryIntegrationTestSuite) newProvider(numbers ...string) *logistics.Provider {
	p, err := logistics.NewProvider(kernel.NewUUID(), "Bengal Freight", "+913300000000", true)
	suite.Require().NoError(err)
	for _, n := range numbers {
		v, vErr := logistics.NewVehicle(n, logistics.CapacityLarge, 20,
			logistics.Driver{Name: "Ravi", Phone: "+91", License: "WB-DL-1"})
		suite.Require().NoError(vErr)
		suite.Require().NoError(p.AddVehicle(v))
	}
	return p
}

func TestProviderRepositoryIntegration(t *testing.T) {
	suite.Run(t, new(ProviderRepositoryIntegrationTestSuite))
}
