package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	postgres_adapter "fleet/internal/adapters/out/postgres"
	"fleet/internal/adapters/out/postgres/pgtest"
	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/resource"
	"fleet/internal/core/domain/model/team"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
	team     pgtest.Team
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("integration test")
	}

	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	seeded, err := pgtest.SeedTeam(suite.database.DB, "Acme", team.User)
	suite.Require().NoError(err)
	suite.team = seeded
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "nested Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction, "rollback after commit")
	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction, "commit without begin")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestReserveAndInsertCommitTogether() {
	ctx := context.Background()
	t := suite.newTrip(time.Now().Add(-time.Hour))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	registry := uow.ResourceRegistry()
	for _, ref := range t.Resources() {
		suite.Require().NoError(registry.Reserve(ctx, ref, t.ID()))
	}
	suite.Require().NoError(uow.TripRepository().Add(ctx, t))
	suite.Require().NoError(uow.Commit(ctx))

	stored, err := suite.factory.Create().TripRepository().Get(ctx, t.ID())
	suite.Require().NoError(err)
	suite.Equal(trip.InProgress, stored.Status())
	suite.Len(stored.Cargo(), 1)
	suite.assertHeldBy("drivers", suite.team.Driver, &t)
	suite.assertHeldBy("vehicles", suite.team.Vehicle, &t)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsReservations() {
	ctx := context.Background()
	t := suite.newTrip(time.Now().Add(time.Hour))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ResourceRegistry().Reserve(ctx, resource.NewDriverRef(suite.team.Driver), t.ID()))
	suite.Require().NoError(uow.TripRepository().Add(ctx, t))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().TripRepository().Get(ctx, t.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.assertHeldBy("drivers", suite.team.Driver, nil)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentReservationsOfOneDriver() {
	ctx := context.Background()
	const attempts = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	trips := make([]*trip.Trip, 0, attempts)
	for range attempts {
		trips = append(trips, suite.newTrip(time.Now().Add(time.Hour)))
	}

	for _, t := range trips {
		wg.Add(1)
		go func() {
			defer wg.Done()

			uow := suite.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				suite.Fail("begin", err.Error())
				return
			}
			defer func() { _ = uow.Rollback(ctx) }()

			err := uow.ResourceRegistry().Reserve(ctx, resource.NewDriverRef(suite.team.Driver), t.ID())
			if err == nil {
				err = uow.TripRepository().Add(ctx, t)
			}
			if err == nil {
				err = uow.Commit(ctx)
			}

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, errs.ErrConflict):
				conflicts++
			default:
				suite.Fail("unexpected error", err.Error())
			}
		}()
	}
	wg.Wait()

	suite.Equal(1, succeeded)
	suite.Equal(attempts-1, conflicts)

	var stored int64
	suite.Require().NoError(suite.database.DB.Table("trips").Count(&stored).Error)
	suite.EqualValues(1, stored)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestInvoiceAndTripShareTransaction() {
	ctx := context.Background()
	t := suite.newTrip(time.Now())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TripRepository().Add(ctx, t))
	inv, err := invoice.NewInvoice(t.ID(), t.TeamID(), t.Price(), time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.InvoiceRepository().Add(ctx, inv))
	suite.Require().NoError(uow.Commit(ctx))

	ids := uow.(*postgres_adapter.GormUnitOfWork).TrackedIDs()
	suite.Equal([]kernel.UUID{t.ID(), inv.ID()}, ids)

	stored, err := suite.factory.Create().InvoiceRepository().GetByTrip(ctx, t.ID())
	suite.Require().NoError(err)
	suite.Equal(inv.ID(), stored.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositoriesWorkWithoutTransaction() {
	ctx := context.Background()
	t := suite.newTrip(time.Now().Add(time.Hour))

	suite.Require().NoError(suite.factory.Create().TripRepository().Add(ctx, t))

	stored, err := suite.factory.Create().TripRepository().Get(ctx, t.ID())
	suite.Require().NoError(err)
	suite.Equal(trip.NotStarted, stored.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) newTrip(start time.Time) *trip.Trip {
	item, err := trip.NewCargoItem("Pallets", 120.5, "", "")
	suite.Require().NoError(err)

	start = start.UTC().Truncate(time.Microsecond)
	t, err := trip.NewTrip(
		suite.team.Assignment(),
		trip.Schedule{StartAt: start, EndAt: start.Add(4 * time.Hour)},
		kernel.MustMoney("1000"),
		"",
		[]*trip.CargoItem{item},
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	return t
}

func (suite *UnitOfWorkIntegrationTestSuite) assertHeldBy(table string, id kernel.UUID, holder **trip.Trip) {
	status, current, err := pgtest.ResourceState(suite.database.DB, table, id)
	suite.Require().NoError(err)

	if holder == nil {
		suite.Equal("AVAILABLE", status)
		suite.Nil(current)
		return
	}
	suite.NotEqual("AVAILABLE", status)
	suite.Require().NotNil(current)
	suite.Equal((*holder).ID(), *current)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
