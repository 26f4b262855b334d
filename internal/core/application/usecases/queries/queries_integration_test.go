package queries_test

import (
	"context"
	"testing"
	"time"

	"fleet/internal/adapters/out/postgres/directoryrepo"
	"fleet/internal/adapters/out/postgres/invoicerepo"
	"fleet/internal/adapters/out/postgres/pgtest"
	"fleet/internal/adapters/out/postgres/triprepo"
	"fleet/internal/core/application/usecases/queries"
	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/team"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	acme     pgtest.Team
	globex   pgtest.Team
	trips    *triprepo.GormTripRepository
	invoices *invoicerepo.GormInvoiceRepository

	getTrip      queries.GetTripQueryHandler
	listTrips    queries.ListTripsQueryHandler
	getInvoice   queries.GetInvoiceQueryHandler
	listInvoices queries.ListInvoicesQueryHandler

	now time.Time
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("integration test")
	}

	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database

	db := database.DB
	authorizer := directoryrepo.NewGormAuthorizer(db)
	suite.trips = triprepo.NewGormTripRepository(db, nopTracker{})
	suite.invoices = invoicerepo.NewGormInvoiceRepository(db, nopTracker{})
	suite.getTrip = queries.NewGetTripQueryHandler(db, authorizer)
	suite.listTrips = queries.NewListTripsQueryHandler(db, authorizer)
	suite.getInvoice = queries.NewGetInvoiceQueryHandler(db, authorizer)
	suite.listInvoices = queries.NewListInvoicesQueryHandler(db, authorizer)
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	var err error
	suite.acme, err = pgtest.SeedTeam(suite.database.DB, "Acme", team.User)
	suite.Require().NoError(err)
	suite.globex, err = pgtest.SeedTeam(suite.database.DB, "Globex", team.Admin)
	suite.Require().NoError(err)

	suite.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetTrip_ReturnsNamesAndOrderedCargo() {
	t := suite.addTrip(suite.acme, suite.now, "Pallets", "Boxes")

	query, err := queries.NewGetTripQuery(suite.acme.Member, t.ID())
	suite.Require().NoError(err)
	view, err := suite.getTrip.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(t.ID(), view.ID)
	suite.Equal("Acme Client", view.Client.Name)
	suite.Equal("Acme Driver", view.Driver.Name)
	suite.Equal("Acme-PLATE", view.Vehicle.Plate)
	suite.Equal("Volvo", view.Vehicle.Brand)
	suite.Equal("Acme Route", view.Route.Name)
	suite.Equal("1200.00", view.Price.String())
	suite.Equal(trip.NotStarted, view.Status)
	suite.Nil(view.InvoiceID)
	suite.Require().Len(view.Cargo, 2)
	suite.Equal("Pallets", view.Cargo[0].Name)
	suite.Equal("Boxes", view.Cargo[1].Name)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetTrip_ExposesInvoiceID() {
	t := suite.addTrip(suite.acme, suite.now)
	inv := suite.addInvoice(suite.acme, t, suite.now)

	query, err := queries.NewGetTripQuery(suite.acme.Member, t.ID())
	suite.Require().NoError(err)
	view, err := suite.getTrip.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().NotNil(view.InvoiceID)
	suite.Equal(inv.ID(), *view.InvoiceID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetTrip_OtherTeam_ReturnsNotFound() {
	t := suite.addTrip(suite.acme, suite.now)

	query, err := queries.NewGetTripQuery(suite.globex.Member, t.ID())
	suite.Require().NoError(err)
	_, err = suite.getTrip.Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListTrips_PagesNewestFirst() {
	first := suite.addTrip(suite.acme, suite.now)
	second := suite.addTrip(suite.acme, suite.now.Add(time.Second))
	third := suite.addTrip(suite.acme, suite.now.Add(2*time.Second))
	suite.addTrip(suite.globex, suite.now)

	page, err := queries.NewPage(1, 2)
	suite.Require().NoError(err)
	query, err := queries.NewListTripsQuery(suite.acme.Member, suite.acme.ID, page, "", "")
	suite.Require().NoError(err)
	resp, err := suite.listTrips.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(int64(3), resp.Total)
	suite.Equal(2, resp.TotalPages)
	suite.Require().Len(resp.Trips, 2)
	suite.Equal(third.ID(), resp.Trips[0].ID)
	suite.Equal(second.ID(), resp.Trips[1].ID)
	suite.Empty(resp.Trips[0].Cargo)

	page, err = queries.NewPage(2, 2)
	suite.Require().NoError(err)
	query, err = queries.NewListTripsQuery(suite.acme.Member, suite.acme.ID, page, "", "")
	suite.Require().NoError(err)
	resp, err = suite.listTrips.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(resp.Trips, 1)
	suite.Equal(first.ID(), resp.Trips[0].ID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListTrips_FiltersBySearchAndStatus() {
	ctx := context.Background()
	suite.addTrip(suite.acme, suite.now)

	driverID, err := pgtest.SeedDriver(suite.database.DB, suite.acme.ID, "Rosa_Luna")
	suite.Require().NoError(err)
	assignment := suite.acme.Assignment()
	assignment.Driver = driverID
	running, err := trip.NewTrip(
		assignment,
		trip.Schedule{StartAt: suite.now.Add(-time.Hour), EndAt: suite.now.Add(time.Hour)},
		kernel.MustMoney("800"), "", nil, suite.now.Add(time.Second),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.trips.Add(ctx, running))

	query, err := queries.NewListTripsQuery(suite.acme.Member, suite.acme.ID, queries.Page{}, "rosa_", "")
	suite.Require().NoError(err)
	resp, err := suite.listTrips.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(resp.Trips, 1)
	suite.Equal(running.ID(), resp.Trips[0].ID)

	query, err = queries.NewListTripsQuery(suite.acme.Member, suite.acme.ID, queries.Page{}, "acme-plate", "not_started")
	suite.Require().NoError(err)
	resp, err = suite.listTrips.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(int64(1), resp.Total)
	suite.Equal(trip.NotStarted, resp.Trips[0].Status)
	suite.Equal(queries.DefaultLimit, resp.Limit)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListTrips_NotMember_ReturnsValidationError() {
	query, err := queries.NewListTripsQuery(suite.globex.Member, suite.acme.ID, queries.Page{}, "", "")
	suite.Require().NoError(err)

	_, err = suite.listTrips.Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetInvoice_ReturnsTripSummary() {
	t := suite.addTrip(suite.acme, suite.now)
	inv := suite.addInvoice(suite.acme, t, suite.now)

	query, err := queries.NewGetInvoiceQuery(suite.acme.Member, inv.ID())
	suite.Require().NoError(err)
	view, err := suite.getInvoice.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(inv.ID(), view.ID)
	suite.Equal(t.ID(), view.TripID)
	suite.Equal(invoice.Draft, view.Status)
	suite.Equal("1200.00", view.Subtotal.String())
	suite.Equal("192.00", view.Tax.String())
	suite.Equal("1392.00", view.Total.String())
	suite.Equal("Acme Client", view.Trip.ClientName)
	suite.Equal("Acme Driver", view.Trip.DriverName)
	suite.Equal("Acme-PLATE", view.Trip.VehiclePlate)
	suite.Nil(view.CancelledAt)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetInvoice_OtherTeam_ReturnsNotFound() {
	inv := suite.addInvoice(suite.acme, suite.addTrip(suite.acme, suite.now), suite.now)

	query, err := queries.NewGetInvoiceQuery(suite.globex.Member, inv.ID())
	suite.Require().NoError(err)
	_, err = suite.getInvoice.Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListInvoices_ScopedToTeamNewestFirst() {
	older := suite.addInvoice(suite.acme, suite.addTrip(suite.acme, suite.now), suite.now)
	newer := suite.addInvoice(suite.acme, suite.addTrip(suite.acme, suite.now), suite.now.Add(time.Minute))
	suite.addInvoice(suite.globex, suite.addTrip(suite.globex, suite.now), suite.now)

	query, err := queries.NewListInvoicesQuery(suite.acme.Member, suite.acme.ID, queries.Page{})
	suite.Require().NoError(err)
	resp, err := suite.listInvoices.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(int64(2), resp.Total)
	suite.Equal(1, resp.TotalPages)
	suite.Require().Len(resp.Invoices, 2)
	suite.Equal(newer.ID(), resp.Invoices[0].ID)
	suite.Equal(older.ID(), resp.Invoices[1].ID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListInvoices_NotMember_ReturnsValidationError() {
	query, err := queries.NewListInvoicesQuery(kernel.NewUUID(), suite.acme.ID, queries.Page{})
	suite.Require().NoError(err)

	_, err = suite.listInvoices.Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *QueryHandlersIntegrationTestSuite) addTrip(owner pgtest.Team, createdAt time.Time, cargo ...string) *trip.Trip {
	items := make([]*trip.CargoItem, 0, len(cargo))
	for _, name := range cargo {
		item, err := trip.NewCargoItem(name, 25, "", "")
		suite.Require().NoError(err)
		items = append(items, item)
	}

	t, err := trip.NewTrip(
		owner.Assignment(),
		trip.Schedule{StartAt: suite.now.Add(time.Hour), EndAt: suite.now.Add(3 * time.Hour)},
		kernel.MustMoney("1200"),
		"",
		items,
		createdAt,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.trips.Add(context.Background(), t))
	return t
}

func (suite *QueryHandlersIntegrationTestSuite) addInvoice(owner pgtest.Team, t *trip.Trip, createdAt time.Time) *invoice.Invoice {
	inv, err := invoice.NewInvoice(t.ID(), owner.ID, t.Price(), createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.invoices.Add(context.Background(), inv))
	return inv
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
