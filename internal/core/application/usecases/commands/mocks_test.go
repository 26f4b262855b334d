package commands_test

import (
	"context"
	"time"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/resource"
	"fleet/internal/core/domain/model/team"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

type MockTripRepository struct{ mock.Mock }

func (m *MockTripRepository) Add(ctx context.Context, t *trip.Trip) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTripRepository) Update(ctx context.Context, t *trip.Trip) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTripRepository) ReplaceCargo(ctx context.Context, t *trip.Trip) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.Trip), args.Error(1)
}

func (m *MockTripRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.Trip), args.Error(1)
}

func (m *MockTripRepository) ListDueToStart(ctx context.Context, now time.Time) ([]*trip.Trip, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trip.Trip), args.Error(1)
}

func (m *MockTripRepository) ListOverdue(ctx context.Context, now time.Time) ([]*trip.Trip, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trip.Trip), args.Error(1)
}

type MockResourceRegistry struct{ mock.Mock }

func (m *MockResourceRegistry) Reserve(ctx context.Context, ref resource.Ref, tripID kernel.UUID) error {
	return m.Called(ctx, ref, tripID).Error(0)
}

func (m *MockResourceRegistry) Release(ctx context.Context, ref resource.Ref, tripID kernel.UUID) error {
	return m.Called(ctx, ref, tripID).Error(0)
}

func (m *MockResourceRegistry) ReleaseByTrips(ctx context.Context, tripIDs []kernel.UUID) error {
	return m.Called(ctx, tripIDs).Error(0)
}

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) Add(ctx context.Context, inv *invoice.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *MockInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetByTrip(ctx context.Context, tripID kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListStuckPending(ctx context.Context, olderThan time.Time) ([]*invoice.Invoice, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*invoice.Invoice), args.Error(1)
}

// MockUoW satisfies both TripUoW and InvoiceUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) TripRepository() ports.TripRepository {
	return m.Called().Get(0).(ports.TripRepository)
}

func (m *MockUoW) ResourceRegistry() ports.ResourceRegistry {
	return m.Called().Get(0).(ports.ResourceRegistry)
}

func (m *MockUoW) InvoiceRepository() ports.InvoiceRepository {
	return m.Called().Get(0).(ports.InvoiceRepository)
}

type MockTripUoWFactory struct{ mock.Mock }

func (m *MockTripUoWFactory) Create() commands.TripUoW {
	return m.Called().Get(0).(commands.TripUoW)
}

type MockInvoiceUoWFactory struct{ mock.Mock }

func (m *MockInvoiceUoWFactory) Create() commands.InvoiceUoW {
	return m.Called().Get(0).(commands.InvoiceUoW)
}

type MockAuthorizer struct{ mock.Mock }

func (m *MockAuthorizer) HasRole(ctx context.Context, actor, teamID kernel.UUID, role team.Role) (bool, error) {
	args := m.Called(ctx, actor, teamID, role)
	return args.Bool(0), args.Error(1)
}

type MockDirectory struct{ mock.Mock }

func (m *MockDirectory) CheckAssignment(ctx context.Context, a trip.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockDirectory) FiscalProfile(ctx context.Context, teamID kernel.UUID) (invoice.FiscalProfile, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(invoice.FiscalProfile), args.Error(1)
}

func (m *MockDirectory) BillingInfo(ctx context.Context, clientID kernel.UUID) (invoice.BillingInfo, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(invoice.BillingInfo), args.Error(1)
}

func (m *MockDirectory) TripParties(ctx context.Context, a trip.Assignment) (invoice.TripParties, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(invoice.TripParties), args.Error(1)
}

type MockFiscalService struct{ mock.Mock }

func (m *MockFiscalService) CreateDocument(ctx context.Context, doc invoice.Document) (invoice.IssuedDocument, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(invoice.IssuedDocument), args.Error(1)
}

func (m *MockFiscalService) CancelDocument(ctx context.Context, externalID, reason string) error {
	return m.Called(ctx, externalID, reason).Error(0)
}

func (m *MockFiscalService) Download(ctx context.Context, externalID string, format ports.ArtifactFormat) ([]byte, error) {
	args := m.Called(ctx, externalID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockStorage struct{ mock.Mock }

func (m *MockStorage) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, body, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockInvoiceTrigger struct{ mock.Mock }

func (m *MockInvoiceTrigger) Trigger(tripID kernel.UUID) {
	m.Called(tripID)
}

func newAssignment() trip.Assignment {
	return trip.Assignment{
		Team:    kernel.NewUUID(),
		Client:  kernel.NewUUID(),
		Driver:  kernel.NewUUID(),
		Vehicle: kernel.NewUUID(),
		Route:   kernel.NewUUID(),
	}
}

// restoreTrip builds a stored trip in the given status.
func restoreTrip(status trip.Status, start, end time.Time) *trip.Trip {
	t, err := trip.RestoreTrip(
		kernel.NewUUID(),
		newAssignment(),
		trip.Schedule{StartAt: start, EndAt: end},
		kernel.MustMoney("1000"),
		"",
		nil,
		status,
		testNow.Add(-24*time.Hour),
		testNow.Add(-24*time.Hour),
	)
	if err != nil {
		panic(err)
	}
	return t
}

// restoreInvoice builds a stored invoice in the given status.
func restoreInvoice(status invoice.Status, tripID, teamID kernel.UUID, updatedAt time.Time) *invoice.Invoice {
	draft, err := invoice.NewInvoice(tripID, teamID, kernel.MustMoney("1000"), updatedAt)
	if err != nil {
		panic(err)
	}
	r := invoice.Record{
		ID:        draft.ID(),
		TripID:    tripID,
		TeamID:    teamID,
		Subtotal:  draft.Subtotal(),
		Tax:       draft.Tax(),
		Total:     draft.Total(),
		Status:    status,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
	if status == invoice.Stamped {
		r.Issued = invoice.IssuedDocument{ExternalID: "ext-1"}
	}
	inv, err := invoice.RestoreInvoice(r)
	if err != nil {
		panic(err)
	}
	return inv
}
