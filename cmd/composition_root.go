package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpadapter "fleet/internal/adapters/in/http"
	"fleet/internal/adapters/out/facturapi"
	"fleet/internal/adapters/out/postgres"
	"fleet/internal/adapters/out/postgres/auditrepo"
	"fleet/internal/adapters/out/postgres/directoryrepo"
	"fleet/internal/adapters/out/storage/diskstore"
	"fleet/internal/adapters/out/storage/s3store"
	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/application/usecases/queries"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/services"
	"fleet/internal/core/ports"
	"fleet/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived collaborators and builds handlers from them.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	clock      kernel.Clock

	authorizer *directoryrepo.GormAuthorizer
	directory  *directoryrepo.GormDirectory
	auditLog   *auditrepo.GormAuditLog
	fiscal     *facturapi.Client
	storage    ports.ObjectStorage
	trigger    *commands.AsyncInvoiceTrigger
}

func NewCompositionRoot(ctx context.Context, config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	fiscal, err := facturapi.NewClient(facturapi.Config{
		BaseURL: config.FacturapiAPIURL,
		APIKey:  config.FacturapiAPIKey,
		Timeout: config.FacturapiTimeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("fiscal client: %w", err)
	}

	storage, err := newObjectStorage(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("object storage: %w", err)
	}

	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		clock:      kernel.SystemClock{},
		authorizer: directoryrepo.NewGormAuthorizer(gormDB),
		directory:  directoryrepo.NewGormDirectory(gormDB),
		auditLog:   auditrepo.NewGormAuditLog(gormDB),
		fiscal:     fiscal,
		storage:    storage,
	}
	c.trigger = commands.NewAsyncInvoiceTrigger(c.CreateCreateInvoiceFromTripCommandHandler(), config.InvoiceTriggerTimeout, logger)
	return c, nil
}

func newObjectStorage(ctx context.Context, config Config) (ports.ObjectStorage, error) {
	if config.StorageDriver == StorageDriverS3 {
		return s3store.New(ctx, s3store.Config{
			Bucket:    config.S3Bucket,
			Region:    config.S3Region,
			Endpoint:  config.S3Endpoint,
			AccessKey: config.S3AccessKey,
			SecretKey: config.S3SecretKey,
			PublicURL: config.StoragePublicURL,
		})
	}
	return diskstore.New(config.StorageDir, config.StoragePublicURL)
}

// InvoiceTrigger is shared by every trip creation so shutdown can wait on it.
func (c *CompositionRoot) InvoiceTrigger() *commands.AsyncInvoiceTrigger { return c.trigger }

func (c *CompositionRoot) tripUoWFactory() commands.TripUoWFactory {
	return FuncTripUoWFactory(func() commands.TripUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) invoiceUoWFactory() commands.InvoiceUoWFactory {
	return FuncInvoiceUoWFactory(func() commands.InvoiceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateTripCommandHandler() commands.CreateTripCommandHandler {
	return commands.NewCreateTripCommandHandler(c.tripUoWFactory(), c.authorizer, c.directory, c.trigger, c.clock)
}

func (c *CompositionRoot) CreateUpdateTripCommandHandler() commands.UpdateTripCommandHandler {
	return commands.NewUpdateTripCommandHandler(c.tripUoWFactory(), c.authorizer, c.clock)
}

func (c *CompositionRoot) CreateUpdateTripStatusCommandHandler() commands.UpdateTripStatusCommandHandler {
	return commands.NewUpdateTripStatusCommandHandler(c.tripUoWFactory(), c.authorizer, c.clock)
}

func (c *CompositionRoot) CreateCancelTripCommandHandler() commands.CancelTripCommandHandler {
	return commands.NewCancelTripCommandHandler(c.tripUoWFactory(), c.authorizer, c.clock)
}

func (c *CompositionRoot) CreateReconcileTripStatusesCommandHandler() commands.ReconcileTripStatusesCommandHandler {
	return commands.NewReconcileTripStatusesCommandHandler(c.tripUoWFactory())
}

func (c *CompositionRoot) CreateCreateInvoiceFromTripCommandHandler() commands.CreateInvoiceFromTripCommandHandler {
	return commands.NewCreateInvoiceFromTripCommandHandler(c.invoiceUoWFactory(), c.authorizer, c.directory, c.clock, c.logger)
}

func (c *CompositionRoot) CreateStampInvoiceCommandHandler() commands.StampInvoiceCommandHandler {
	return commands.NewStampInvoiceCommandHandler(
		c.invoiceUoWFactory(),
		c.authorizer,
		c.directory,
		c.fiscal,
		c.storage,
		services.NewFiscalDocumentBuilder(),
		c.clock,
	).WithIssueTimeout(c.config.StampTimeout)
}

func (c *CompositionRoot) CreateRetryInvoiceStampCommandHandler() commands.RetryInvoiceStampCommandHandler {
	return commands.NewRetryInvoiceStampCommandHandler(c.invoiceUoWFactory(), c.authorizer, c.clock)
}

func (c *CompositionRoot) CreateCancelInvoiceCommandHandler() commands.CancelInvoiceCommandHandler {
	return commands.NewCancelInvoiceCommandHandler(c.invoiceUoWFactory(), c.authorizer, c.fiscal, c.clock)
}

func (c *CompositionRoot) CreateSweepPendingInvoicesCommandHandler() commands.SweepPendingInvoicesCommandHandler {
	return commands.NewSweepPendingInvoicesCommandHandler(c.invoiceUoWFactory())
}

func (c *CompositionRoot) CreateGetTripQueryHandler() queries.GetTripQueryHandler {
	return queries.NewGetTripQueryHandler(c.gormDB, c.authorizer)
}

func (c *CompositionRoot) CreateListTripsQueryHandler() queries.ListTripsQueryHandler {
	return queries.NewListTripsQueryHandler(c.gormDB, c.authorizer)
}

func (c *CompositionRoot) CreateGetInvoiceQueryHandler() queries.GetInvoiceQueryHandler {
	return queries.NewGetInvoiceQueryHandler(c.gormDB, c.authorizer)
}

func (c *CompositionRoot) CreateListInvoicesQueryHandler() queries.ListInvoicesQueryHandler {
	return queries.NewListInvoicesQueryHandler(c.gormDB, c.authorizer)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.UseCases{
		CreateTrip:       c.CreateCreateTripCommandHandler(),
		UpdateTrip:       c.CreateUpdateTripCommandHandler(),
		UpdateTripStatus: c.CreateUpdateTripStatusCommandHandler(),
		CancelTrip:       c.CreateCancelTripCommandHandler(),
		GetTrip:          c.CreateGetTripQueryHandler(),
		ListTrips:        c.CreateListTripsQueryHandler(),

		CreateInvoiceFromTrip: c.CreateCreateInvoiceFromTripCommandHandler(),
		StampInvoice:          c.CreateStampInvoiceCommandHandler(),
		RetryInvoiceStamp:     c.CreateRetryInvoiceStampCommandHandler(),
		CancelInvoice:         c.CreateCancelInvoiceCommandHandler(),
		GetInvoice:            c.CreateGetInvoiceQueryHandler(),
		ListInvoices:          c.CreateListInvoicesQueryHandler(),
	}, c.auditLog, c.clock, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewTripReconcileJob(
			c.CreateReconcileTripStatusesCommandHandler(),
			c.clock,
			c.config.ReconcileSchedule,
			c.logger,
		),
		jobs.NewPendingInvoiceSweepJob(
			c.CreateSweepPendingInvoicesCommandHandler(),
			c.clock,
			c.config.PendingInvoiceSweepSchedule,
			c.config.PendingInvoiceMaxAge,
			c.logger,
		),
	)
}

type FuncTripUoWFactory func() commands.TripUoW

func (f FuncTripUoWFactory) Create() commands.TripUoW {
	return f()
}

type FuncInvoiceUoWFactory func() commands.InvoiceUoW

func (f FuncInvoiceUoWFactory) Create() commands.InvoiceUoW {
	return f()
}
