package commands_test

import (
	"testing"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/team"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelInvoiceCommandHandler_Handle(t *testing.T) {
	t.Run("should cancel remotely then locally with the default reason", func(t *testing.T) {
		ctx := t.Context()
		f := newInvoiceCommandFixture()
		stamped := restoreInvoice(invoice.Stamped, kernel.NewUUID(), kernel.NewUUID(), testNow)
		f.expectTx(t)
		mock.InOrder(
			f.invoices.On("GetForUpdate", ctx, stamped.ID()).Return(stamped, nil).Once(),
			f.auth.On("HasRole", ctx, f.actor, stamped.TeamID(), team.User).Return(true, nil).Once(),
			f.fiscal.On("CancelDocument", ctx, "ext-1", invoice.DefaultCancellationReason).Return(nil).Once(),
			f.invoices.On("Update", ctx, stamped).Return(nil).Once(),
			f.uow.On("Commit", ctx).Return(nil).Once(),
		)

		cmd, err := commands.NewCancelInvoiceCommand(&f.actor, stamped.ID(), "  ")
		require.NoError(t, err)
		inv, err := commands.NewCancelInvoiceCommandHandler(f.factory, f.auth, f.fiscal, f.clock).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, invoice.Cancelled, inv.Status())
		assert.Equal(t, "01", inv.CancellationReason())
		require.NotNil(t, inv.CancelledAt())
		assert.Equal(t, testNow, *inv.CancelledAt())
		f.fiscal.AssertExpectations(t)
	})

	t.Run("should keep the invoice stamped when the remote cancel fails", func(t *testing.T) {
		ctx := t.Context()
		f := newInvoiceCommandFixture()
		stamped := restoreInvoice(invoice.Stamped, kernel.NewUUID(), kernel.NewUUID(), testNow)
		f.expectTx(t)
		f.invoices.On("GetForUpdate", ctx, stamped.ID()).Return(stamped, nil).Once()
		f.fiscal.On("CancelDocument", ctx, "ext-1", "02").Return(assert.AnError).Once()

		cmd, err := commands.NewCancelInvoiceCommand(nil, stamped.ID(), "02")
		require.NoError(t, err)
		_, err = commands.NewCancelInvoiceCommandHandler(f.factory, f.auth, f.fiscal, f.clock).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrExternalService)
		assert.Equal(t, invoice.Stamped, stamped.Status())
		f.invoices.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should reject cancelling a draft", func(t *testing.T) {
		ctx := t.Context()
		f := newInvoiceCommandFixture()
		draft := restoreInvoice(invoice.Draft, kernel.NewUUID(), kernel.NewUUID(), testNow)
		f.expectTx(t)
		f.invoices.On("GetForUpdate", ctx, draft.ID()).Return(draft, nil).Once()

		cmd, err := commands.NewCancelInvoiceCommand(nil, draft.ID(), "")
		require.NoError(t, err)
		_, err = commands.NewCancelInvoiceCommandHandler(f.factory, f.auth, f.fiscal, f.clock).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrStateIsInvalid)
		f.fiscal.AssertNotCalled(t, "CancelDocument", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should hide invoices of other teams", func(t *testing.T) {
		ctx := t.Context()
		f := newInvoiceCommandFixture()
		stamped := restoreInvoice(invoice.Stamped, kernel.NewUUID(), kernel.NewUUID(), testNow)
		f.expectTx(t)
		f.invoices.On("GetForUpdate", ctx, stamped.ID()).Return(stamped, nil).Once()
		f.auth.On("HasRole", ctx, f.actor, stamped.TeamID(), team.User).Return(false, nil).Once()

		cmd, err := commands.NewCancelInvoiceCommand(&f.actor, stamped.ID(), "")
		require.NoError(t, err)
		_, err = commands.NewCancelInvoiceCommandHandler(f.factory, f.auth, f.fiscal, f.clock).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestRetryInvoiceStampCommandHandler_Handle(t *testing.T) {
	t.Run("should return a failed invoice to draft", func(t *testing.T) {
		ctx := t.Context()
		f := newInvoiceCommandFixture()
		failed := restoreInvoice(invoice.Error, kernel.NewUUID(), kernel.NewUUID(), testNow)
		f.expectTx(t)
		f.invoices.On("GetForUpdate", ctx, failed.ID()).Return(failed, nil).Once()
		f.invoices.On("Update", ctx, failed).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewRetryInvoiceStampCommand(nil, failed.ID())
		require.NoError(t, err)
		inv, err := commands.NewRetryInvoiceStampCommandHandler(f.factory, f.auth, f.clock).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, invoice.Draft, inv.Status())
	})

	t.Run("should reject retrying a stamped invoice", func(t *testing.T) {
		ctx := t.Context()
		f := newInvoiceCommandFixture()
		stamped := restoreInvoice(invoice.Stamped, kernel.NewUUID(), kernel.NewUUID(), testNow)
		f.expectTx(t)
		f.invoices.On("GetForUpdate", ctx, stamped.ID()).Return(stamped, nil).Once()

		cmd, err := commands.NewRetryInvoiceStampCommand(nil, stamped.ID())
		require.NoError(t, err)
		_, err = commands.NewRetryInvoiceStampCommandHandler(f.factory, f.auth, f.clock).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrStateIsInvalid)
	})
}
