package commands_test

import (
	"testing"
	"time"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepPendingInvoicesCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newInvoiceCommandFixture()
	maxAge := 30 * time.Minute
	stuck := restoreInvoice(invoice.Pending, kernel.NewUUID(), kernel.NewUUID(), testNow.Add(-time.Hour))
	// Returned by a stale read but touched since: must stay Pending.
	fresh := restoreInvoice(invoice.Pending, kernel.NewUUID(), kernel.NewUUID(), testNow.Add(-time.Minute))

	f.expectTx(t)
	f.invoices.On("ListStuckPending", ctx, testNow.Add(-maxAge)).Return([]*invoice.Invoice{stuck, fresh}, nil).Once()
	f.invoices.On("Update", ctx, stuck).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewSweepPendingInvoicesCommand(testNow, maxAge)
	require.NoError(t, err)
	failed, err := commands.NewSweepPendingInvoicesCommandHandler(f.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	assert.Equal(t, invoice.Error, stuck.Status())
	assert.Contains(t, stuck.FailureReason(), "30m0s")
	assert.Equal(t, invoice.Pending, fresh.Status())
	f.invoices.AssertExpectations(t)
}

func TestNewSweepPendingInvoicesCommand(t *testing.T) {
	_, err := commands.NewSweepPendingInvoicesCommand(testNow, 0)

	assert.Error(t, err)
}
