// Package jobs provides scheduled background tasks for the fleet service.
//
// Jobs are cron-driven using github.com/robfig/cron/v3 with seconds precision, so
// schedules take six fields ("0 */5 * * * *") or a descriptor ("@every 1m").
//
// # Available Jobs
//
// 1. TripReconcileJob - starts trips whose start time has passed and completes
// overdue trips as late, releasing their driver and vehicle
// 2. PendingInvoiceSweepJob - moves invoices stuck in PENDING to ERROR so they can be retried
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileJob, sweepJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Run failures are logged and the next tick runs normally. A run that is still in
// progress when its next tick fires causes that tick to be skipped.
package jobs
