// Package invoice contains the Invoice aggregate, its status machine and the
// value types exchanged with the fiscal document service.
//
// Lifecycle:
//
//	Draft ──> Pending ──┬──> Stamped ──> Cancelled
//	  ^                 │
//	  └──── Error <─────┘
//
// Pending is persisted before the fiscal service is called so a crash mid-stamp
// leaves a visible marker; the pending sweep moves such invoices to Error.
// There is at most one invoice per trip.
package invoice
