// Package kernel provides the shared value objects of the fleet domain.
//
// The package includes:
//   - UUID: identifier of trips, invoices, teams, drivers, vehicles and actors
//   - Money: a non-negative decimal amount rounded to cents, used for trip prices and invoice totals
//   - Clock: the source of "now" for time-driven rules (initial trip status, reconciliation)
//
// Values are immutable and safe for concurrent use.
package kernel
