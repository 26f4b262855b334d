// Package trip contains the Trip aggregate and its status machine.
//
// A trip binds one driver and one vehicle of a team to a scheduled journey between
// StartAt and EndAt. While the status is NotStarted or InProgress both resources are
// committed to the trip; entering any terminal status from a non-terminal one yields
// a Transition with ReleasesResources set, and the caller must release both resources
// in the same transaction that persists the status.
//
// Transitions:
//
//	NotStarted <──> InProgress
//	     │              │
//	     └──────┬───────┘
//	            ├──> CompletedOnTime <──> CompletedLate
//	            └──> Cancelled
//
// Writing the current status again is a no-op. Trips are never deleted.
package trip
