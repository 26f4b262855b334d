// Package resource models the drivers and vehicles a trip commits.
//
// A resource is identified by a Ref (kind + id). Each kind has its own status enum;
// the "committed" status (OnTrip for drivers, InUse for vehicles) is held for exactly
// one non-terminal trip at a time. The aggregate rows themselves are owned by
// CRUD services outside this module: this package only carries what reservation
// and release need.
package resource
