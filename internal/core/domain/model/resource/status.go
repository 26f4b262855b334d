package resource

import (
	"fmt"

	"fleet/internal/pkg/errs"
)

// DriverStatus is the availability of a driver.
type DriverStatus int

const (
	UnknownDriverStatus DriverStatus = iota
	DriverAvailable
	DriverOnTrip
	DriverDeactivated
)

var driverStatusNames = map[DriverStatus]string{
	DriverAvailable:   "AVAILABLE",
	DriverOnTrip:      "ON_TRIP",
	DriverDeactivated: "DEACTIVATED",
}

func (s DriverStatus) String() string {
	if name, ok := driverStatusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseDriverStatus maps the persisted name back to the enum.
func ParseDriverStatus(name string) (DriverStatus, error) {
	for s, n := range driverStatusNames {
		if n == name {
			return s, nil
		}
	}
	return UnknownDriverStatus, errs.NewValueIsInvalidErrorWithCause("driver status", fmt.Errorf("%q is not a valid status", name))
}

// VehicleStatus is the availability of a vehicle. Only Available vehicles can be reserved;
// Maintenance and Decommissioned are set by fleet management outside trip coordination.
type VehicleStatus int

const (
	UnknownVehicleStatus VehicleStatus = iota
	VehicleAvailable
	VehicleInUse
	VehicleMaintenance
	VehicleDecommissioned
)

var vehicleStatusNames = map[VehicleStatus]string{
	VehicleAvailable:      "AVAILABLE",
	VehicleInUse:          "IN_USE",
	VehicleMaintenance:    "MAINTENANCE",
	VehicleDecommissioned: "DECOMMISSIONED",
}

func (s VehicleStatus) String() string {
	if name, ok := vehicleStatusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func ParseVehicleStatus(name string) (VehicleStatus, error) {
	for s, n := range vehicleStatusNames {
		if n == name {
			return s, nil
		}
	}
	return UnknownVehicleStatus, errs.NewValueIsInvalidErrorWithCause("vehicle status", fmt.Errorf("%q is not a valid status", name))
}

// AvailableStatus is the persisted status a resource of kind k must have to be reserved.
func AvailableStatus(k Kind) string {
	if k == Driver {
		return DriverAvailable.String()
	}
	return VehicleAvailable.String()
}

// CommittedStatus is the persisted status of a resource of kind k while a trip holds it.
func CommittedStatus(k Kind) string {
	if k == Driver {
		return DriverOnTrip.String()
	}
	return VehicleInUse.String()
}
