package pgtest

import (
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/team"
	"fleet/internal/core/domain/model/trip"

	"gorm.io/gorm"
)

// Team is a seeded team with one member and one of each resource.
type Team struct {
	ID      kernel.UUID
	Member  kernel.UUID
	Client  kernel.UUID
	Driver  kernel.UUID
	Vehicle kernel.UUID
	Route   kernel.UUID
}

// Assignment references the seeded client, driver, vehicle and route.
func (t Team) Assignment() trip.Assignment {
	return trip.Assignment{Team: t.ID, Client: t.Client, Driver: t.Driver, Vehicle: t.Vehicle, Route: t.Route}
}

// SeedTeam inserts a team named name whose member holds role, a client with an address,
// an available driver and vehicle and a route. Names are prefixed with name so
// searches can tell teams apart.
func SeedTeam(db *gorm.DB, name string, role team.Role) (Team, error) {
	t := Team{
		ID:      kernel.NewUUID(),
		Member:  kernel.NewUUID(),
		Client:  kernel.NewUUID(),
		Driver:  kernel.NewUUID(),
		Vehicle: kernel.NewUUID(),
		Route:   kernel.NewUUID(),
	}
	addressID := kernel.NewUUID()

	err := db.Transaction(func(tx *gorm.DB) error {
		stmts := []struct {
			sql  string
			args []any
		}{
			{`INSERT INTO teams (id, name) VALUES (?, ?)`, []any{t.ID.Bytes(), name}},
			{`INSERT INTO team_members (team_id, user_id, role) VALUES (?, ?, ?)`,
				[]any{t.ID.Bytes(), t.Member.Bytes(), role.String()}},
			{`INSERT INTO addresses (id, zip, street, city, state) VALUES (?, '64000', 'Av. Juarez 100', 'Monterrey', 'NL')`,
				[]any{addressID.Bytes()}},
			{`INSERT INTO clients (id, team_id, name, legal_name, email, tax_id, tax_system, address_id)
				VALUES (?, ?, ?, ?, 'billing@example.com', 'XAXX010101000', '601', ?)`,
				[]any{t.Client.Bytes(), t.ID.Bytes(), name + " Client", name + " Client SA de CV", addressID.Bytes()}},
			{`INSERT INTO drivers (id, team_id, name) VALUES (?, ?, ?)`,
				[]any{t.Driver.Bytes(), t.ID.Bytes(), name + " Driver"}},
			{`INSERT INTO vehicles (id, team_id, plate, brand, model) VALUES (?, ?, ?, 'Volvo', 'FH16')`,
				[]any{t.Vehicle.Bytes(), t.ID.Bytes(), name + "-PLATE"}},
			{`INSERT INTO routes (id, team_id, name) VALUES (?, ?, ?)`,
				[]any{t.Route.Bytes(), t.ID.Bytes(), name + " Route"}},
		}
		for _, s := range stmts {
			if err := tx.Exec(s.sql, s.args...).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return t, err
}

// SeedFiscalProfile gives the team fiscal settings.
func SeedFiscalProfile(db *gorm.DB, teamID kernel.UUID) error {
	return db.Exec(`INSERT INTO team_fiscal_profiles
		(team_id, legal_name, tax_id, default_product_key, default_product_description)
		VALUES (?, 'Fleet Ops SA de CV', 'FOP200101AAA', '78101802', 'Freight transport')`,
		teamID.Bytes()).Error
}

// SeedDriver adds another available driver to the team.
func SeedDriver(db *gorm.DB, teamID kernel.UUID, name string) (kernel.UUID, error) {
	id := kernel.NewUUID()
	err := db.Exec(`INSERT INTO drivers (id, team_id, name) VALUES (?, ?, ?)`, id.Bytes(), teamID.Bytes(), name).Error
	return id, err
}

// SeedVehicle adds another available vehicle to the team.
func SeedVehicle(db *gorm.DB, teamID kernel.UUID, plate string) (kernel.UUID, error) {
	id := kernel.NewUUID()
	err := db.Exec(`INSERT INTO vehicles (id, team_id, plate) VALUES (?, ?, ?)`, id.Bytes(), teamID.Bytes(), plate).Error
	return id, err
}

// ResourceState reads the status and holder of a driver or vehicle. table is "drivers" or "vehicles".
func ResourceState(db *gorm.DB, table string, id kernel.UUID) (status string, holder *kernel.UUID, err error) {
	var row struct {
		Status        string
		CurrentTripID *string
	}
	if err = db.Table(table).Select("status, current_trip_id").Where("id = ?", id.Bytes()).Take(&row).Error; err != nil {
		return "", nil, err
	}
	if row.CurrentTripID != nil {
		h, parseErr := kernel.UUIDFromString(*row.CurrentTripID)
		if parseErr != nil {
			return "", nil, parseErr
		}
		holder = &h
	}
	return row.Status, holder, nil
}
