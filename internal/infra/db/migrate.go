package db

import (
	"context"
	"database/sql"
	"fmt"
)

// MigrateUp creates the back-office schema on the given pool.
// Statements are idempotent so the same migration runs against both the
// production and simulation targets.
func MigrateUp(ctx context.Context, pool *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS members (
    id         SERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    email      TEXT,
    contact    TEXT,
    dob        DATE,
    sex        VARCHAR(10),
    remarks    TEXT,
    address    TEXT,
    nric       VARCHAR(20),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS care_packages (
    id                   SERIAL PRIMARY KEY,
    care_package_name    TEXT NOT NULL,
    care_package_remarks TEXT,
    care_package_price   NUMERIC(12,2) NOT NULL DEFAULT 0,
    is_customizable      BOOLEAN NOT NULL DEFAULT FALSE,
    status               VARCHAR(20) NOT NULL DEFAULT 'ENABLED',
    created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS care_package_item_details (
    id              SERIAL PRIMARY KEY,
    care_package_id INTEGER NOT NULL REFERENCES care_packages(id) ON DELETE CASCADE,
    service_name    TEXT NOT NULL,
    quantity        INTEGER NOT NULL DEFAULT 1,
    price           NUMERIC(12,2) NOT NULL DEFAULT 0,
    discount        NUMERIC(5,2) NOT NULL DEFAULT 0
)`,
		`CREATE TABLE IF NOT EXISTS member_vouchers (
    id                  SERIAL PRIMARY KEY,
    member_id           INTEGER NOT NULL REFERENCES members(id),
    member_voucher_name TEXT NOT NULL,
    current_balance     NUMERIC(12,2) NOT NULL DEFAULT 0,
    starting_balance    NUMERIC(12,2) NOT NULL DEFAULT 0,
    status              VARCHAR(20) NOT NULL DEFAULT 'ENABLED',
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS payment_methods (
    id                   SERIAL PRIMARY KEY,
    payment_method_name  TEXT NOT NULL UNIQUE,
    is_enabled           BOOLEAN NOT NULL DEFAULT TRUE,
    is_revenue           BOOLEAN NOT NULL DEFAULT TRUE,
    show_on_payment_page BOOLEAN NOT NULL DEFAULT TRUE,
    created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS system_parameters (
    id             INTEGER PRIMARY KEY,
    is_simulation  BOOLEAN NOT NULL DEFAULT FALSE,
    start_date_utc TIMESTAMPTZ,
    end_date_utc   TIMESTAMPTZ,
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`INSERT INTO system_parameters (id, is_simulation)
     VALUES (1, FALSE) ON CONFLICT (id) DO NOTHING`,
		`CREATE TABLE IF NOT EXISTS sessions (
    sid        VARCHAR(64) PRIMARY KEY,
    sess       JSONB NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL
)`,
		// seek pagination runs on the (created_at, id) composite
		`CREATE INDEX IF NOT EXISTS idx_members_created_at_id ON members(created_at, id)`,
		`CREATE INDEX IF NOT EXISTS idx_care_packages_created_at_id ON care_packages(created_at, id)`,
		`CREATE INDEX IF NOT EXISTS idx_member_vouchers_created_at_id ON member_vouchers(created_at, id)`,
		`CREATE INDEX IF NOT EXISTS idx_member_vouchers_member_id ON member_vouchers(member_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
	}

	for _, stmt := range statements {
		if _, err := pool.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// set_simulation persists the toggle and reports the stored value.
	// CREATE OR REPLACE keeps this idempotent across restarts.
	const setSimulationFn = `
CREATE OR REPLACE FUNCTION set_simulation(p_enabled BOOLEAN, p_start TIMESTAMPTZ, p_end TIMESTAMPTZ)
RETURNS BOOLEAN AS $$
BEGIN
    UPDATE system_parameters
    SET is_simulation = p_enabled,
        start_date_utc = p_start,
        end_date_utc = p_end,
        updated_at = now()
    WHERE id = 1;
    RETURN p_enabled;
END;
$$ LANGUAGE plpgsql`
	if _, err := pool.ExecContext(ctx, setSimulationFn); err != nil {
		return fmt.Errorf("migrate: create set_simulation: %w", err)
	}

	return nil
}
