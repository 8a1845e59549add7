package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cge-corrientes/huella-backend-go/internal/pkg/database"
	"github.com/cge-corrientes/huella-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// upstreamFixtures stands in for the HR directory and the punch view, which
// production databases receive from other schemas.
const upstreamFixtures = `
CREATE SCHEMA IF NOT EXISTS huella;
CREATE TABLE IF NOT EXISTS huella.legajo (
    cod           TEXT PRIMARY KEY,
    nombre        TEXT NOT NULL,
    area          TEXT,
    turno         TEXT,
    estado        TEXT,
    dni           TEXT,
    email         TEXT,
    fecha_ingreso DATE,
    inactivo      BOOLEAN DEFAULT FALSE
);
CREATE TABLE IF NOT EXISTS huella.v_empleados_activos (
    legajo TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS huella.v_asistencia_diaria (
    legajo           TEXT NOT NULL,
    dia              DATE NOT NULL,
    entrada          TIME,
    salida           TIME,
    total_marcas     INTEGER,
    horas_trabajadas NUMERIC(5, 2)
);
`

// TestDatabaseSetup holds a migrated test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it is
// not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err, "failed to connect to test database")

	_, err = db.Exec(ctx, upstreamFixtures)
	require.NoError(t, err)
	require.NoError(t, postgresql.Migrate(ctx, db))

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes every row from the registries and fixtures.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"huella.feriados",
		"huella.config_jornada",
		"huella.excepciones_asistencia",
		"huella.whitelist_empleados",
		"huella.legajo",
		"huella.v_empleados_activos",
		"huella.v_asistencia_diaria",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (t *TestDatabaseSetup) AddEmployee(tb testing.TB, legajo, name string, active bool) {
	tb.Helper()
	ctx := context.Background()
	_, err := t.DB.Exec(ctx, `INSERT INTO huella.legajo (cod, nombre, inactivo) VALUES ($1, $2, $3)`, legajo, name, !active)
	require.NoError(tb, err)
	if active {
		_, err = t.DB.Exec(ctx, `INSERT INTO huella.v_empleados_activos (legajo) VALUES ($1)`, legajo)
		require.NoError(tb, err)
	}
}

func (t *TestDatabaseSetup) AddPunches(tb testing.TB, legajo, day, in, out string, total int, hours *float64) {
	tb.Helper()
	_, err := t.DB.Exec(context.Background(), `
		INSERT INTO huella.v_asistencia_diaria (legajo, dia, entrada, salida, total_marcas, horas_trabajadas)
		VALUES ($1, $2::date, NULLIF($3, '')::time, NULLIF($4, '')::time, $5, $6)
	`, legajo, day, in, out, total, hours)
	require.NoError(tb, err)
}

// Close closes the database connection
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
