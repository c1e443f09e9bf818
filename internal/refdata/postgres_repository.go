package refdata

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository loads reference datasets from PostgreSQL. It is a
// loader, not a live repository: tables are read in full at startup and the
// pool is not touched afterwards.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL reference-data loader.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Load reads all four reference tables.
func (r *PostgresRepository) Load(ctx context.Context) (*Tables, error) {
	locodes, err := r.LoadLocodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load locodes: %w", err)
	}
	airports, err := r.LoadAirports(ctx)
	if err != nil {
		return nil, fmt.Errorf("load airports: %w", err)
	}
	factors, err := r.LoadEmissionFactors(ctx)
	if err != nil {
		return nil, fmt.Errorf("load emission factors: %w", err)
	}
	intensity, err := r.LoadElectricityIntensity(ctx)
	if err != nil {
		return nil, fmt.Errorf("load electricity intensity: %w", err)
	}

	return &Tables{
		Locodes:   locodes,
		Airports:  airports,
		Factors:   factors,
		Intensity: intensity,
	}, nil
}

// LoadLocodes reads the UN/LOCODE table.
func (r *PostgresRepository) LoadLocodes(ctx context.Context) (*LocodeTable, error) {
	rows, err := r.pool.Query(ctx, `SELECT locode, coordinates FROM un_locodes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Locode
	for rows.Next() {
		var l Locode
		if err := rows.Scan(&l.Code, &l.Coordinates); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewLocodeTable(out), nil
}

// LoadAirports reads the airport coordinate table.
func (r *PostgresRepository) LoadAirports(ctx context.Context) (*AirportTable, error) {
	rows, err := r.pool.Query(ctx, `SELECT iata, icao, latitude, longitude FROM airports`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Airport
	for rows.Next() {
		var a Airport
		if err := rows.Scan(&a.IATA, &a.ICAO, &a.Latitude, &a.Longitude); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewAirportTable(out), nil
}

// LoadEmissionFactors reads the emission-factor table.
func (r *PostgresRepository) LoadEmissionFactors(ctx context.Context) (*EmissionFactorTable, error) {
	query := `
		SELECT method, fuel, load, trade_lane, is_electric, emission_factor, distance_calculation_method
		FROM emission_factors
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EmissionFactor
	for rows.Next() {
		var f EmissionFactor
		if err := rows.Scan(&f.Method, &f.Fuel, &f.Load, &f.TradeLane, &f.IsElectric, &f.Factor, &f.DistanceMethod); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewEmissionFactorTable(out), nil
}

// LoadElectricityIntensity reads the grid-intensity table.
func (r *PostgresRepository) LoadElectricityIntensity(ctx context.Context) (*ElectricityIntensityTable, error) {
	rows, err := r.pool.Query(ctx, `SELECT country_code, value FROM electricity_intensity`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ElectricityIntensity
	for rows.Next() {
		var e ElectricityIntensity
		if err := rows.Scan(&e.CountryCode, &e.Value); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewElectricityIntensityTable(out), nil
}
