package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Coder-aditya-04/Jal-Rakshya/internal/domain"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// A single connection keeps :memory: databases coherent and sidesteps
	// SQLITE_BUSY on concurrent writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS water_records (
			location TEXT NOT NULL,
			year INTEGER NOT NULL,
			groundwater_level REAL,
			depletion_rate REAL,
			rainfall REAL,
			ph REAL,
			agricultural_usage REAL,
			industrial_usage REAL,
			household_usage REAL,
			consumption REAL,
			scarcity_level TEXT,
			water_score REAL,
			PRIMARY KEY (location, year)
		);

		CREATE INDEX IF NOT EXISTS idx_water_records_location ON water_records(location);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) UpsertRecord(ctx context.Context, rec domain.WaterRecord) error {
	const query = `
		INSERT INTO water_records (
			location, year, groundwater_level, depletion_rate, rainfall, ph,
			agricultural_usage, industrial_usage, household_usage, consumption,
			scarcity_level, water_score
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (location, year) DO UPDATE SET
			groundwater_level = excluded.groundwater_level,
			depletion_rate = excluded.depletion_rate,
			rainfall = excluded.rainfall,
			ph = excluded.ph,
			agricultural_usage = excluded.agricultural_usage,
			industrial_usage = excluded.industrial_usage,
			household_usage = excluded.household_usage,
			consumption = excluded.consumption,
			scarcity_level = excluded.scarcity_level,
			water_score = excluded.water_score
	`

	var scarcity any
	if rec.ScarcityLevel != "" {
		scarcity = string(rec.ScarcityLevel)
	}

	_, err := s.db.ExecContext(ctx, query,
		rec.Location, rec.Year,
		rec.GroundwaterLevel, rec.DepletionRate, rec.Rainfall, rec.PH,
		rec.AgriculturalUsage, rec.IndustrialUsage, rec.HouseholdUsage, rec.Consumption,
		scarcity, rec.WaterScore,
	)
	if err != nil {
		return fmt.Errorf("error upserting record for %s/%d: %w", rec.Location, rec.Year, err)
	}
	return nil
}

func (s *SQLiteDB) History(ctx context.Context, location string) ([]domain.WaterRecord, error) {
	const query = selectColumns + ` WHERE location = ? ORDER BY year ASC`

	rows, err := s.db.QueryContext(ctx, query, location)
	if err != nil {
		return nil, fmt.Errorf("error querying history for %s: %w", location, err)
	}
	defer rows.Close()

	var records []domain.WaterRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteDB) Latest(ctx context.Context, location string) (domain.WaterRecord, error) {
	const query = selectColumns + ` WHERE location = ? ORDER BY year DESC LIMIT 1`

	rows, err := s.db.QueryContext(ctx, query, location)
	if err != nil {
		return domain.WaterRecord{}, fmt.Errorf("error querying latest record for %s: %w", location, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.WaterRecord{}, err
		}
		return domain.WaterRecord{}, ErrNotFound
	}
	return scanRecord(rows)
}

func (s *SQLiteDB) Locations(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT location FROM water_records ORDER BY location ASC`)
	if err != nil {
		return nil, fmt.Errorf("error querying locations: %w", err)
	}
	defer rows.Close()

	var locations []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

const selectColumns = `
	SELECT location, year, groundwater_level, depletion_rate, rainfall, ph,
		agricultural_usage, industrial_usage, household_usage, consumption,
		scarcity_level, water_score
	FROM water_records`

func scanRecord(rows *sql.Rows) (domain.WaterRecord, error) {
	var (
		rec      domain.WaterRecord
		scarcity sql.NullString
	)
	err := rows.Scan(
		&rec.Location, &rec.Year,
		&rec.GroundwaterLevel, &rec.DepletionRate, &rec.Rainfall, &rec.PH,
		&rec.AgriculturalUsage, &rec.IndustrialUsage, &rec.HouseholdUsage, &rec.Consumption,
		&scarcity, &rec.WaterScore,
	)
	if err != nil {
		return domain.WaterRecord{}, fmt.Errorf("error scanning record: %w", err)
	}
	if scarcity.Valid {
		rec.ScarcityLevel = domain.ScarcityLevel(scarcity.String)
	}
	return rec, nil
}
