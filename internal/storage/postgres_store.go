package storage

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore archives trip records in Postgres.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	// quick ping
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) SaveTrip(rec TripRecord) error {
	_, err := p.db.Exec(`INSERT INTO trips(id, rider_id, driver_id, pickup_lat, pickup_lon, dropoff_lat, dropoff_lon, product, fare, status, created_at, updated_at) VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		rec.ID, rec.RiderID, rec.DriverID, rec.Pickup.Lat, rec.Pickup.Lon, rec.Dropoff.Lat, rec.Dropoff.Lon, string(rec.Product), rec.Fare, string(rec.Status), rec.Created, rec.Updated)
	return err
}

func (p *PostgresStore) UpdateTrip(rec TripRecord) error {
	_, err := p.db.Exec(`UPDATE trips SET driver_id=$1, status=$2, updated_at=$3 WHERE id=$4`,
		rec.DriverID, string(rec.Status), time.Now(), rec.ID)
	return err
}
