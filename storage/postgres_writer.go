package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"rental-comps/models"
	"rental-comps/utils"
)

// insertColumns is the column list of one rental_comps row, in argument order.
var insertColumns = []string{
	"run_id", "rank", "comp_score", "address", "price", "beds", "baths", "sqft", "price_per_sqft",
	"zip", "days_listed", "url", "image_url", "lat", "lng", "geohash", "year_built", "highlights", "source",
}

// PostgresWriter persists ranked comps to PostgreSQL, one row per comp per run.
type PostgresWriter struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresWriter opens a connection to PostgreSQL, waits for it to accept
// connections, runs schema migrations and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do("postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db, logger: retry.Logger}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS rental_comps (
			id             SERIAL PRIMARY KEY,
			run_id         UUID          NOT NULL,
			rank           INTEGER       NOT NULL,
			comp_score     SMALLINT      NOT NULL,
			address        TEXT          NOT NULL,
			price          NUMERIC(10,2) NOT NULL,
			beds           NUMERIC(4,1),
			baths          NUMERIC(4,1),
			sqft           NUMERIC(10,2),
			price_per_sqft NUMERIC(10,2),
			zip            VARCHAR(10)   NOT NULL DEFAULT '',
			days_listed    TEXT          NOT NULL DEFAULT '',
			url            TEXT          NOT NULL,
			image_url      TEXT          NOT NULL DEFAULT '',
			lat            DOUBLE PRECISION,
			lng            DOUBLE PRECISION,
			geohash        VARCHAR(12)   NOT NULL DEFAULT '',
			year_built     INTEGER,
			highlights     TEXT[]        NOT NULL DEFAULT '{}',
			source         VARCHAR(50)   NOT NULL,
			created_at     TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
			UNIQUE (run_id, url)
		);

		CREATE INDEX IF NOT EXISTS idx_rental_comps_run     ON rental_comps(run_id);
		CREATE INDEX IF NOT EXISTS idx_rental_comps_zip     ON rental_comps(zip);
		CREATE INDEX IF NOT EXISTS idx_rental_comps_geohash ON rental_comps(geohash);
	`)
	return err
}

// Write batch-inserts the run's comps. Rows already stored for the run are kept.
func (pw *PostgresWriter) Write(run Run, comps []models.ScoredListing) error {
	const batchSize = 50
	for i := 0; i < len(comps); i += batchSize {
		end := min(i+batchSize, len(comps))
		query, args := buildInsertQuery(run.ID, i+1, comps[i:end])
		if _, err := pw.db.Exec(query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}
	if pw.logger != nil {
		pw.logger.Debug("[postgres] Stored %d comps for run %s", len(comps), run.ID)
	}
	return nil
}

// buildInsertQuery renders a multi-row insert for batch; firstRank is the rank of batch[0].
func buildInsertQuery(runID uuid.UUID, firstRank int, batch []models.ScoredListing) (string, []any) {
	cols := len(insertColumns)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*cols)

	for idx, l := range batch {
		placeholders := make([]string, cols)
		for c := range placeholders {
			placeholders[c] = "$" + strconv.Itoa(idx*cols+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		var pricePerSqft any
		if l.PricePerSqft != "" {
			pricePerSqft = l.PricePerSqft
		}
		var yearBuilt any
		if l.YearBuilt != nil {
			yearBuilt = *l.YearBuilt
		}
		highlights := l.Highlights
		if highlights == nil {
			highlights = []string{}
		}

		valueArgs = append(valueArgs,
			runID.String(), firstRank+idx, l.CompScore, l.Address, l.Price,
			nullable(l.Beds), nullable(l.Baths), nullable(l.Sqft), pricePerSqft,
			l.ZipCode, l.DaysListed, l.DetailURL, l.ImageURL,
			nullable(l.Latitude), nullable(l.Longitude), listingGeohash(l.Listing),
			yearBuilt, pq.Array(highlights), l.Source)
	}

	query := fmt.Sprintf(`
		INSERT INTO rental_comps (%s)
		VALUES %s
		ON CONFLICT (run_id, url) DO NOTHING
	`, strings.Join(insertColumns, ", "), strings.Join(valueStrings, ","))

	return query, valueArgs
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// FetchRun retrieves the comps stored for a run, best rank first.
func (pw *PostgresWriter) FetchRun(runID uuid.UUID) ([]models.ScoredListing, error) {
	rows, err := pw.db.Query(`
		SELECT comp_score, address, price, beds, baths, sqft, price_per_sqft, zip, days_listed,
		       url, image_url, lat, lng, year_built, highlights, source
		FROM rental_comps
		WHERE run_id = $1
		ORDER BY rank
	`, runID.String())
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch run: %w", err)
	}
	defer rows.Close()

	var comps []models.ScoredListing
	for rows.Next() {
		var (
			l                           models.ScoredListing
			beds, baths, sqft, lat, lng sql.NullFloat64
			ppsf                        sql.NullString
			yearBuilt                   sql.NullInt64
		)
		if err := rows.Scan(
			&l.CompScore, &l.Address, &l.Price, &beds, &baths, &sqft, &ppsf, &l.ZipCode, &l.DaysListed,
			&l.DetailURL, &l.ImageURL, &lat, &lng, &yearBuilt, pq.Array(&l.Highlights), &l.Source,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		l.Beds, l.Baths, l.Sqft = floatPtr(beds), floatPtr(baths), floatPtr(sqft)
		l.Latitude, l.Longitude = floatPtr(lat), floatPtr(lng)
		l.PricePerSqft = ppsf.String
		if yearBuilt.Valid {
			y := int(yearBuilt.Int64)
			l.YearBuilt = &y
		}
		comps = append(comps, l)
	}
	return comps, rows.Err()
}

// LatestRun returns the id of the most recently stored run.
func (pw *PostgresWriter) LatestRun() (uuid.UUID, error) {
	var id string
	err := pw.db.QueryRow(`SELECT run_id FROM rental_comps ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("postgres: latest run: %w", err)
	}
	return uuid.Parse(id)
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
