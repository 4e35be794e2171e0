package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/couchcryptid/dealer-locator-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dealerColumns = `id, name, street, city, state, postal_code, lat, lon,
	phone, website, hours, services, review_rating, review_count, review_source`

// DealerStore implements domain.DealerSource on the dealers table.
type DealerStore struct {
	pool *pgxpool.Pool
}

// NewDealerStore creates a store on an open pool.
func NewDealerStore(pool *pgxpool.Pool) *DealerStore {
	return &DealerStore{pool: pool}
}

// ListDealers returns every dealer ordered by ID.
func (s *DealerStore) ListDealers(ctx context.Context) ([]domain.Dealer, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+dealerColumns+` FROM dealers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query dealers: %w", err)
	}
	defer rows.Close()

	dealers := make([]domain.Dealer, 0)
	for rows.Next() {
		d, err := scanDealer(rows)
		if err != nil {
			return nil, err
		}
		dealers = append(dealers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dealers: %w", err)
	}
	return dealers, nil
}

func (s *DealerStore) GetDealer(ctx context.Context, id string) (domain.Dealer, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+dealerColumns+` FROM dealers WHERE id = $1`, id)
	d, err := scanDealer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Dealer{}, domain.ErrDealerNotFound
	}
	return d, err
}

func (s *DealerStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// UpsertDealers inserts or replaces dealers in a single transaction.
func (s *DealerStore) UpsertDealers(ctx context.Context, dealers []domain.Dealer) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, d := range dealers {
			args, err := dealerArgs(d)
			if err != nil {
				return err
			}
			batch.Queue(upsertDealerSQL, args...)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("upsert dealers: %w", err)
		}
		return nil
	})
}

const upsertDealerSQL = `
INSERT INTO dealers (` + dealerColumns + `, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now())
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	street = EXCLUDED.street,
	city = EXCLUDED.city,
	state = EXCLUDED.state,
	postal_code = EXCLUDED.postal_code,
	lat = EXCLUDED.lat,
	lon = EXCLUDED.lon,
	phone = EXCLUDED.phone,
	website = EXCLUDED.website,
	hours = EXCLUDED.hours,
	services = EXCLUDED.services,
	review_rating = EXCLUDED.review_rating,
	review_count = EXCLUDED.review_count,
	review_source = EXCLUDED.review_source,
	updated_at = now()`

func dealerArgs(d domain.Dealer) ([]any, error) {
	var hours []byte
	if d.Hours != nil {
		var err error
		if hours, err = json.Marshal(d.Hours); err != nil {
			return nil, fmt.Errorf("encode hours for %q: %w", d.ID, err)
		}
	}

	services := d.Services
	if services == nil {
		services = []string{}
	}

	var rating *float64
	var count *int32
	var source *string
	if d.Reviews != nil {
		c := int32(d.Reviews.Count)
		rating, count, source = &d.Reviews.Rating, &c, &d.Reviews.Source
	}

	return []any{
		d.ID, d.Name, d.Address.Street, d.Address.City, d.Address.State, d.Address.PostalCode,
		d.Coordinates.Lat, d.Coordinates.Lon, d.Phone, d.Website, hours, services,
		rating, count, source,
	}, nil
}

func scanDealer(row pgx.Row) (domain.Dealer, error) {
	var (
		d      domain.Dealer
		hours  []byte
		rating *float64
		count  *int32
		source *string
	)
	err := row.Scan(
		&d.ID, &d.Name, &d.Address.Street, &d.Address.City, &d.Address.State, &d.Address.PostalCode,
		&d.Coordinates.Lat, &d.Coordinates.Lon, &d.Phone, &d.Website, &hours, &d.Services,
		&rating, &count, &source,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Dealer{}, err
		}
		return domain.Dealer{}, fmt.Errorf("scan dealer: %w", err)
	}

	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &d.Hours); err != nil {
			return domain.Dealer{}, fmt.Errorf("decode hours for %q: %w", d.ID, err)
		}
	}
	if rating != nil && count != nil && source != nil {
		d.Reviews = &domain.Reviews{Rating: *rating, Count: int(*count), Source: *source}
	}
	return d, nil
}
