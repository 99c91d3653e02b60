package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/homestay/homestay/internal/house"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectHouseColumns = `
	SELECT id, type, name, description, image, image_lg, country, address, bedrooms, bathrooms,
		surface, year, price, status, agent_image, agent_name, agent_phone, owner_id,
		created_at, updated_at
	FROM houses`

type scanner interface {
	Scan(dest ...any) error
}

func scanHouse(s scanner) (*house.House, error) {
	var h house.House

	var status string

	var ownerID uuid.NullUUID

	if err := s.Scan(
		&h.ID, &h.Type, &h.Name, &h.Description, &h.Image, &h.ImageLg, &h.Country, &h.Address,
		&h.Bedrooms, &h.Bathrooms, &h.Surface, &h.Year, &h.Price, &status,
		&h.Agent.Image, &h.Agent.Name, &h.Agent.Phone, &ownerID, &h.CreatedAt, &h.UpdatedAt,
	); err != nil {
		return nil, err
	}

	h.Status = house.Status(status)

	if ownerID.Valid {
		h.OwnerID = &ownerID.UUID
	}

	return &h, nil
}

func (s *Store) GetHouse(ctx context.Context, id uuid.UUID) (*house.House, error) {
	h, err := scanHouse(s.db.QueryRowContext(ctx, selectHouseColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, house.ErrNotFound
		}

		return nil, fmt.Errorf("getting house: %w", err)
	}

	return h, nil
}

func (s *Store) ListHouses(ctx context.Context) ([]*house.House, error) {
	rows, err := s.db.QueryContext(ctx, selectHouseColumns+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing houses: %w", err)
	}
	defer rows.Close()

	var houses []*house.House

	for rows.Next() {
		h, err := scanHouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning house: %w", err)
		}

		houses = append(houses, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating house rows: %w", err)
	}

	return houses, nil
}

func (s *Store) CountHouses(ctx context.Context) (total, vacant int, err error) {
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'vacant') FROM houses`

	if err := s.db.QueryRowContext(ctx, query).Scan(&total, &vacant); err != nil {
		return 0, 0, fmt.Errorf("counting houses: %w", err)
	}

	return total, vacant, nil
}

// CreateHouses inserts all houses in one transaction.
func (s *Store) CreateHouses(ctx context.Context, houses []*house.House) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO houses (type, name, description, image, image_lg, country, address, bedrooms,
			bathrooms, surface, year, price, status, agent_image, agent_name, agent_phone, owner_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range houses {
		err := stmt.QueryRowContext(ctx,
			h.Type, h.Name, h.Description, h.Image, h.ImageLg, h.Country, h.Address,
			h.Bedrooms, h.Bathrooms, h.Surface, h.Year, h.Price, h.Status,
			h.Agent.Image, h.Agent.Name, h.Agent.Phone, h.OwnerID,
		).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating house %q: %w", h.Name, err)
		}
	}

	return tx.Commit()
}

func (s *Store) UpdateHouse(ctx context.Context, h *house.House) error {
	query := `
		UPDATE houses
		SET type = $1, name = $2, description = $3, image = $4, image_lg = $5, country = $6,
			address = $7, bedrooms = $8, bathrooms = $9, surface = $10, year = $11, price = $12,
			status = $13, agent_image = $14, agent_name = $15, agent_phone = $16, updated_at = NOW()
		WHERE id = $17
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		h.Type, h.Name, h.Description, h.Image, h.ImageLg, h.Country, h.Address,
		h.Bedrooms, h.Bathrooms, h.Surface, h.Year, h.Price, h.Status,
		h.Agent.Image, h.Agent.Name, h.Agent.Phone, h.ID,
	).Scan(&h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return house.ErrNotFound
		}

		return fmt.Errorf("updating house: %w", err)
	}

	return nil
}

func (s *Store) DeleteHouses(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))

	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := `DELETE FROM houses WHERE id IN (` + strings.Join(placeholders, ", ") + `)`

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting houses: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting houses: %w", err)
	}

	return n, nil
}
