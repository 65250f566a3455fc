// Package contacts provides the PostgreSQL-backed contact store.
package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/google/uuid"
)

const contactColumns = `id, owner_id, name, email, phone, favorite, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]models.Contact, error) {
	result := make([]models.Contact, 0)
	if !validID(ownerID) {
		return result, nil
	}

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = $1 ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.Favorite, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	if !validID(ownerID) || !validID(id) {
		return nil, common.ErrorNotFound
	}
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND owner_id = $2`
	return scanOne(r.db.QueryRowContext(ctx, query, id, ownerID))
}

func (r *PostgresRepository) Create(ctx context.Context, ownerID string, fields models.ContactFields) (*models.Contact, error) {
	if !validID(ownerID) {
		return nil, common.ErrorNotFound
	}
	query :=
		`INSERT INTO contacts (owner_id, name, email, phone, favorite)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING ` + contactColumns
	return scanOne(r.db.QueryRowContext(ctx, query, ownerID, fields.Name, fields.Email, fields.Phone, fields.Favorite))
}

// Update applies the non-nil fields of patch; nil fields keep their value.
func (r *PostgresRepository) Update(ctx context.Context, ownerID, id string, patch models.ContactPatch) (*models.Contact, error) {
	if !validID(ownerID) || !validID(id) {
		return nil, common.ErrorNotFound
	}
	query :=
		`UPDATE contacts
		 SET name = COALESCE($3, name),
		     email = COALESCE($4, email),
		     phone = COALESCE($5, phone),
		     updated_at = now()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING ` + contactColumns
	return scanOne(r.db.QueryRowContext(ctx, query, id, ownerID,
		nullString(patch.Name), nullString(patch.Email), nullString(patch.Phone)))
}

func (r *PostgresRepository) UpdateFavorite(ctx context.Context, ownerID, id string, favorite bool) (*models.Contact, error) {
	if !validID(ownerID) || !validID(id) {
		return nil, common.ErrorNotFound
	}
	query :=
		`UPDATE contacts SET favorite = $3, updated_at = now()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING ` + contactColumns
	return scanOne(r.db.QueryRowContext(ctx, query, id, ownerID, favorite))
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	if !validID(ownerID) || !validID(id) {
		return false, nil
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

func scanOne(row *sql.Row) (*models.Contact, error) {
	var c models.Contact
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.Favorite, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &c, nil
}

// validID filters out ids the uuid column would reject with a cast error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
