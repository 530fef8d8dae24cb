package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pathsapp/backend/internal/model"
)

const pathColumns = `id, owner_id, title, description, start_date, location_start, location_end, created_at, updated_at`

// CreatePath inserts a path owned by ownerID. The location pairs are
// flattened into scalar parameters and recombined by the ROW constructors.
func (s *pgStore) CreatePath(ownerID int, title string, description *string, startDate time.Time, start, end model.Location) (*model.Path, error) {
	var p model.Path
	query := `
	INSERT INTO paths (owner_id, title, description, start_date, location_start, location_end)
	VALUES ($1, $2, $3, $4, ROW($5, $6), ROW($7, $8))
	RETURNING ` + pathColumns + `;
	`
	startLat, startLon := start.Flatten()
	endLat, endLon := end.Flatten()
	err := s.db.Get(&p, query, ownerID, title, description, startDate, startLat, startLon, endLat, endLon)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPathByID fetches a path by primary key. Returns nil, nil when absent.
func (s *pgStore) GetPathByID(id uuid.UUID) (*model.Path, error) {
	var p model.Path
	err := s.db.Get(&p, `SELECT `+pathColumns+` FROM paths WHERE id = $1;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPaths returns a page of paths.
func (s *pgStore) ListPaths(skip, limit int) ([]model.Path, error) {
	paths := []model.Path{}
	err := s.db.Select(&paths, `SELECT `+pathColumns+` FROM paths ORDER BY created_at OFFSET $1 LIMIT $2;`, skip, limit)
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// UpdatePath applies a sparse field update. Returns false when the path does
// not exist.
func (s *pgStore) UpdatePath(id uuid.UUID, fields []Assignment) (bool, error) {
	return s.execUpdate("paths", id, fields)
}

// DeletePath removes a path and returns the deleted row, or nil, nil when
// no such path exists.
func (s *pgStore) DeletePath(id uuid.UUID) (*model.Path, error) {
	var p model.Path
	err := s.db.Get(&p, `DELETE FROM paths WHERE id = $1 RETURNING `+pathColumns+`;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// IsPathOwner reports whether the path exists and belongs to userID.
func (s *pgStore) IsPathOwner(id uuid.UUID, userID int) (bool, error) {
	var owner bool
	err := s.db.Get(&owner, `SELECT EXISTS (SELECT 1 FROM paths WHERE id = $1 AND owner_id = $2);`, id, userID)
	return owner, err
}
