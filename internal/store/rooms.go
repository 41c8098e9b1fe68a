package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrRoomNotFound = errors.New("room not found")

// NewRoomParams carries the caller-supplied fields for room creation.
type NewRoomParams struct {
	Name        string
	Description string
	CreatorID   string
	CreatorName string
	Private     bool
	Password    string // optional, hashed before storage
	Color       string
	ImageURL    string
}

const roomCols = `id, name, description, creator_id, creator_name, is_private, password_hash, color, image_url, created_at, updated_at`

func scanRoom(row pgx.Row) (Room, error) {
	var r Room
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.CreatorID, &r.CreatorName,
		&r.Private, &r.PasswordHash, &r.Color, &r.ImageURL, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// CreateRoom inserts a room record, hashing the password when set.
func (p *Postgres) CreateRoom(ctx context.Context, params NewRoomParams) (Room, error) {
	hash := ""
	if params.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
		if err != nil {
			return Room{}, err
		}
		hash = string(h)
	}

	row := p.pool.QueryRow(ctx, `
		INSERT INTO rooms (name, description, creator_id, creator_name, is_private, password_hash, color, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+roomCols,
		params.Name, params.Description, params.CreatorID, params.CreatorName,
		params.Private, hash, params.Color, params.ImageURL)
	return scanRoom(row)
}

// ListRooms returns rooms sorted newest first, plus the total count
// for pagination.
func (p *Postgres) ListRooms(ctx context.Context, limit, offset int) ([]Room, int, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+roomCols+`
		FROM rooms
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Room
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetRoom fetches a room record by id.
func (p *Postgres) GetRoom(ctx context.Context, id string) (Room, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+roomCols+` FROM rooms WHERE id = $1`, id)
	r, err := scanRoom(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Room{}, ErrRoomNotFound
	}
	return r, err
}

// DeleteRoom removes a room record, but only for its creator.
func (p *Postgres) DeleteRoom(ctx context.Context, id, creatorID string) error {
	ct, err := p.pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1 AND creator_id = $2`, id, creatorID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrRoomNotFound
	}
	p.log.Info("room.deleted", "id", id)
	return nil
}
