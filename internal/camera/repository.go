package camera

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository defines owner-scoped camera persistence. Every method
// takes the owner's user ID, and every SQL predicate filters on it -
// the ownership gate lives here, not in the handlers. A zero-row
// mutation is indistinguishable from a missing camera.
type Repository interface {
	Create(ctx context.Context, ownerID string, in *Input) (*Camera, error)
	GetByID(ctx context.Context, ownerID, id string) (*Camera, error)
	List(ctx context.Context, ownerID string) ([]Camera, error)
	Update(ctx context.Context, ownerID, id string, in *Input) (*Camera, error)
	Delete(ctx context.Context, ownerID, id string) error
	Count(ctx context.Context, ownerID string) (int, error)

	// OwnerOf returns the owner user ID of a camera, ignoring the
	// ownership gate. For trusted paths (detection ingest) only, where
	// it routes alert broadcasts to the right account; never expose it
	// through the user-facing API.
	OwnerOf(ctx context.Context, id string) (string, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite-backed camera repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const cameraColumns = "id, owner_id, name, rtsp_url, location, is_enabled, created_at, updated_at"

// Create inserts a camera owned by ownerID. The owner comes from the
// authenticated identity; any owner value in client input is ignored.
func (r *SQLiteRepository) Create(ctx context.Context, ownerID string, in *Input) (*Camera, error) {
	now := time.Now().UTC()
	cam := &Camera{
		ID:        "cam-" + uuid.NewString()[:8],
		OwnerID:   ownerID,
		Name:      in.Name,
		RTSPURL:   in.RTSPURL,
		Location:  in.Location,
		IsEnabled: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.IsEnabled != nil {
		cam.IsEnabled = *in.IsEnabled
	}

	ts := now.Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cameras (id, owner_id, name, rtsp_url, location, is_enabled, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		cam.ID, cam.OwnerID, cam.Name, cam.RTSPURL, cam.Location, boolToInt(cam.IsEnabled), ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("creating camera: %w", err)
	}

	return cam, nil
}

// GetByID retrieves a camera if it exists and belongs to ownerID.
func (r *SQLiteRepository) GetByID(ctx context.Context, ownerID, id string) (*Camera, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+cameraColumns+" FROM cameras WHERE id = ? AND owner_id = ?", id, ownerID)
	return scanCamera(row)
}

// List returns the caller's cameras ordered by creation date.
func (r *SQLiteRepository) List(ctx context.Context, ownerID string) ([]Camera, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+cameraColumns+" FROM cameras WHERE owner_id = ? ORDER BY created_at ASC", ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing cameras: %w", err)
	}
	defer rows.Close()

	cameras := []Camera{}
	for rows.Next() {
		cam, err := scanCamera(rows)
		if err != nil {
			return nil, err
		}
		cameras = append(cameras, *cam)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cameras: %w", err)
	}

	return cameras, nil
}

// Update modifies a camera's mutable fields. The WHERE clause carries
// both id and owner_id; zero rows affected returns ErrCameraNotFound
// whether the camera is missing or owned by someone else.
// A nil IsEnabled leaves the stored value untouched.
func (r *SQLiteRepository) Update(ctx context.Context, ownerID, id string, in *Input) (*Camera, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	var enabled any
	if in.IsEnabled != nil {
		if *in.IsEnabled {
			enabled = 1
		} else {
			enabled = 0
		}
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE cameras SET name = ?, rtsp_url = ?, location = ?,
		        is_enabled = COALESCE(?, is_enabled), updated_at = ?
		 WHERE id = ? AND owner_id = ?`,
		in.Name, in.RTSPURL, in.Location, enabled, now, id, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating camera: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return nil, ErrCameraNotFound
	}

	return r.GetByID(ctx, ownerID, id)
}

// Delete removes a camera. Same merged not-found semantics as Update.
func (r *SQLiteRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM cameras WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting camera: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrCameraNotFound
	}
	return nil
}

// Count returns the number of cameras owned by ownerID.
func (r *SQLiteRepository) Count(ctx context.Context, ownerID string) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM cameras WHERE owner_id = ?", ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting cameras: %w", err)
	}
	return count, nil
}

// OwnerOf returns the owner user ID of a camera.
func (r *SQLiteRepository) OwnerOf(ctx context.Context, id string) (string, error) {
	var ownerID string
	err := r.db.QueryRowContext(ctx, "SELECT owner_id FROM cameras WHERE id = ?", id).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrCameraNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolving camera owner: %w", err)
	}
	return ownerID, nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

func scanCamera(s scanner) (*Camera, error) {
	var cam Camera
	var isEnabled int
	var createdAt, updatedAt string

	err := s.Scan(&cam.ID, &cam.OwnerID, &cam.Name, &cam.RTSPURL, &cam.Location,
		&isEnabled, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCameraNotFound
		}
		return nil, fmt.Errorf("scanning camera: %w", err)
	}

	cam.IsEnabled = isEnabled != 0
	cam.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	cam.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled

	return &cam, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
