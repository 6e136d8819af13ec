package alert

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultListLimit = 50

// Repository defines alert persistence. Writes come from trusted
// ingest paths and take the raw camera ID; reads are owner-scoped
// through a join on cameras, so the ownership gate holds for the alert
// surface too.
type Repository interface {
	Create(ctx context.Context, a *Alert) error
	ListByCamera(ctx context.Context, ownerID, cameraID string, limit int) ([]Alert, error)
	ListRecent(ctx context.Context, ownerID string, limit int) ([]Alert, error)
	CountForOwner(ctx context.Context, ownerID string) (int, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite-backed alert repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts an alert. The ID is generated if empty; a foreign key
// violation on camera_id maps to ErrAlertCameraUnknown.
func (r *SQLiteRepository) Create(ctx context.Context, a *Alert) error {
	if a.ID == "" {
		a.ID = "alr-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC()
	if a.Timestamp.IsZero() {
		a.Timestamp = now
	}
	a.CreatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO alerts (id, camera_id, image_url, confidence, face_count, timestamp, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.CameraID, a.ImageURL, a.Confidence, a.FaceCount,
		a.Timestamp.UTC().Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrAlertCameraUnknown
		}
		return fmt.Errorf("creating alert: %w", err)
	}

	return nil
}

const alertColumns = "a.id, a.camera_id, a.image_url, a.confidence, a.face_count, a.timestamp, a.created_at"

// ListByCamera returns a camera's alerts, newest first, only if the
// camera belongs to ownerID. A camera owned by someone else yields an
// empty list, same as a camera with no alerts.
func (r *SQLiteRepository) ListByCamera(ctx context.Context, ownerID, cameraID string, limit int) ([]Alert, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+alertColumns+` FROM alerts a
		 JOIN cameras c ON c.id = a.camera_id
		 WHERE a.camera_id = ? AND c.owner_id = ?
		 ORDER BY a.timestamp DESC LIMIT ?`,
		cameraID, ownerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing camera alerts: %w", err)
	}
	defer rows.Close()

	return collectAlerts(rows)
}

// ListRecent returns the newest alerts across all of ownerID's cameras.
func (r *SQLiteRepository) ListRecent(ctx context.Context, ownerID string, limit int) ([]Alert, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+alertColumns+` FROM alerts a
		 JOIN cameras c ON c.id = a.camera_id
		 WHERE c.owner_id = ?
		 ORDER BY a.timestamp DESC LIMIT ?`,
		ownerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recent alerts: %w", err)
	}
	defer rows.Close()

	return collectAlerts(rows)
}

// CountForOwner returns the number of alerts across ownerID's cameras.
func (r *SQLiteRepository) CountForOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM alerts a JOIN cameras c ON c.id = a.camera_id WHERE c.owner_id = ?`,
		ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting alerts: %w", err)
	}
	return count, nil
}

func collectAlerts(rows *sql.Rows) ([]Alert, error) {
	alerts := []Alert{}
	for rows.Next() {
		var a Alert
		var timestamp, createdAt string

		err := rows.Scan(&a.ID, &a.CameraID, &a.ImageURL, &a.Confidence,
			&a.FaceCount, &timestamp, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scanning alert: %w", err)
		}

		a.Timestamp, _ = time.Parse(time.RFC3339, timestamp) //nolint:errcheck // format is controlled
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating alerts: %w", err)
	}
	return alerts, nil
}

// isForeignKeyViolation checks if a SQLite error is a FOREIGN KEY
// constraint violation.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
