package alert

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates a temporary SQLite database with the full schema and
// two users, each owning one camera.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "alert-test-*.db")
	if err != nil {
		t.Fatalf("creating temp db: %v", err)
	}
	dbPath := f.Name()
	f.Close()
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		) STRICT;

		CREATE TABLE cameras (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			name TEXT NOT NULL,
			rtsp_url TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			is_enabled INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE
		) STRICT;

		CREATE TABLE alerts (
			id TEXT PRIMARY KEY,
			camera_id TEXT NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			confidence REAL NOT NULL DEFAULT 0,
			face_count INTEGER NOT NULL DEFAULT 0,
			timestamp TEXT NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY (camera_id) REFERENCES cameras(id) ON DELETE CASCADE
		) STRICT;

		INSERT INTO users VALUES
			('usr-alice', 'alice', 'h', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z'),
			('usr-bob', 'bob', 'h', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z');
		INSERT INTO cameras VALUES
			('cam-alice', 'usr-alice', 'Front', 'rtsp://a/1', '', 1, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z'),
			('cam-bob', 'usr-bob', 'Back', 'rtsp://b/1', '', 1, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating schema: %v", err)
	}

	return db
}

func TestRepository_CreateAndList(t *testing.T) {
	repo := NewRepository(testDB(t))
	ctx := context.Background()

	a := &Alert{CameraID: "cam-alice", Confidence: 0.92, FaceCount: 2, ImageURL: "/img/1.jpg"}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if a.ID == "" {
		t.Fatal("Create() should generate an ID")
	}
	if a.Timestamp.IsZero() {
		t.Error("Create() should stamp receipt time when timestamp is absent")
	}

	alerts, err := repo.ListByCamera(ctx, "usr-alice", "cam-alice", 0)
	if err != nil {
		t.Fatalf("ListByCamera() error = %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("ListByCamera() = %d alerts, want 1", len(alerts))
	}
	if alerts[0].Confidence != 0.92 || alerts[0].FaceCount != 2 {
		t.Errorf("round-trip mismatch: %+v", alerts[0])
	}
}

func TestRepository_Create_UnknownCamera(t *testing.T) {
	repo := NewRepository(testDB(t))

	err := repo.Create(context.Background(), &Alert{CameraID: "cam-nope", Confidence: 0.5})
	if !errors.Is(err, ErrAlertCameraUnknown) {
		t.Errorf("Create() error = %v, want ErrAlertCameraUnknown", err)
	}
}

func TestRepository_OwnerScoping(t *testing.T) {
	repo := NewRepository(testDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &Alert{CameraID: "cam-alice", Confidence: 0.9}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Bob asking for Alice's camera gets an empty list, identical to a
	// camera with no alerts.
	alerts, err := repo.ListByCamera(ctx, "usr-bob", "cam-alice", 0)
	if err != nil {
		t.Fatalf("ListByCamera() error = %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("cross-owner ListByCamera() = %d alerts, want 0", len(alerts))
	}

	recent, err := repo.ListRecent(ctx, "usr-bob", 0)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("cross-owner ListRecent() = %d alerts, want 0", len(recent))
	}

	count, err := repo.CountForOwner(ctx, "usr-bob")
	if err != nil {
		t.Fatalf("CountForOwner() error = %v", err)
	}
	if count != 0 {
		t.Errorf("cross-owner CountForOwner() = %d, want 0", count)
	}
}

func TestRepository_ListRecent_OrderAndLimit(t *testing.T) {
	repo := NewRepository(testDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		ts := base.Add(time.Duration(i) * time.Minute)
		a := &Alert{CameraID: "cam-alice", Confidence: 0.5, Timestamp: ts}
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	alerts, err := repo.ListRecent(ctx, "usr-alice", 3)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(alerts) != 3 {
		t.Fatalf("ListRecent() = %d alerts, want 3", len(alerts))
	}

	// Newest first.
	for i := 1; i < len(alerts); i++ {
		if alerts[i].Timestamp.After(alerts[i-1].Timestamp) {
			t.Errorf("alerts out of order at %d: %v after %v", i, alerts[i].Timestamp, alerts[i-1].Timestamp)
		}
	}
}

func TestEvent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		wantErr bool
	}{
		{"valid", Event{CameraID: "cam-1", Confidence: 0.8, FaceCount: 1}, false},
		{"zero confidence", Event{CameraID: "cam-1"}, false},
		{"missing camera", Event{Confidence: 0.8}, true},
		{"confidence too high", Event{CameraID: "cam-1", Confidence: 1.2}, true},
		{"negative confidence", Event{CameraID: "cam-1", Confidence: -0.1}, true},
		{"negative faces", Event{CameraID: "cam-1", FaceCount: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
