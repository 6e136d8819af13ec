package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skylarkhq/skylark-core/internal/camera"
)

// createCamera creates a camera through the API and returns it.
func createCamera(t *testing.T, router http.Handler, token, name string) *camera.Camera {
	t.Helper()

	body := `{"name": "` + name + `", "rtsp_url": "rtsp://192.168.1.10:554/stream1", "location": "porch"}`
	req := authedRequest(http.MethodPost, "/api/v1/cameras", token, body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("create camera: status = %d, body: %s", w.Code, w.Body.String())
	}

	var cam camera.Camera
	if err := json.Unmarshal(w.Body.Bytes(), &cam); err != nil {
		t.Fatalf("unmarshal camera: %v", err)
	}
	return &cam
}

// ─── Camera CRUD Tests ─────────────────────────────────────────────

func TestListCameras_Empty(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	token, _ := registerUser(t, router, "alice")

	req := authedRequest(http.MethodGet, "/api/v1/cameras", token, "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if int(resp["count"].(float64)) != 0 {
		t.Errorf("count = %v, want 0", resp["count"])
	}
}

func TestCreateAndGetCamera(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	token, userID := registerUser(t, router, "alice")
	cam := createCamera(t, router, token, "Front Door")

	if !strings.HasPrefix(cam.ID, "cam-") {
		t.Errorf("camera ID = %q, want cam- prefix", cam.ID)
	}
	if cam.OwnerID != userID {
		t.Errorf("owner_id = %q, want %q", cam.OwnerID, userID)
	}
	if !cam.IsEnabled {
		t.Error("new camera should default to enabled")
	}

	req := authedRequest(http.MethodGet, "/api/v1/cameras/"+cam.ID, token, "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, body: %s", w.Code, w.Body.String())
	}

	var got camera.Camera
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != "Front Door" {
		t.Errorf("name = %q, want Front Door", got.Name)
	}
}

func TestCreateCamera_Validation(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	token, _ := registerUser(t, router, "alice")

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"rtsp_url": "rtsp://10.0.0.5/stream"}`},
		{"missing url", `{"name": "Front Door"}`},
		{"http url", `{"name": "Front Door", "rtsp_url": "http://10.0.0.5/stream"}`},
		{"name too long", `{"name": "` + strings.Repeat("n", 129) + `", "rtsp_url": "rtsp://10.0.0.5/stream"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodPost, "/api/v1/cameras", token, tt.body)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d; body: %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}
}

func TestUpdateCamera(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	token, _ := registerUser(t, router, "alice")
	cam := createCamera(t, router, token, "Front Door")

	body := `{"name": "Garage", "rtsp_url": "rtsp://192.168.1.20:554/stream1", "is_enabled": false}`
	req := authedRequest(http.MethodPut, "/api/v1/cameras/"+cam.ID, token, body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body: %s", w.Code, w.Body.String())
	}

	var got camera.Camera
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != "Garage" {
		t.Errorf("name = %q, want Garage", got.Name)
	}
	if got.IsEnabled {
		t.Error("is_enabled should be false after update")
	}
}

func TestDeleteCamera(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	token, _ := registerUser(t, router, "alice")
	cam := createCamera(t, router, token, "Front Door")

	req := authedRequest(http.MethodDelete, "/api/v1/cameras/"+cam.ID, token, "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body: %s", w.Code, w.Body.String())
	}

	// Gone afterwards.
	req = authedRequest(http.MethodGet, "/api/v1/cameras/"+cam.ID, token, "")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestGetCamera_Missing(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	token, _ := registerUser(t, router, "alice")

	req := authedRequest(http.MethodGet, "/api/v1/cameras/cam-nothere", token, "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// ─── Ownership Isolation Tests ─────────────────────────────────────

// Another user's camera must be indistinguishable from a missing one:
// same status, same body, on every operation.
func TestCameras_OwnershipIsolation(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	aliceToken, _ := registerUser(t, router, "alice")
	bobToken, _ := registerUser(t, router, "bob")

	cam := createCamera(t, router, aliceToken, "Alice Cam")

	requests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"get", http.MethodGet, "/api/v1/cameras/" + cam.ID, ""},
		{"update", http.MethodPut, "/api/v1/cameras/" + cam.ID, `{"name": "Stolen", "rtsp_url": "rtsp://10.0.0.9/s"}`},
		{"delete", http.MethodDelete, "/api/v1/cameras/" + cam.ID, ""},
		{"alerts", http.MethodGet, "/api/v1/cameras/" + cam.ID + "/alerts", ""},
	}

	for _, rq := range requests {
		t.Run(rq.name, func(t *testing.T) {
			// Bob probing Alice's camera.
			req := authedRequest(rq.method, rq.path, bobToken, rq.body)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Fatalf("cross-owner %s status = %d, want %d", rq.name, w.Code, http.StatusNotFound)
			}
			crossOwnerBody := w.Body.String()

			// Same request against a camera that does not exist at all.
			missingPath := strings.Replace(rq.path, cam.ID, "cam-missing", 1)
			req = authedRequest(rq.method, missingPath, bobToken, rq.body)
			w = httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Fatalf("missing %s status = %d, want %d", rq.name, w.Code, http.StatusNotFound)
			}
			if w.Body.String() != crossOwnerBody {
				t.Errorf("cross-owner and missing responses differ:\n%s\n%s", crossOwnerBody, w.Body.String())
			}
		})
	}

	// Alice's camera survived Bob's delete attempt.
	req := authedRequest(http.MethodGet, "/api/v1/cameras/"+cam.ID, aliceToken, "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("alice's camera missing after bob's attempts: status = %d", w.Code)
	}
}

func TestListCameras_OnlyOwn(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	aliceToken, _ := registerUser(t, router, "alice")
	bobToken, _ := registerUser(t, router, "bob")

	createCamera(t, router, aliceToken, "Alice One")
	createCamera(t, router, aliceToken, "Alice Two")
	createCamera(t, router, bobToken, "Bob One")

	req := authedRequest(http.MethodGet, "/api/v1/cameras", bobToken, "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Cameras []camera.Camera `json:"cameras"`
		Count   int             `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Count != 1 {
		t.Fatalf("bob's count = %d, want 1", resp.Count)
	}
	if resp.Cameras[0].Name != "Bob One" {
		t.Errorf("bob sees %q, want Bob One", resp.Cameras[0].Name)
	}
}
