package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"golang-exercisetracker/database"
	"golang-exercisetracker/models"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var errStore = errors.New("connection refused")

// brokenStore fails every call.
type brokenStore struct{}

func (brokenStore) CreateUser(context.Context, *models.User) error { return errStore }
func (brokenStore) ListUsers(context.Context) ([]models.User, error) {
	return nil, errStore
}
func (brokenStore) FindUser(context.Context, string) (models.User, error) {
	return models.User{}, errStore
}
func (brokenStore) AddExercise(context.Context, *models.Exercise) error { return errStore }
func (brokenStore) FindExercises(context.Context, string, models.LogFilter) ([]models.Exercise, error) {
	return nil, errStore
}
func (brokenStore) Ping(context.Context) error { return errStore }

type recordingArchiver struct {
	key  string
	body []byte
	err  error
}

func (a *recordingArchiver) Put(_ context.Context, key string, body []byte) error {
	a.key, a.body = key, body
	return a.err
}

var fixedNow = time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

func newEngine(users UserStore, exercises ExerciseStore, archiver LogArchiver) *gin.Engine {
	uc := NewUserController(users, time.Second)
	ec := NewExerciseController(users, exercises, archiver, time.Second)
	ec.Now = func() time.Time { return fixedNow }

	r := gin.New()
	r.POST("/api/users", uc.CreateUser())
	r.GET("/api/users", uc.GetUsers())
	r.POST("/api/users/:id/exercises", ec.AddExercise())
	r.GET("/api/users/:id/logs", ec.GetLogs())
	r.POST("/api/users/:id/logs/archive", ec.ArchiveLogs())
	return r
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return out
}

func createUser(t *testing.T, r http.Handler, username string) string {
	t.Helper()
	rr := postForm(r, "/api/users", url.Values{"username": {username}})
	if rr.Code != http.StatusOK {
		t.Fatalf("create user: status %d, body %s", rr.Code, rr.Body.String())
	}
	id, _ := decode(t, rr)["id"].(string)
	if id == "" {
		t.Fatal("create user: empty id")
	}
	return id
}

func TestCreateUser_Form(t *testing.T) {
	store := database.NewMemoryStore()
	r := newEngine(store, store, nil)

	rr := postForm(r, "/api/users", url.Values{"username": {"alice"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	body := decode(t, rr)
	if body["username"] != "alice" || body["id"] == "" {
		t.Errorf("unexpected body: %v", body)
	}
	if len(body) != 2 {
		t.Errorf("body should only carry username and id: %v", body)
	}
}

func TestCreateUser_MissingUsername(t *testing.T) {
	store := database.NewMemoryStore()
	r := newEngine(store, store, nil)

	rr := postJSON(r, "/api/users", map[string]string{})
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
	if decode(t, rr)["error"] == nil {
		t.Error("expected an error field")
	}
	users, _ := store.ListUsers(context.Background())
	if len(users) != 0 {
		t.Errorf("no user should be stored, got %d", len(users))
	}
}

func TestCreateUser_MalformedJSON(t *testing.T) {
	store := database.NewMemoryStore()
	r := newEngine(store, store, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestUsers_StoreFailure(t *testing.T) {
	r := newEngine(brokenStore{}, brokenStore{}, nil)

	rr := postForm(r, "/api/users", url.Values{"username": {"alice"}})
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("create status: got %d, want 500", rr.Code)
	}
	if got := decode(t, rr)["error"]; got != "User could not be created" {
		t.Errorf("create error: got %v", got)
	}

	rr = get(r, "/api/users")
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("list status: got %d, want 500", rr.Code)
	}
	if strings.Contains(rr.Body.String(), errStore.Error()) {
		t.Error("store error leaked to the client")
	}
}

func TestGetUsers_Empty(t *testing.T) {
	store := database.NewMemoryStore()
	r := newEngine(store, store, nil)

	rr := get(r, "/api/users")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Errorf("body: got %s, want []", got)
	}
}

func TestAddExercise(t *testing.T) {
	store := database.NewMemoryStore()
	r := newEngine(store, store, nil)
	id := createUser(t, r, "alice")

	rr := postForm(r, "/api/users/"+id+"/exercises", url.Values{
		"description": {"run"},
		"duration":    {"30"},
		"date":        {"1990-01-01"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	body := decode(t, rr)
	if body["date"] != "Mon Jan 01 1990" {
		t.Errorf("date: got %v", body["date"])
	}
	if d, ok := body["duration"].(float64); !ok || d != 30 {
		t.Errorf("duration: got %#v, want number 30", body["duration"])
	}
	if body["id"] != id || body["username"] != "alice" || body["description"] != "run" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestAddExercise_DefaultDate(t *testing.T) {
	store := database.NewMemoryStore()
	r := newEngine(store, store, nil)
	id := createUser(t, r, "alice")

	rr := postJSON(r, "/api/users/"+id+"/exercises", map[string]any{"description": "swim", "duration": 45})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	body := decode(t, rr)
	if body["date"] != "Fri May 17 2024" {
		t.Errorf("date: got %v, want Fri May 17 2024", body["date"])
	}
	if body["duration"] != 45.0 {
		t.Errorf("duration: got %v", body["duration"])
	}
}

func TestAddExercise_NonNumericDuration(t *testing.T) {
	store := database.NewMemoryStore()
	r := newEngine(store, store, nil)
	id := createUser(t, r, "alice")

	rr := postForm(r, "/api/users/"+id+"/exercises", url.Values{"description": {"yoga"}, "duration": {"long"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	body := decode(t, rr)
	if v, present := body["duration"]; !present || v != nil {
		t.Errorf("duration: got %#v, want null", v)
	}
}

func TestAddExercise_InvalidDate(t *testing.T) {
	store := database.NewMemoryStore()
	r := newEngine(store, store, nil)
	id := createUser(t, r, "alice")

	rr := postForm(r, "/api/users/"+id+"/exercises", url.Values{"description": {"run"}, "duration": {"10"}, "date": {"not-a-date"}})
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
	exercises, _ := store.FindExercises(context.Background(), id, models.LogFilter{})
	if len(exercises) != 0 {
		t.Errorf("nothing should be stored, got %d", len(exercises))
	}
}

func TestUnknownUser_SoftError(t *testing.T) {
	store := database.NewMemoryStore()
	r := newEngine(store, store, &recordingArchiver{})

	for _, rr := range []*httptest.ResponseRecorder{
		postForm(r, "/api/users/nope/exercises", url.Values{"description": {"run"}, "duration": {"30"}}),
		get(r, "/api/users/nope/logs"),
		postForm(r, "/api/users/nope/logs/archive", nil),
	} {
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
		if got := decode(t, rr)["error"]; got != ErrUserNotFound {
			t.Errorf("error: got %v, want %q", got, ErrUserNotFound)
		}
	}
}

func TestExercises_StoreFailure(t *testing.T) {
	r := newEngine(brokenStore{}, brokenStore{}, nil)

	rr := postForm(r, "/api/users/a1/exercises", url.Values{"description": {"run"}, "duration": {"30"}})
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("add status: got %d, want 500", rr.Code)
	}
	rr = get(r, "/api/users/a1/logs")
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("logs status: got %d, want 500", rr.Code)
	}
}

func TestGetLogs_Filters(t *testing.T) {
	store := database.NewMemoryStore()
	r := newEngine(store, store, nil)
	id := createUser(t, r, "alice")

	for _, d := range []string{"2020-01-01", "2020-06-01", "2020-12-01"} {
		rr := postForm(r, "/api/users/"+id+"/exercises", url.Values{"description": {d}, "duration": {"20"}, "date": {d}})
		if rr.Code != http.StatusOK {
			t.Fatalf("add %s: status %d", d, rr.Code)
		}
	}

	var log models.Log
	rr := get(r, "/api/users/"+id+"/logs?from=2020-03-01&to=2020-09-01")
	if err := json.NewDecoder(rr.Body).Decode(&log); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if log.Count != 1 || len(log.Log) != 1 || log.Log[0].Date != "Mon Jun 01 2020" {
		t.Errorf("range: unexpected %+v", log)
	}

	rr = get(r, "/api/users/"+id+"/logs?limit=1")
	log = models.Log{}
	json.NewDecoder(rr.Body).Decode(&log)
	if log.Count != 1 || log.Log[0].Description != "2020-01-01" {
		t.Errorf("limit: unexpected %+v", log)
	}

	rr = get(r, "/api/users/"+id+"/logs?from=garbage")
	body := decode(t, rr)
	if body["count"] != 0.0 {
		t.Errorf("invalid from: count %v, want 0", body["count"])
	}
	if entries, ok := body["log"].([]any); !ok || len(entries) != 0 {
		t.Errorf("invalid from: log %#v, want []", body["log"])
	}

	rr = get(r, "/api/users/"+id+"/logs?limit=zero")
	log = models.Log{}
	json.NewDecoder(rr.Body).Decode(&log)
	if log.Count != 3 {
		t.Errorf("non-numeric limit should be ignored: count %d", log.Count)
	}
}

func TestArchiveLogs(t *testing.T) {
	store := database.NewMemoryStore()
	archiver := &recordingArchiver{}
	r := newEngine(store, store, archiver)
	id := createUser(t, r, "alice")
	postForm(r, "/api/users/"+id+"/exercises", url.Values{"description": {"run"}, "duration": {"30"}, "date": {"1990-01-01"}})

	rr := postForm(r, "/api/users/"+id+"/logs/archive", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	body := decode(t, rr)
	wantKey := "logs/" + id + "/20240517T093000Z.json"
	if body["key"] != wantKey || body["count"] != 1.0 || body["id"] != id {
		t.Errorf("unexpected body: %v", body)
	}
	if archiver.key != wantKey {
		t.Errorf("archived under %q, want %q", archiver.key, wantKey)
	}

	var archived models.Log
	if err := json.Unmarshal(archiver.body, &archived); err != nil {
		t.Fatalf("archived body: %v", err)
	}
	if archived.Username != "alice" || len(archived.Log) != 1 || archived.Log[0].Date != "Mon Jan 01 1990" {
		t.Errorf("archived log: unexpected %+v", archived)
	}
}

func TestArchiveLogs_Failures(t *testing.T) {
	store := database.NewMemoryStore()

	r := newEngine(store, store, nil)
	id := createUser(t, r, "alice")
	if rr := postForm(r, "/api/users/"+id+"/logs/archive", nil); rr.Code != http.StatusServiceUnavailable {
		t.Errorf("without archiver: got %d, want 503", rr.Code)
	}

	r = newEngine(store, store, &recordingArchiver{err: errors.New("access denied")})
	rr := postForm(r, "/api/users/"+id+"/logs/archive", nil)
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("failing archiver: got %d, want 500", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "access denied") {
		t.Error("archiver error leaked to the client")
	}
}

func TestHealth(t *testing.T) {
	r := gin.New()
	r.GET("/ok", Health(database.NewMemoryStore()))
	r.GET("/down", Health(brokenStore{}))

	if rr := get(r, "/ok"); rr.Code != http.StatusOK {
		t.Errorf("healthy store: got %d", rr.Code)
	}
	if rr := get(r, "/down"); rr.Code != http.StatusServiceUnavailable {
		t.Errorf("broken store: got %d", rr.Code)
	}
}
