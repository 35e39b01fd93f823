package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quintet-io/matchforge/cmd/matchforge-api/controllers"
	"github.com/quintet-io/matchforge/pkg/domain/common"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/ports/in"
)

type fakeCommands struct {
	enqueueErr  error
	cancelOK    bool
	cancelErr   error
	lastEnqueue in.EnqueueCommand
}

func (f *fakeCommands) Enqueue(ctx context.Context, cmd in.EnqueueCommand) error {
	f.lastEnqueue = cmd
	return f.enqueueErr
}

func (f *fakeCommands) Cancel(ctx context.Context, cmd in.CancelCommand) (bool, error) {
	return f.cancelOK, f.cancelErr
}

type fakeQueries struct {
	snapshot []entities.QueueSnapshotEntry
	metrics  entities.EngineMetrics
}

func (f *fakeQueries) Snapshot(ctx context.Context) []entities.QueueSnapshotEntry { return f.snapshot }
func (f *fakeQueries) Metrics(ctx context.Context) entities.EngineMetrics         { return f.metrics }
func (f *fakeQueries) Drain(ctx context.Context, playerID string) []entities.Match {
	return nil
}

func newRouterWithQueue(commands in.QueueCommandHandler, queries in.QueueQueryHandler) *mux.Router {
	r := mux.NewRouter()
	qc := controllers.NewQueueController(commands)
	qr := controllers.NewQueryController(queries)
	r.HandleFunc("/queue/{region}", qc.Enqueue).Methods(http.MethodPost)
	r.HandleFunc("/queue/{region}/{player_id}", qc.Cancel).Methods(http.MethodDelete)
	r.HandleFunc("/queue", qr.Snapshot).Methods(http.MethodGet)
	r.HandleFunc("/engine-metrics", qr.EngineMetrics).Methods(http.MethodGet)
	return r
}

func TestQueueController_Enqueue_Success(t *testing.T) {
	fc := &fakeCommands{}
	router := newRouterWithQueue(fc, &fakeQueries{})

	body, _ := json.Marshal(map[string]any{"player_id": "p1", "mmr": 1200, "ping_na": 30})
	req := httptest.NewRequest(http.MethodPost, "/queue/NA", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "p1", fc.lastEnqueue.Player.ID)
	assert.Equal(t, entities.RegionNA, fc.lastEnqueue.Player.Region)
}

func TestQueueController_Enqueue_InvalidInputReturns400(t *testing.T) {
	fc := &fakeCommands{enqueueErr: common.NewErrInvalidInput("bad mmr")}
	router := newRouterWithQueue(fc, &fakeQueries{})

	body, _ := json.Marshal(map[string]any{"player_id": "p1"})
	req := httptest.NewRequest(http.MethodPost, "/queue/NA", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueueController_Enqueue_AlreadyQueuedReturns409(t *testing.T) {
	fc := &fakeCommands{enqueueErr: common.NewErrAlreadyQueued("p1")}
	router := newRouterWithQueue(fc, &fakeQueries{})

	body, _ := json.Marshal(map[string]any{"player_id": "p1"})
	req := httptest.NewRequest(http.MethodPost, "/queue/NA", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestQueueController_Enqueue_MalformedBodyReturns400(t *testing.T) {
	router := newRouterWithQueue(&fakeCommands{}, &fakeQueries{})

	req := httptest.NewRequest(http.MethodPost, "/queue/NA", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueueController_Cancel_NotFoundReturns404(t *testing.T) {
	fc := &fakeCommands{cancelOK: false}
	router := newRouterWithQueue(fc, &fakeQueries{})

	req := httptest.NewRequest(http.MethodDelete, "/queue/NA/p1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQueueController_Cancel_SuccessReturns204(t *testing.T) {
	fc := &fakeCommands{cancelOK: true}
	router := newRouterWithQueue(fc, &fakeQueries{})

	req := httptest.NewRequest(http.MethodDelete, "/queue/NA/p1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestQueryController_Snapshot_ReturnsEnvelope(t *testing.T) {
	fq := &fakeQueries{snapshot: []entities.QueueSnapshotEntry{{ID: "p1", Region: entities.RegionNA, MMR: 1000}}}
	router := newRouterWithQueue(&fakeCommands{}, fq)

	req := httptest.NewRequest(http.MethodGet, "/queue", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp controllers.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestQueryController_EngineMetrics_ReturnsEnvelope(t *testing.T) {
	fq := &fakeQueries{metrics: entities.EngineMetrics{LastMatchAverageMMR: 1500}}
	router := newRouterWithQueue(&fakeCommands{}, fq)

	req := httptest.NewRequest(http.MethodGet, "/engine-metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
