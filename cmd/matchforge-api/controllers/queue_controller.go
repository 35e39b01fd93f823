package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quintet-io/matchforge/pkg/domain/common"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/ports/in"
)

// QueueController exposes the command side of the engine: joining and
// leaving the queue.
type QueueController struct {
	commands in.QueueCommandHandler
}

func NewQueueController(commands in.QueueCommandHandler) *QueueController {
	return &QueueController{commands: commands}
}

type enqueueRequest struct {
	PlayerID  string `json:"player_id"`
	MMR       int    `json:"mmr"`
	PingNA    int    `json:"ping_na"`
	PingEU    int    `json:"ping_eu"`
	PingASIA  int    `json:"ping_asia"`
	Ping      int    `json:"ping"`
}

// Enqueue handles POST /queue/{region}.
func (c *QueueController) Enqueue(w http.ResponseWriter, r *http.Request) {
	region := entities.Region(mux.Vars(r)["region"])

	var body enqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	cmd := in.EnqueueCommand{
		Player: entities.Player{
			ID:         body.PlayerID,
			MMR:        body.MMR,
			Region:     region,
			PingNA:     body.PingNA,
			PingEU:     body.PingEU,
			PingASIA:   body.PingASIA,
			LegacyPing: body.Ping,
		},
	}

	ctx := r.Context()
	if err := c.commands.Enqueue(ctx, cmd); err != nil {
		switch {
		case common.IsInvalidInputError(err):
			WriteBadRequest(w, err.Error())
		case common.IsAlreadyQueuedError(err):
			WriteConflict(w, err.Error())
		default:
			slog.ErrorContext(ctx, "enqueue failed", "error", err, "request_id", common.RequestIDFromContext(ctx))
			WriteInternalError(w, "failed to enqueue player")
		}
		return
	}

	WriteCreated(w, map[string]string{"player_id": body.PlayerID, "region": string(region)})
}

// Cancel handles DELETE /queue/{region}/{player_id}.
func (c *QueueController) Cancel(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["player_id"]

	cmd := in.CancelCommand{PlayerID: playerID}

	ctx := r.Context()
	removed, err := c.commands.Cancel(ctx, cmd)
	if err != nil {
		if common.IsInvalidInputError(err) {
			WriteBadRequest(w, err.Error())
			return
		}
		slog.ErrorContext(ctx, "cancel failed", "error", err, "request_id", common.RequestIDFromContext(ctx))
		WriteInternalError(w, "failed to cancel player")
		return
	}

	if !removed {
		WriteNotFound(w, "queued player")
		return
	}

	WriteNoContent(w)
}

// QueryController exposes the read side: queue snapshot and engine metrics.
type QueryController struct {
	queries in.QueueQueryHandler
}

func NewQueryController(queries in.QueueQueryHandler) *QueryController {
	return &QueryController{queries: queries}
}

// Snapshot handles GET /queue.
func (c *QueryController) Snapshot(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, c.queries.Snapshot(r.Context()))
}

// EngineMetrics handles GET /engine-metrics.
func (c *QueryController) EngineMetrics(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, c.queries.Metrics(r.Context()))
}
