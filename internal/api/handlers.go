package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/FractalMesh/api/internal/noise"
	"github.com/FractalMesh/api/internal/world"
)

type Handler struct {
	worldManager *world.Manager
}

func NewHandler(worldManager *world.Manager) *Handler {
	return &Handler{
		worldManager: worldManager,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "fractalmesh-api",
		"version":   "1.0.0",
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

func (h *Handler) CreateWorld(w http.ResponseWriter, r *http.Request) {
	var req world.CreateWorldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.worldManager.CreateWorld(ctx, req)
	if err != nil {
		if errors.Is(err, noise.ErrInvalidParameter) {
			h.renderError(w, r, http.StatusBadRequest, "invalid world parameters", err)
			return
		}
		log.Error("failed to create world", "error", err, "name", req.Name)
		h.renderError(w, r, http.StatusInternalServerError, "failed to create world", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

func (h *Handler) ListWorlds(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	worlds, err := h.worldManager.ListWorlds(ctx)
	if err != nil {
		log.Error("failed to list worlds", "error", err)
		h.renderError(w, r, http.StatusInternalServerError, "failed to list worlds", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{"worlds": worlds})
}

func (h *Handler) GetWorld(w http.ResponseWriter, r *http.Request) {
	worldID, ok := h.worldID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	found, err := h.worldManager.GetWorld(ctx, worldID)
	if err != nil {
		if errors.Is(err, world.ErrWorldNotFound) {
			h.renderError(w, r, http.StatusNotFound, "world not found", err)
			return
		}
		log.Error("failed to get world", "error", err, "world_id", worldID)
		h.renderError(w, r, http.StatusInternalServerError, "failed to get world", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, found)
}

func (h *Handler) DeleteWorld(w http.ResponseWriter, r *http.Request) {
	worldID, ok := h.worldID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.worldManager.DeleteWorld(ctx, worldID); err != nil {
		if errors.Is(err, world.ErrWorldNotFound) {
			h.renderError(w, r, http.StatusNotFound, "world not found", err)
			return
		}
		log.Error("failed to delete world", "error", err, "world_id", worldID)
		h.renderError(w, r, http.StatusInternalServerError, "failed to delete world", err)
		return
	}

	render.Status(r, http.StatusNoContent)
	render.NoContent(w, r)
}

// SamplePoint evaluates the world's noise at the coordinates given as
// query parameters. x is required; y and z widen the sample to 2D/3D.
func (h *Handler) SamplePoint(w http.ResponseWriter, r *http.Request) {
	worldID, ok := h.worldID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	if !query.Has("x") {
		h.renderError(w, r, http.StatusBadRequest, "missing x coordinate", nil)
		return
	}

	coords := make([]float64, 0, 3)
	for _, key := range []string{"x", "y", "z"} {
		if !query.Has(key) {
			break
		}
		v, err := strconv.ParseFloat(query.Get(key), 64)
		if err != nil {
			h.renderError(w, r, http.StatusBadRequest, "invalid "+key+" coordinate", err)
			return
		}
		coords = append(coords, v)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := h.worldManager.SampleAt(ctx, worldID, coords)
	if err != nil {
		if errors.Is(err, world.ErrWorldNotFound) {
			h.renderError(w, r, http.StatusNotFound, "world not found", err)
			return
		}
		log.Error("failed to sample world", "error", err, "world_id", worldID)
		h.renderError(w, r, http.StatusInternalServerError, "failed to sample world", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, result)
}

func (h *Handler) GetChunk(w http.ResponseWriter, r *http.Request) {
	worldID, ok := h.worldID(w, r)
	if !ok {
		return
	}

	chunkX, err := strconv.ParseInt(chi.URLParam(r, "x"), 10, 64)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid chunk x coordinate", err)
		return
	}

	chunkZ, err := strconv.ParseInt(chi.URLParam(r, "z"), 10, 64)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid chunk z coordinate", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	chunk, err := h.worldManager.GenerateChunk(ctx, worldID, chunkX, chunkZ)
	if err != nil {
		if errors.Is(err, world.ErrWorldNotFound) {
			h.renderError(w, r, http.StatusNotFound, "world not found", err)
			return
		}
		log.Error("failed to generate chunk", "error", err, "world_id", worldID, "chunk_x", chunkX, "chunk_z", chunkZ)
		h.renderError(w, r, http.StatusInternalServerError, "failed to generate chunk", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, chunk)
}

func (h *Handler) worldID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	worldID, err := strconv.ParseInt(chi.URLParam(r, "worldId"), 10, 64)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid world id", err)
		return 0, false
	}
	return worldID, true
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	response := ErrorResponse{
		Error: message,
		Code:  status,
	}
	if err != nil {
		response.Message = err.Error()
	}

	render.Status(r, status)
	render.JSON(w, r, response)
}
