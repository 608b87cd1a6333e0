package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"quote-simulator/internal/api/models"
	"quote-simulator/internal/export"
	"quote-simulator/internal/session"
	"quote-simulator/internal/store"

	"github.com/gin-gonic/gin"
)

// SimulatorHandler handles stored-simulator CRUD and exports.
type SimulatorHandler struct {
	store *store.Store
}

// NewSimulatorHandler creates a new simulator handler
func NewSimulatorHandler(s *store.Store) *SimulatorHandler {
	return &SimulatorHandler{store: s}
}

// ListSimulators handles GET /api/v1/simulators
func (h *SimulatorHandler) ListSimulators(c *gin.Context) {
	stored, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, storeError(err))
		return
	}
	infos := make([]models.SimulatorInfo, 0, len(stored))
	for _, st := range stored {
		infos = append(infos, models.SimulatorInfo{
			ID:         st.ID,
			Name:       st.Simulator.Name,
			FieldCount: len(st.Simulator.Fields),
			UpdatedAt:  st.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"simulators": infos})
}

// GetSimulator handles GET /api/v1/simulators/:id
func (h *SimulatorHandler) GetSimulator(c *gin.Context) {
	st, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.SimulatorResponse{
		ID:        st.ID,
		UpdatedAt: st.UpdatedAt,
		Config:    models.PayloadFromModel(st.Simulator),
	})
}

// CreateSimulator handles POST /api/v1/simulators
func (h *SimulatorHandler) CreateSimulator(c *gin.Context) {
	var payload models.SimulatorPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}
	st, err := h.store.Create(c.Request.Context(), payload.ToModel())
	if err != nil {
		c.JSON(http.StatusInternalServerError, storeError(err))
		return
	}
	c.JSON(http.StatusCreated, models.SimulatorResponse{
		ID:        st.ID,
		UpdatedAt: st.UpdatedAt,
		Config:    models.PayloadFromModel(st.Simulator),
	})
}

// UpdateSimulator handles PUT /api/v1/simulators/:id
func (h *SimulatorHandler) UpdateSimulator(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload models.SimulatorPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}
	st, err := h.store.Update(c.Request.Context(), id, payload.ToModel())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, notFound(id))
			return
		}
		c.JSON(http.StatusInternalServerError, storeError(err))
		return
	}
	c.JSON(http.StatusOK, models.SimulatorResponse{
		ID:        st.ID,
		UpdatedAt: st.UpdatedAt,
		Config:    models.PayloadFromModel(st.Simulator),
	})
}

// DeleteSimulator handles DELETE /api/v1/simulators/:id
func (h *SimulatorHandler) DeleteSimulator(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, notFound(id))
			return
		}
		c.JSON(http.StatusInternalServerError, storeError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportSimulator handles GET /api/v1/simulators/:id/export?format=csv|document.
// The export reflects the seeded defaults evaluated once; live sessions
// export through POST /api/v1/export with their current values.
func (h *SimulatorHandler) ExportSimulator(c *gin.Context) {
	st, ok := h.load(c)
	if !ok {
		return
	}
	sess := session.NewWithSimulator(st.Simulator)
	result := sess.Evaluate()
	snap := export.Take(sess.Simulator(), sess.Values(), result, time.Now())
	writeExport(c, snap, c.Query("format"))
}

// RunExport handles POST /api/v1/export for unsaved sessions.
func (h *SimulateHandler) RunExport(c *gin.Context) {
	var req models.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}
	sess := session.NewWithSimulator(req.Config.ToModel())
	for label, v := range models.ValuesToModel(req.Values) {
		sess.SetValue(label, v)
	}
	result := sess.Evaluate()
	snap := export.Take(sess.Simulator(), sess.Values(), result, time.Now())
	writeExport(c, snap, req.Format)
}

func writeExport(c *gin.Context, snap export.Snapshot, format string) {
	var buf bytes.Buffer
	switch format {
	case "csv":
		if err := export.WriteCSV(&buf, snap); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "EXPORT_ERROR", Message: err.Error()},
			})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="simulation.csv"`)
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	case "", "document":
		if err := export.WriteDocument(&buf, snap); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "EXPORT_ERROR", Message: err.Error()},
			})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="simulation.txt"`)
		c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_FORMAT",
				Message: fmt.Sprintf("unsupported export format %q", format),
			},
		})
	}
}

func (h *SimulatorHandler) load(c *gin.Context) (store.Stored, bool) {
	id, ok := parseID(c)
	if !ok {
		return store.Stored{}, false
	}
	st, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, notFound(id))
			return store.Stored{}, false
		}
		c.JSON(http.StatusInternalServerError, storeError(err))
		return store.Stored{}, false
	}
	return st, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_ID",
				Message: fmt.Sprintf("invalid simulator id %q", c.Param("id")),
			},
		})
		return 0, false
	}
	return id, true
}

func notFound(id int64) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_FOUND",
			Message: fmt.Sprintf("no simulator with id %d", id),
		},
	}
}

func storeError(err error) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.ErrorDetail{Code: "STORE_ERROR", Message: err.Error()},
	}
}
