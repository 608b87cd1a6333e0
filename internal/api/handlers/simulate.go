package handlers

import (
	"net/http"

	"quote-simulator/internal/api/models"
	"quote-simulator/internal/config"
	"quote-simulator/internal/formula"
	"quote-simulator/internal/session"

	"github.com/gin-gonic/gin"
)

// SimulateHandler handles one-shot evaluation and authoring validation.
type SimulateHandler struct{}

// NewSimulateHandler creates a new simulate handler
func NewSimulateHandler() *SimulateHandler {
	return &SimulateHandler{}
}

// RunSimulation handles POST /api/v1/simulate.
//
// The request carries the full simulator definition plus the user's
// current inputs; missing inputs are seeded from field defaults. A
// formula failure is not an HTTP error: the response still renders,
// with status "error" and the sentinel message.
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	sim := req.Config.ToModel()
	sess := session.NewWithSimulator(sim)
	for label, v := range models.ValuesToModel(req.Values) {
		sess.SetValue(label, v)
	}
	result := sess.Evaluate()

	c.JSON(http.StatusOK, buildSimulateResponse(sess, result))
}

// Validate handles POST /api/v1/simulators/validate. It never rejects:
// the response lists the authoring problems lint found, if any.
func (h *SimulateHandler) Validate(c *gin.Context) {
	var payload models.SimulatorPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	warnings := config.Lint(payload.ToModel())
	c.JSON(http.StatusOK, models.ValidateResponse{
		Valid:    len(warnings) == 0,
		Warnings: warnings,
	})
}

func buildSimulateResponse(sess *session.Session, result formula.Result) models.SimulateResponse {
	sim := sess.Simulator()
	resp := models.SimulateResponse{
		Status:   "ok",
		Result:   result.Display(),
		Values:   models.ValuesFromModel(sess.Values()),
		Bindings: formula.Bind(sim.Fields, sess.Values()),
	}
	if result.Failed() {
		resp.Status = "error"
		resp.Error = result.Err
		return resp
	}
	if n, ok := result.Value.Number(); ok {
		v := n
		resp.Value = &v
	} else if s, ok := result.Value.Text(); ok {
		resp.Text = s
	}
	return resp
}
