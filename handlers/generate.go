package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"formfiller/models"
	"formfiller/utils"
)

// Runner executes a submission run.
type Runner interface {
	Run(ctx context.Context, req models.GenerateRequest) (models.RunResult, error)
}

type GenerateHandler struct {
	runner Runner
	logger *zap.Logger
}

func NewGenerateHandler(runner Runner, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{runner: runner, logger: logger.Named("generate")}
}

// Generate runs the requested number of submissions and blocks until they finish.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(c, "Invalid input.")
		return
	}

	result, err := h.runner.Run(c.Request.Context(), req)
	var invalid *models.ValidationError
	switch {
	case errors.As(err, &invalid):
		utils.BadRequestError(c, invalid.Message)
	case err != nil:
		h.logger.Error("Run failed",
			zap.String("run_id", result.RunID),
			zap.Int("completed", result.Completed),
			zap.Error(err))
		utils.InternalServerError(c, "Error generating responses.", err)
	default:
		utils.SuccessMessage(c, result.SuccessMessage())
	}
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
