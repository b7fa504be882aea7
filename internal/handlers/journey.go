package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradpath/gradpath-backend/internal/logger"
	"github.com/gradpath/gradpath-backend/internal/services"
)

// JourneyHandler serves the journey engine's payloads as-is. The graph
// and progress shapes are the engine's contract with the frontend;
// nothing here reshapes them.
type JourneyHandler struct {
	log            *logger.Logger
	journeyService services.JourneyService
}

func NewJourneyHandler(log *logger.Logger, journeyService services.JourneyService) *JourneyHandler {
	return &JourneyHandler{
		log:            log.With("handler", "JourneyHandler"),
		journeyService: journeyService,
	}
}

func (h *JourneyHandler) GetProgress(c *gin.Context) {
	progress, err := h.journeyService.Progress(c.Request.Context())
	if err != nil {
		h.log.Error("GetProgress failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "progress_failed", err)
		return
	}
	RespondOK(c, progress)
}

func (h *JourneyHandler) GetJourney(c *gin.Context) {
	graph, err := h.journeyService.Graph(c.Request.Context())
	if err != nil {
		h.log.Error("GetJourney failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "journey_failed", err)
		return
	}
	RespondOK(c, graph)
}
