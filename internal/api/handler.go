package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xtding233/matchup-backend/internal/combatant"
	"github.com/xtding233/matchup-backend/internal/constants"
	"github.com/xtding233/matchup-backend/internal/dataset"
	"github.com/xtding233/matchup-backend/internal/logging"
	"github.com/xtding233/matchup-backend/internal/matchup"
	"github.com/xtding233/matchup-backend/internal/trainer"
)

// Handler groups the matchup HTTP handlers.
type Handler struct {
	svc *matchup.Service
}

func NewHandler(svc *matchup.Service) *Handler {
	return &Handler{svc: svc}
}

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET(constants.RouteHealth, Health)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.POST(constants.RouteMatchup, h.Calculate)
		apiRoutes.GET(constants.RouteGenerations, h.Generations)
		apiRoutes.GET(constants.RouteTrainers, h.TrainerSets)
		apiRoutes.GET(constants.RouteTrainerSet, h.TrainerSet)
		apiRoutes.GET(constants.RouteWebSocket, h.Stream)
	}
	return router
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
}

// Calculate computes a two-way matchup from a JSON request body.
func (h *Handler) Calculate(c *gin.Context) {
	var req matchup.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	res, err := h.svc.Calculate(req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{constants.JSONKeyError: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// Generations lists generations with loaded trainer sets.
func (h *Handler) Generations(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Generations())
}

// TrainerSets lists every set in a generation matching ?name=.
func (h *Handler) TrainerSets(c *gin.Context) {
	gen, ok := genParam(c)
	if !ok {
		return
	}
	matches, err := h.svc.TrainerSets(gen, c.Query("name"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{constants.JSONKeyError: err.Error()})
		return
	}
	c.JSON(http.StatusOK, matches)
}

// TrainerSet returns the preset of :species picked for ?trainer=.
func (h *Handler) TrainerSet(c *gin.Context) {
	gen, ok := genParam(c)
	if !ok {
		return
	}
	p, err := h.svc.TrainerSet(gen, c.Param("species"), c.Query("trainer"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{constants.JSONKeyError: err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func genParam(c *gin.Context) (int, bool) {
	gen, err := strconv.Atoi(c.Param("gen"))
	if err != nil || gen < 1 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGeneration})
		return 0, false
	}
	return gen, true
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var (
		speciesErr   *trainer.SpeciesNotFoundError
		setErr       *trainer.TrainerSetNotFoundError
		combatantErr *matchup.CombatantError
	)
	switch {
	case errors.Is(err, combatant.ErrMissingPokemonName):
		return http.StatusBadRequest
	case errors.Is(err, dataset.ErrDatasetNotFound),
		errors.As(err, &speciesErr),
		errors.As(err, &setErr):
		return http.StatusNotFound
	case errors.As(err, &combatantErr):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.Debug("request", logging.Fields{
			constants.LogFieldMethod:  c.Request.Method,
			constants.LogFieldPath:    c.FullPath(),
			constants.LogFieldStatus:  c.Writer.Status(),
			constants.LogFieldLatency: time.Since(start).String(),
			constants.LogFieldRemote:  c.ClientIP(),
		})
	}
}
