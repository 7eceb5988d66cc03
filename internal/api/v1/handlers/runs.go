package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/model"
	"speech2text/internal/app/repository"
)

// DefaultListLimit applies when the limit query parameter is absent.
const DefaultListLimit = 20

// ListRunsQuery holds the query parameters of GET /runs.
type ListRunsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// RunHandler serves the run-history store read-only.
type RunHandler struct {
	dao repository.TranscriptionDAO
}

// NewRunHandler creates a new run handler
func NewRunHandler(dao repository.TranscriptionDAO) *RunHandler {
	return &RunHandler{dao: dao}
}

// List handles GET /api/v1/runs
//
// @Summary List transcription runs
// @Description Returns the most recent runs first, without their segments
// @Tags runs
// @Produce json
// @Param limit query int false "Number of runs" default(20) minimum(1) maximum(100)
// @Success 200 {object} handlers.RunListResponse
// @Failure 400 {object} handlers.APIError "Invalid query parameters"
// @Failure 500 {object} handlers.APIError "History store failure"
// @Header 200 {string} X-Total-Count "Number of runs returned"
// @Router /runs [get]
func (h *RunHandler) List(c *gin.Context) {
	var query ListRunsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abort(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if query.Limit == 0 {
		query.Limit = DefaultListLimit
	}

	runs, err := h.dao.ListRuns(query.Limit)
	if err != nil {
		abort(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(len(runs)))
	c.JSON(http.StatusOK, RunListResponse{
		Runs:  lo.Map(runs, func(r model.TranscriptionRun, _ int) RunSummary { return newRunSummary(r) }),
		Count: len(runs),
	})
}

// Get handles GET /api/v1/runs/:id
//
// @Summary Get one transcription run
// @Description Returns a run with its stitched segments and full text
// @Tags runs
// @Produce json
// @Param id path int true "Run ID" minimum(1)
// @Success 200 {object} handlers.RunDetail
// @Failure 400 {object} handlers.APIError "Invalid run ID"
// @Failure 404 {object} handlers.APIError "Run not found"
// @Failure 500 {object} handlers.APIError "History store failure"
// @Router /runs/{id} [get]
func (h *RunHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		abort(c, http.StatusBadRequest, "bad_request", errors.New("invalid run id"))
		return
	}

	run, err := h.dao.GetRun(id)
	switch {
	case errors.Is(err, apperrors.ErrFileNotFound):
		abort(c, http.StatusNotFound, "not_found", err)
		return
	case err != nil:
		abort(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.JSON(http.StatusOK, newRunDetail(*run))
}

func abort(c *gin.Context, status int, kind string, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, APIError{Kind: kind, Message: err.Error()})
}
