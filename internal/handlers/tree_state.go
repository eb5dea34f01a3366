package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	v1 "github.com/dbnav/object-browser/api/v1"
	"github.com/dbnav/object-browser/internal/models"
	"github.com/dbnav/object-browser/internal/services"
)

const treeStateLogger = "tree_state_handler"

// ListTreeStates returns the saved expansion state of the trees
// (GET /tree-states?tree=&limit=)
func (h *Handler) ListTreeStates(c *gin.Context) {
	if !h.treeStateEnabled(c) {
		return
	}

	params := services.TreeStateListParams{}
	for _, t := range c.QueryArray("tree") {
		params.Trees = append(params.Trees, models.TreeName(t))
	}
	if l := c.Query("limit"); l != "" {
		limit, err := strconv.ParseUint(l, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: "invalid limit"})
			return
		}
		params.Limit = limit
	}

	states, err := h.treeState.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, treeStateLogger, err)
		return
	}

	resp := v1.TreeStateListResponse{States: make([]v1.TreeState, 0, len(states))}
	for _, s := range states {
		var apiState v1.TreeState
		apiState.FromModel(s)
		resp.States = append(resp.States, apiState)
	}
	c.JSON(http.StatusOK, resp)
}

// SaveTreeStates snapshots every tree now
// (POST /tree-states)
func (h *Handler) SaveTreeStates(c *gin.Context) {
	if !h.treeStateEnabled(c) {
		return
	}
	if err := h.treeState.Save(c.Request.Context()); err != nil {
		respondError(c, treeStateLogger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) treeStateEnabled(c *gin.Context) bool {
	if h.treeState == nil {
		c.JSON(http.StatusServiceUnavailable, v1.ErrorResponse{Error: "tree state persistence is disabled"})
		return false
	}
	return true
}
