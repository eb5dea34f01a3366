package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/dbnav/object-browser/api/v1"
	"github.com/dbnav/object-browser/internal/services"
	srvErrors "github.com/dbnav/object-browser/pkg/errors"
)

type Handler struct {
	nav       *services.Navigator
	treeState *services.TreeStateService
}

// New builds the handler. treeState may be nil when persistence is disabled.
func New(nav *services.Navigator, treeState *services.TreeStateService) *Handler {
	return &Handler{
		nav:       nav,
		treeState: treeState,
	}
}

// RegisterHandlers mounts every route on router (the /api/v1 group).
func RegisterHandlers(router gin.IRouter, h *Handler) {
	router.GET("/trees", h.ListTrees)

	trees := router.Group("/trees/:tree")
	trees.GET("/nodes", h.ReadNode)
	trees.POST("/nodes", h.AddNode)
	trees.GET("/node", h.GetNode)
	trees.PUT("/node", h.UpdateNode)
	trees.DELETE("/node", h.RemoveNode)
	trees.POST("/node/:action", h.NodeAction)
	trees.GET("/hierarchy", h.GetHierarchy)
	trees.POST("/locate", h.Locate)
	trees.GET("/drag", h.GetDragPayload)
	trees.POST("/reset", h.ResetTree)

	router.GET("/tree-states", h.ListTreeStates)
	router.POST("/tree-states", h.SaveTreeStates)
}

// respondError maps service errors to http statuses.
func respondError(c *gin.Context, logger string, err error) {
	status := http.StatusInternalServerError
	switch {
	case srvErrors.IsResourceNotFoundError(err):
		status = http.StatusNotFound
	case srvErrors.IsInvalidOperationError(err):
		status = http.StatusConflict
	case srvErrors.IsUpstreamRejectionError(err):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		zap.S().Named(logger).Errorw("request failed", "path", c.Request.URL.Path, "error", err)
	} else {
		zap.S().Named(logger).Debugw("request rejected", "path", c.Request.URL.Path, "status", status, "error", err)
	}
	c.JSON(status, v1.ErrorResponse{Error: err.Error()})
}
