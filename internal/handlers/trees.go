package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/dbnav/object-browser/api/v1"
	"github.com/dbnav/object-browser/internal/tree"
	"github.com/dbnav/object-browser/internal/util"
	srvErrors "github.com/dbnav/object-browser/pkg/errors"
)

const treeLogger = "tree_handler"

// ListTrees returns the names of the trees served
// (GET /trees)
func (h *Handler) ListTrees(c *gin.Context) {
	names := h.nav.Names()
	resp := v1.TreeListResponse{Trees: make([]string, 0, len(names))}
	for _, n := range names {
		resp.Trees = append(resp.Trees, string(n))
	}
	c.JSON(http.StatusOK, resp)
}

// ReadNode returns the children of a node, loading them on first use
// (GET /trees/{tree}/nodes?path=)
func (h *Handler) ReadNode(c *gin.Context) {
	t, ok := h.tree(c)
	if !ok {
		return
	}
	path := c.DefaultQuery("path", t.Store().RootPath())
	if t.FindNode(path) == nil {
		respondError(c, treeLogger, srvErrors.NewNodeNotFoundError(path))
		return
	}

	children := t.Store().ReadNode(c.Request.Context(), path)
	c.JSON(http.StatusOK, v1.NewNodeListFromModel(path, children, t.IsOpen))
}

// GetNode returns a single node
// (GET /trees/{tree}/node?path=)
func (h *Handler) GetNode(c *gin.Context) {
	t, n, ok := h.node(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, v1.NewNodeFromModel(n, t.IsOpen(n)))
}

// AddNode inserts a node under an existing parent
// (POST /trees/{tree}/nodes)
func (h *Handler) AddNode(c *gin.Context) {
	t, ok := h.tree(c)
	if !ok {
		return
	}

	var req v1.AddNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
		return
	}

	n, err := t.AddNode(c.Request.Context(), req.Parent, req.Path, v1.RawRow(req.Data))
	if err != nil {
		respondError(c, treeLogger, err)
		return
	}
	c.JSON(http.StatusCreated, v1.NewNodeFromModel(n, t.IsOpen(n)))
}

// UpdateNode replaces the data of a node
// (PUT /trees/{tree}/node?path=)
func (h *Handler) UpdateNode(c *gin.Context) {
	t, ok := h.tree(c)
	if !ok {
		return
	}

	var req v1.UpdateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
		return
	}

	path := c.Query("path")
	if !t.Store().UpdateNode(path, v1.RawRow(req.Data)) {
		respondError(c, treeLogger, srvErrors.NewNodeNotFoundError(path))
		return
	}
	n := t.FindNode(path)
	c.JSON(http.StatusOK, v1.NewNodeFromModel(n, t.IsOpen(n)))
}

// RemoveNode detaches a node and its subtree
// (DELETE /trees/{tree}/node?path=)
func (h *Handler) RemoveNode(c *gin.Context) {
	t, ok := h.tree(c)
	if !ok {
		return
	}
	if err := t.RemoveNode(c.Request.Context(), c.Query("path")); err != nil {
		respondError(c, treeLogger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// NodeAction runs a renderer operation on a node
// (POST /trees/{tree}/node/{action}?path=)
func (h *Handler) NodeAction(c *gin.Context) {
	t, n, ok := h.node(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var err error
	switch action := c.Param("action"); action {
	case "open":
		err = n.Open(ctx, t, false)
	case "close":
		err = t.Close(ctx, n)
	case "toggle":
		err = t.Toggle(ctx, n)
	case "select":
		err = t.Select(ctx, n)
	case "deselect":
		err = t.Deselect(ctx, n)
	case "refresh":
		err = t.Refresh(ctx, n)
	case "reload":
		err = n.Reload(ctx, t)
	case "unload":
		err = n.Unload(ctx, t)
	default:
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: "unknown action " + action})
		return
	}
	if err != nil {
		respondError(c, treeLogger, err)
		return
	}
	c.JSON(http.StatusOK, v1.NewNodeFromModel(n, t.IsOpen(n)))
}

// GetHierarchy returns the typed ancestry of a node. Unknown nodes yield an
// empty hierarchy.
// (GET /trees/{tree}/hierarchy?path=)
func (h *Handler) GetHierarchy(c *gin.Context) {
	t, ok := h.tree(c)
	if !ok {
		return
	}
	path := c.Query("path")
	c.JSON(http.StatusOK, v1.HierarchyResponse{
		Path:      path,
		Hierarchy: t.GetTreeNodeHierarchyByPath(path),
	})
}

// Locate opens every ancestor of a path and returns its node
// (POST /trees/{tree}/locate)
func (h *Handler) Locate(c *gin.Context) {
	t, ok := h.tree(c)
	if !ok {
		return
	}

	var req v1.LocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
		return
	}

	segments := util.PathToSegments(t.Store().RootPath(), req.Path)
	if segments == nil {
		respondError(c, treeLogger, srvErrors.NewNodeNotFoundError(req.Path))
		return
	}
	n, err := t.FindNodeWithToggle(c.Request.Context(), segments)
	if err != nil {
		respondError(c, treeLogger, err)
		return
	}
	c.JSON(http.StatusOK, v1.NewNodeFromModel(n, t.IsOpen(n)))
}

// GetDragPayload returns the text dropped into the editor for a node
// (GET /trees/{tree}/drag?path=)
func (h *Handler) GetDragPayload(c *gin.Context) {
	t, n, ok := h.node(c)
	if !ok {
		return
	}
	payload, ok := t.DragPayload(n)
	if !ok {
		respondError(c, treeLogger, srvErrors.NewResourceNotFoundError("drag handler", n.Path()))
		return
	}
	c.JSON(http.StatusOK, v1.DragResponse{Path: n.Path(), Payload: payload})
}

// ResetTree drops every loaded node
// (POST /trees/{tree}/reset)
func (h *Handler) ResetTree(c *gin.Context) {
	t, ok := h.tree(c)
	if !ok {
		return
	}
	if err := t.Reset(c.Request.Context()); err != nil {
		respondError(c, treeLogger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) tree(c *gin.Context) (*tree.Tree, bool) {
	t, err := h.nav.Tree(c.Param("tree"))
	if err != nil {
		respondError(c, treeLogger, err)
		return nil, false
	}
	return t, true
}

func (h *Handler) node(c *gin.Context) (*tree.Tree, *tree.Node, bool) {
	t, ok := h.tree(c)
	if !ok {
		return nil, nil, false
	}
	path := c.DefaultQuery("path", t.Store().RootPath())
	n := t.FindNode(path)
	if n == nil {
		respondError(c, treeLogger, srvErrors.NewNodeNotFoundError(path))
		return nil, nil, false
	}
	return t, n, true
}
