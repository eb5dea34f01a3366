package v1

import (
	"time"

	"github.com/dbnav/object-browser/internal/models"
)

// Node is one tree node as returned by the api.
type Node struct {
	ID        string         `json:"id"`
	Path      string         `json:"path"`
	Label     string         `json:"label,omitempty"`
	Type      string         `json:"type,omitempty"`
	Inode     bool           `json:"inode"`
	Loaded    bool           `json:"loaded"`
	Open      bool           `json:"open"`
	HasParent bool           `json:"hasParent"`
	Data      map[string]any `json:"data"`
}

type NodeListResponse struct {
	Path  string `json:"path"`
	Nodes []Node `json:"nodes"`
	Total int    `json:"total"`
}

type AddNodeRequest struct {
	Parent string         `json:"parent" binding:"required"`
	Path   string         `json:"path" binding:"required"`
	Data   map[string]any `json:"data"`
}

type UpdateNodeRequest struct {
	Data map[string]any `json:"data" binding:"required"`
}

type LocateRequest struct {
	Path string `json:"path" binding:"required"`
}

type HierarchyResponse struct {
	Path      string           `json:"path"`
	Hierarchy models.Hierarchy `json:"hierarchy"`
}

type DragResponse struct {
	Path    string             `json:"path"`
	Payload models.DragPayload `json:"payload"`
}

type TreeListResponse struct {
	Trees []string `json:"trees"`
}

type TreeState struct {
	Tree      string    `json:"tree"`
	Expanded  []string  `json:"expanded"`
	Selected  string    `json:"selected,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TreeStateListResponse struct {
	States []TreeState `json:"states"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
