package models

import "time"

type TreeName string

const (
	TreeBrowser     TreeName = "browser"
	TreePreferences TreeName = "preferences"
)

// TreeState is the persisted expansion and selection state of a tree.
type TreeState struct {
	Tree      TreeName
	Expanded  []string
	Selected  string
	UpdatedAt time.Time
}
