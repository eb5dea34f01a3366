package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dbnav/object-browser/internal/models"
	"github.com/dbnav/object-browser/internal/tree"
)

var plainIdentifier = regexp.MustCompile(`^[a-z_][a-z0-9_$]*$`)

// quoteIdent double-quotes an identifier unless it is already a plain
// lower-case one.
func quoteIdent(name string) string {
	if plainIdentifier.MatchString(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// browserDraggables maps node types to the text dropped into the query
// editor: schema-qualified names for schema objects, a call with the cursor
// between the parentheses for functions, the bare name otherwise.
func browserDraggables() map[string]tree.DragHandler {
	qualified := func(data *models.NodeData, n *tree.Node) any {
		return qualifiedName(data, n)
	}
	call := func(data *models.NodeData, n *tree.Node) any {
		text := qualifiedName(data, n) + "()"
		cur := utf8.RuneCountInString(text) - 1
		return models.DragPayload{Text: text, Cur: models.Cursor{From: cur, To: cur}}
	}
	bare := func(data *models.NodeData, n *tree.Node) any {
		return quoteIdent(data.RawLabel)
	}

	return map[string]tree.DragHandler{
		"schema":    bare,
		"catalog":   bare,
		"database":  bare,
		"role":      bare,
		"column":    bare,
		"table":     qualified,
		"partition": qualified,
		"view":      qualified,
		"mview":     qualified,
		"sequence":  qualified,
		"type":      qualified,
		"domain":    qualified,
		"function":  call,
		"procedure": call,
	}
}

func qualifiedName(data *models.NodeData, n *tree.Node) string {
	name := quoteIdent(data.RawLabel)
	schema := n.Ancestor(func(a *tree.Node) bool {
		d, ok := a.Data()
		return ok && d != nil && (d.Type == "schema" || d.Type == "catalog")
	})
	if schema == nil {
		return name
	}
	d, _ := schema.Data()
	return quoteIdent(d.RawLabel) + "." + name
}
