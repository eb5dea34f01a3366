package store

// Tree state queries
const (
	queryUpsertTreeState = `
		INSERT INTO tree_state (tree, expanded, selected, updated_at)
		VALUES (?, ?, ?, now())
		ON CONFLICT (tree) DO UPDATE SET
			expanded = EXCLUDED.expanded,
			selected = EXCLUDED.selected,
			updated_at = now()`

	queryDeleteTreeState = `DELETE FROM tree_state WHERE tree = ?`
)
