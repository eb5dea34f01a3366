package util

import (
	"strings"
)

// JoinPath appends id to a tree path.
func JoinPath(parent, id string) string {
	return strings.TrimSuffix(parent, "/") + "/" + id
}

// SplitPath returns the parent path and the last segment of p.
func SplitPath(p string) (string, string) {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return "", p
	}
	return p[:i], p[i+1:]
}

// IsPathPrefix reports whether prefix is p itself or one of its ancestors.
// Matching is done on whole segments, so /browser/srv1 is not a prefix of
// /browser/srv10.
func IsPathPrefix(prefix, p string) bool {
	if !strings.HasPrefix(p, prefix) {
		return false
	}
	return len(p) == len(prefix) || strings.HasSuffix(prefix, "/") || p[len(prefix)] == '/'
}

// SegmentsToPath joins locate segments. The first segment is the root
// sentinel and keeps its leading slash.
func SegmentsToPath(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	p := segments[0]
	for _, s := range segments[1:] {
		p = JoinPath(p, strings.Trim(s, "/"))
	}
	return p
}

// PathToSegments is the inverse of SegmentsToPath for a path under root.
// It returns nil when p is not under root.
func PathToSegments(root, p string) []string {
	if !IsPathPrefix(root, p) {
		return nil
	}
	segments := []string{root}
	rest := strings.Trim(p[len(root):], "/")
	if rest == "" {
		return segments
	}
	return append(segments, strings.Split(rest, "/")...)
}
