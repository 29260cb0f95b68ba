// Package pathutil reads IDs from routed requests and reduces request paths
// to low-cardinality metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns is evaluated in order; literal segments such as /api/users/me
// are listed before the ID patterns that would also match them.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/users/me$`), Template: "/api/users/me"},
	{Pattern: regexp.MustCompile(`^/api/users/[^/]+/subscriptions$`), Template: "/api/users/:topicId/subscriptions"},
	{Pattern: regexp.MustCompile(`^/api/users/[^/]+/unsubscriptions$`), Template: "/api/users/:topicId/unsubscriptions"},
	{Pattern: regexp.MustCompile(`^/api/users/[^/]+$`), Template: "/api/users/:id"},
	{Pattern: regexp.MustCompile(`^/api/topics/[^/]+$`), Template: "/api/topics/:id"},
	{Pattern: regexp.MustCompile(`^/api/articles/[^/]+$`), Template: "/api/articles/:id"},
	{Pattern: regexp.MustCompile(`^/api/comments/[^/]+$`), Template: "/api/comments/:id"},
	{Pattern: regexp.MustCompile(`^/swagger/.*$`), Template: "/swagger/*"},
}

// NormalizePath replaces IDs in path with placeholders. Query strings and a
// trailing slash are dropped; unknown paths are returned unchanged.
//
//	NormalizePath("/api/articles/5f2c...")  // "/api/articles/:id"
//	NormalizePath("/api/users/me")          // "/api/users/me"
//	NormalizePath("/health")                // "/health"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
