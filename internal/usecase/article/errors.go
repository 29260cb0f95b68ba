// Package article provides use cases for articles: publishing under a topic,
// the aggregate view with author, topic and comments, sorted listings and
// deletion.
package article

import "mdd-backend/internal/domain/entity"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = entity.NotFound("article not found")

	// ErrTopicNotFound is returned when publishing under an unknown topic.
	ErrTopicNotFound = entity.NotFound("topic not found")
)
