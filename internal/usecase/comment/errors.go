// Package comment provides use cases for comments posted on articles.
package comment

import "mdd-backend/internal/domain/entity"

// Sentinel errors for comment use case operations.
var (
	ErrCommentNotFound = entity.NotFound("comment not found")
	ErrArticleNotFound = entity.NotFound("article not found")
)
