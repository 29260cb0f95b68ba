// Package topic provides use cases for the topics users subscribe to and
// post articles under.
package topic

import "mdd-backend/internal/domain/entity"

// ErrTopicNotFound indicates that the requested topic does not exist.
var ErrTopicNotFound = entity.NotFound("topic not found")
