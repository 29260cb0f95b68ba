// Package entity defines the core domain entities of the MDD network:
// users, the topics they subscribe to, articles posted under topics and
// comments on articles, together with the domain error taxonomy.
package entity

import (
	"slices"
	"time"
)

// User is a registered member. Password holds a bcrypt hash, never plain text.
type User struct {
	ID                 string
	Email              string
	Username           string
	Password           string
	SubscribedTopicIDs []string
	CreatedAt          time.Time
}

// IsSubscribed reports whether topicID is in the user's subscription set.
func (u *User) IsSubscribed(topicID string) bool {
	return slices.Contains(u.SubscribedTopicIDs, topicID)
}

// Subscribe adds topicID to the subscription set. It reports false when the
// topic was already present.
func (u *User) Subscribe(topicID string) bool {
	if u.IsSubscribed(topicID) {
		return false
	}
	u.SubscribedTopicIDs = append(u.SubscribedTopicIDs, topicID)
	return true
}

// Unsubscribe removes topicID from the subscription set. It reports false when
// the topic was not present.
func (u *User) Unsubscribe(topicID string) bool {
	i := slices.Index(u.SubscribedTopicIDs, topicID)
	if i < 0 {
		return false
	}
	u.SubscribedTopicIDs = slices.Delete(u.SubscribedTopicIDs, i, i+1)
	return true
}
