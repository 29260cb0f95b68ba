package metrics

// Subscription actions.
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
)

// RecordUserRegistered increments the created users counter.
func RecordUserRegistered() {
	UsersRegisteredTotal.Inc()
}

// RecordArticleCreated increments the created articles counter.
func RecordArticleCreated() {
	ArticlesCreatedTotal.Inc()
}

// RecordCommentCreated increments the created comments counter.
func RecordCommentCreated() {
	CommentsCreatedTotal.Inc()
}

// RecordTopicCreated increments the created topics counter.
func RecordTopicCreated() {
	TopicsCreatedTotal.Inc()
}

// RecordSubscriptionChange records a subscribe or unsubscribe call.
func RecordSubscriptionChange(action string) {
	SubscriptionChangesTotal.WithLabelValues(action).Inc()
}

// RecordDeletion records a hard delete of the named entity type
// (user, topic, article, comment).
func RecordDeletion(entity string) {
	DeletionsTotal.WithLabelValues(entity).Inc()
}
