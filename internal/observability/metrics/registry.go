// Package metrics holds the domain-level Prometheus metrics of the MDD
// backend. HTTP request metrics live with the HTTP middleware.
package metrics

import (
	"database/sql"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track what users do.
var (
	// UsersRegisteredTotal counts successful user creations, through
	// registration or the users API.
	UsersRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mdd_users_registered_total",
			Help: "Total number of users created",
		},
	)

	// ArticlesCreatedTotal counts published articles.
	ArticlesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mdd_articles_created_total",
			Help: "Total number of articles created",
		},
	)

	// CommentsCreatedTotal counts posted comments.
	CommentsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mdd_comments_created_total",
			Help: "Total number of comments created",
		},
	)

	// TopicsCreatedTotal counts created topics.
	TopicsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mdd_topics_created_total",
			Help: "Total number of topics created",
		},
	)

	// SubscriptionChangesTotal counts subscribe and unsubscribe calls.
	SubscriptionChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mdd_subscription_changes_total",
			Help: "Total number of topic subscription changes",
		},
		[]string{"action"},
	)

	// DeletionsTotal counts hard deletes by entity type.
	DeletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mdd_deletions_total",
			Help: "Total number of deleted entities",
		},
		[]string{"entity"},
	)
)

// RegisterDBStats exposes the connection pool statistics of db under the
// given name. Registering the same name twice is not an error.
func RegisterDBStats(db *sql.DB, name string) error {
	err := prometheus.Register(collectors.NewDBStatsCollector(db, name))
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		return nil
	}
	return err
}
