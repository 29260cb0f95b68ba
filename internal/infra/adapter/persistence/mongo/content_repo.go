package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/repository"
	"mdd-backend/internal/resilience/circuitbreaker"
)

var (
	_ repository.TopicRepository   = (*TopicRepo)(nil)
	_ repository.ArticleRepository = (*ArticleRepo)(nil)
	_ repository.CommentRepository = (*CommentRepo)(nil)
)

func remove(ctx context.Context, cb *circuitbreaker.CircuitBreaker, c *mongo.Collection, id, notFound string) error {
	ok, err := deleteByID(ctx, cb, c, id)
	if err != nil {
		return storeError("Delete", err)
	}
	if !ok {
		return fmt.Errorf("Delete: %w", entity.NotFound(notFound))
	}
	return nil
}

// --- TopicRepository ---

type TopicRepo struct {
	c  *mongo.Collection
	cb *circuitbreaker.CircuitBreaker
}

func (r *TopicRepo) Get(ctx context.Context, id string) (*entity.Topic, error) {
	doc, err := findOne[topicDoc](ctx, r.cb, r.c, bson.M{"_id": id})
	if err != nil {
		return nil, storeError("Get", err)
	}
	if doc == nil {
		return nil, nil
	}
	return doc.entity(), nil
}

func (r *TopicRepo) GetMany(ctx context.Context, ids []string) ([]*entity.Topic, error) {
	if len(ids) == 0 {
		return []*entity.Topic{}, nil
	}
	docs, err := findAll[topicDoc](ctx, r.cb, r.c, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, storeError("GetMany", err)
	}
	return orderTopics(ids, docs), nil
}

// orderTopics returns docs in the order of ids, skipping IDs with no document.
func orderTopics(ids []string, docs []topicDoc) []*entity.Topic {
	byID := make(map[string]topicDoc, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}
	topics := make([]*entity.Topic, 0, len(docs))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			topics = append(topics, d.entity())
		}
	}
	return topics
}

func (r *TopicRepo) List(ctx context.Context) ([]*entity.Topic, error) {
	docs, err := findAll[topicDoc](ctx, r.cb, r.c, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, storeError("List", err)
	}
	topics := make([]*entity.Topic, 0, len(docs))
	for _, d := range docs {
		topics = append(topics, d.entity())
	}
	return topics, nil
}

func (r *TopicRepo) Create(ctx context.Context, topic *entity.Topic) error {
	doc := newTopicDoc(topic)
	doc.ID = uuid.NewString()
	if err := insertOne(ctx, r.cb, r.c, doc); err != nil {
		return storeError("Create", err)
	}
	topic.ID = doc.ID
	return nil
}

func (r *TopicRepo) Delete(ctx context.Context, id string) error {
	return remove(ctx, r.cb, r.c, id, "topic not found")
}

// --- ArticleRepository ---

type ArticleRepo struct {
	c  *mongo.Collection
	cb *circuitbreaker.CircuitBreaker
}

func (r *ArticleRepo) Get(ctx context.Context, id string) (*entity.Article, error) {
	doc, err := findOne[articleDoc](ctx, r.cb, r.c, bson.M{"_id": id})
	if err != nil {
		return nil, storeError("Get", err)
	}
	if doc == nil {
		return nil, nil
	}
	return doc.entity(), nil
}

// articleSort maps a sort key to a mongo sort document.
func articleSort(sort entity.SortKey) bson.D {
	dir := 1
	if sort.Descending() {
		dir = -1
	}
	return bson.D{{Key: "created_at", Value: dir}, {Key: "_id", Value: dir}}
}

func (r *ArticleRepo) List(ctx context.Context, sort entity.SortKey) ([]*entity.Article, error) {
	docs, err := findAll[articleDoc](ctx, r.cb, r.c, bson.M{}, options.Find().SetSort(articleSort(sort)))
	if err != nil {
		return nil, storeError("List", err)
	}
	articles := make([]*entity.Article, 0, len(docs))
	for _, d := range docs {
		articles = append(articles, d.entity())
	}
	return articles, nil
}

func (r *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	doc := newArticleDoc(article)
	doc.ID = uuid.NewString()
	if err := insertOne(ctx, r.cb, r.c, doc); err != nil {
		return storeError("Create", err)
	}
	article.ID = doc.ID
	return nil
}

func (r *ArticleRepo) Delete(ctx context.Context, id string) error {
	return remove(ctx, r.cb, r.c, id, "article not found")
}

// --- CommentRepository ---

type CommentRepo struct {
	c  *mongo.Collection
	cb *circuitbreaker.CircuitBreaker
}

func (r *CommentRepo) Get(ctx context.Context, id string) (*entity.Comment, error) {
	doc, err := findOne[commentDoc](ctx, r.cb, r.c, bson.M{"_id": id})
	if err != nil {
		return nil, storeError("Get", err)
	}
	if doc == nil {
		return nil, nil
	}
	return doc.entity(), nil
}

func (r *CommentRepo) List(ctx context.Context) ([]*entity.Comment, error) {
	return r.list(ctx, "List", bson.M{})
}

func (r *CommentRepo) ListByArticle(ctx context.Context, articleID string) ([]*entity.Comment, error) {
	return r.list(ctx, "ListByArticle", bson.M{"article_id": articleID})
}

func (r *CommentRepo) list(ctx context.Context, op string, filter bson.M) ([]*entity.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	docs, err := findAll[commentDoc](ctx, r.cb, r.c, filter, opts)
	if err != nil {
		return nil, storeError(op, err)
	}
	comments := make([]*entity.Comment, 0, len(docs))
	for _, d := range docs {
		comments = append(comments, d.entity())
	}
	return comments, nil
}

func (r *CommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	doc := newCommentDoc(comment)
	doc.ID = uuid.NewString()
	if err := insertOne(ctx, r.cb, r.c, doc); err != nil {
		return storeError("Create", err)
	}
	comment.ID = doc.ID
	return nil
}

func (r *CommentRepo) Delete(ctx context.Context, id string) error {
	return remove(ctx, r.cb, r.c, id, "comment not found")
}
