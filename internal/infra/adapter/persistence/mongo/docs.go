package mongo

import (
	"time"

	"mdd-backend/internal/domain/entity"
)

type userDoc struct {
	ID                 string    `bson:"_id"`
	Email              string    `bson:"email"`
	Username           string    `bson:"username"`
	Password           string    `bson:"password"`
	SubscribedTopicIDs []string  `bson:"subscribed_topic_ids"`
	CreatedAt          time.Time `bson:"created_at"`
}

func newUserDoc(u *entity.User) userDoc {
	subs := u.SubscribedTopicIDs
	if subs == nil {
		subs = []string{}
	}
	return userDoc{
		ID:                 u.ID,
		Email:              u.Email,
		Username:           u.Username,
		Password:           u.Password,
		SubscribedTopicIDs: subs,
		CreatedAt:          u.CreatedAt,
	}
}

func (d userDoc) entity() *entity.User {
	subs := d.SubscribedTopicIDs
	if subs == nil {
		subs = []string{}
	}
	return &entity.User{
		ID:                 d.ID,
		Email:              d.Email,
		Username:           d.Username,
		Password:           d.Password,
		SubscribedTopicIDs: subs,
		CreatedAt:          d.CreatedAt,
	}
}

type topicDoc struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description"`
}

func newTopicDoc(t *entity.Topic) topicDoc {
	return topicDoc{ID: t.ID, Name: t.Name, Description: t.Description}
}

func (d topicDoc) entity() *entity.Topic {
	return &entity.Topic{ID: d.ID, Name: d.Name, Description: d.Description}
}

type articleDoc struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
	AuthorID  string    `bson:"author_id"`
	TopicID   string    `bson:"topic_id"`
}

func newArticleDoc(a *entity.Article) articleDoc {
	return articleDoc{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
		AuthorID:  a.AuthorID,
		TopicID:   a.TopicID,
	}
}

func (d articleDoc) entity() *entity.Article {
	return &entity.Article{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		AuthorID:  d.AuthorID,
		TopicID:   d.TopicID,
	}
}

type commentDoc struct {
	ID        string    `bson:"_id"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
	AuthorID  string    `bson:"author_id"`
	ArticleID string    `bson:"article_id"`
}

func newCommentDoc(c *entity.Comment) commentDoc {
	return commentDoc{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		AuthorID:  c.AuthorID,
		ArticleID: c.ArticleID,
	}
}

func (d commentDoc) entity() *entity.Comment {
	return &entity.Comment{
		ID:        d.ID,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		AuthorID:  d.AuthorID,
		ArticleID: d.ArticleID,
	}
}
