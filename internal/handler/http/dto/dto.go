// Package dto holds the JSON shapes shared by the HTTP handlers.
package dto

import (
	"time"

	"mdd-backend/internal/domain/entity"
	artUC "mdd-backend/internal/usecase/article"
	commentUC "mdd-backend/internal/usecase/comment"
	userUC "mdd-backend/internal/usecase/user"
)

// Topic is the JSON form of a topic.
type Topic struct {
	ID          string `json:"id" example:"5f0c0c1e-3d7a-4b7e-9a0e-3f6f2b8f7c11"`
	Name        string `json:"name" example:"Go"`
	Description string `json:"description" example:"Everything about Go"`
}

// User is the public view of a user. The password hash never leaves the server.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email" example:"alice@example.com"`
	Username      string    `json:"username" example:"alice"`
	Subscriptions []Topic   `json:"subscriptions"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Comment is a comment with its author. Author is null when the author no
// longer exists.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content" example:"Nice write-up"`
	CreatedAt time.Time `json:"createdAt"`
	Author    *User     `json:"author"`
	ArticleID string    `json:"articleId"`
}

// Article is an article with its author, topic and comments.
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title" example:"Understanding contexts"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Author    *User     `json:"author"`
	Topic     *Topic    `json:"topic"`
	Comments  []Comment `json:"comments"`
}

// Token is returned by register and login.
type Token struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// MessageResponse is the body of operations that return no resource.
type MessageResponse struct {
	Message string `json:"message" example:"deleted"`
}

func FromTopic(t *entity.Topic) *Topic {
	if t == nil {
		return nil
	}
	return &Topic{ID: t.ID, Name: t.Name, Description: t.Description}
}

func FromTopics(ts []*entity.Topic) []Topic {
	out := make([]Topic, 0, len(ts))
	for _, t := range ts {
		if t != nil {
			out = append(out, *FromTopic(t))
		}
	}
	return out
}

func FromUser(v *userUC.View) *User {
	if v == nil {
		return nil
	}
	return &User{
		ID:            v.ID,
		Email:         v.Email,
		Username:      v.Username,
		Subscriptions: FromTopics(v.Subscriptions),
		CreatedAt:     v.CreatedAt,
	}
}

func FromUsers(vs []*userUC.View) []User {
	out := make([]User, 0, len(vs))
	for _, v := range vs {
		if v != nil {
			out = append(out, *FromUser(v))
		}
	}
	return out
}

func FromComment(v *commentUC.View) *Comment {
	if v == nil {
		return nil
	}
	return &Comment{
		ID:        v.ID,
		Content:   v.Content,
		CreatedAt: v.CreatedAt,
		Author:    FromUser(v.Author),
		ArticleID: v.ArticleID,
	}
}

func FromComments(vs []*commentUC.View) []Comment {
	out := make([]Comment, 0, len(vs))
	for _, v := range vs {
		if v != nil {
			out = append(out, *FromComment(v))
		}
	}
	return out
}

func FromArticle(v *artUC.View) *Article {
	if v == nil {
		return nil
	}
	return &Article{
		ID:        v.ID,
		Title:     v.Title,
		Content:   v.Content,
		CreatedAt: v.CreatedAt,
		Author:    FromUser(v.Author),
		Topic:     FromTopic(v.Topic),
		Comments:  FromComments(v.Comments),
	}
}

func FromArticles(vs []*artUC.View) []Article {
	out := make([]Article, 0, len(vs))
	for _, v := range vs {
		if v != nil {
			out = append(out, *FromArticle(v))
		}
	}
	return out
}
