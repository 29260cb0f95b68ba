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

type UserRepo struct {
	c  *mongo.Collection
	cb *circuitbreaker.CircuitBreaker
}

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) getOne(ctx context.Context, op string, filter bson.M) (*entity.User, error) {
	doc, err := findOne[userDoc](ctx, r.cb, r.c, filter)
	if err != nil {
		return nil, storeError(op, err)
	}
	if doc == nil {
		return nil, nil
	}
	return doc.entity(), nil
}

func (r *UserRepo) Get(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "Get", bson.M{"_id": id})
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "GetByEmail", bson.M{"email": email})
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, "GetByUsername", bson.M{"username": username})
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	docs, err := findAll[userDoc](ctx, r.cb, r.c, bson.M{}, opts)
	if err != nil {
		return nil, storeError("List", err)
	}
	users := make([]*entity.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.entity())
	}
	return users, nil
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	doc := newUserDoc(user)
	doc.ID = uuid.NewString()
	if err := insertOne(ctx, r.cb, r.c, doc); err != nil {
		return storeError("Create", err)
	}
	user.ID = doc.ID
	return nil
}

func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	update := bson.M{"$set": bson.M{
		"email":    user.Email,
		"username": user.Username,
		"password": user.Password,
	}}
	return r.updateOne(ctx, "Update", user.ID, update, true)
}

// AddSubscription uses $addToSet so concurrent calls never duplicate the ID.
func (r *UserRepo) AddSubscription(ctx context.Context, userID, topicID string) error {
	return r.updateOne(ctx, "AddSubscription", userID, bson.M{"$addToSet": bson.M{"subscribed_topic_ids": topicID}}, false)
}

func (r *UserRepo) RemoveSubscription(ctx context.Context, userID, topicID string) error {
	return r.updateOne(ctx, "RemoveSubscription", userID, bson.M{"$pull": bson.M{"subscribed_topic_ids": topicID}}, false)
}

func (r *UserRepo) updateOne(ctx context.Context, op, id string, update bson.M, mustMatch bool) error {
	res, err := circuitbreaker.Do(r.cb, func() (*mongo.UpdateResult, error) {
		return r.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	})
	if err != nil {
		return storeError(op, err)
	}
	if mustMatch && res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, entity.NotFound("user not found"))
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	ok, err := deleteByID(ctx, r.cb, r.c, id)
	if err != nil {
		return storeError("Delete", err)
	}
	if !ok {
		return fmt.Errorf("Delete: %w", entity.NotFound("user not found"))
	}
	return nil
}
