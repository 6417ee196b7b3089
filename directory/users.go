package directory

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"munchmarket/models"
)

// UserStore persists the user records written alongside accounts.
type UserStore interface {
	Put(ctx context.Context, user models.User) error
	Get(ctx context.Context, uid string) (models.User, error)
	UpdateLastLogin(ctx context.Context, uid string, t time.Time) error
	SetProfileStatus(ctx context.Context, uid, status string) error
}

// MongoUsers keeps user records in the users collection, keyed by uid.
type MongoUsers struct {
	collection *mongo.Collection
}

func NewMongoUsers(client *mongo.Client, database string) *MongoUsers {
	return &MongoUsers{collection: client.Database(database).Collection("users")}
}

func (u *MongoUsers) Put(ctx context.Context, user models.User) error {
	if _, err := u.collection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("insert user %s: %w", user.UID, err)
	}
	return nil
}

func (u *MongoUsers) Get(ctx context.Context, uid string) (models.User, error) {
	var user models.User
	if err := u.collection.FindOne(ctx, bson.M{"_id": uid}).Decode(&user); err != nil {
		return models.User{}, fmt.Errorf("find user %s: %w", uid, err)
	}
	return user, nil
}

func (u *MongoUsers) UpdateLastLogin(ctx context.Context, uid string, t time.Time) error {
	_, err := u.collection.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": bson.M{"last_login": t}})
	if err != nil {
		return fmt.Errorf("update last login %s: %w", uid, err)
	}
	return nil
}

func (u *MongoUsers) SetProfileStatus(ctx context.Context, uid, status string) error {
	_, err := u.collection.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": bson.M{"profile_status": status}})
	if err != nil {
		return fmt.Errorf("update profile status %s: %w", uid, err)
	}
	return nil
}
