package cart

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"munchmarket/models"
)

// MongoOrders writes orders to the orders collection.
type MongoOrders struct {
	collection *mongo.Collection
}

func NewMongoOrders(client *mongo.Client, database string) *MongoOrders {
	return &MongoOrders{collection: client.Database(database).Collection("orders")}
}

func (o *MongoOrders) Create(ctx context.Context, order models.Order) (models.Order, error) {
	result, err := o.collection.InsertOne(ctx, order)
	if err != nil {
		return models.Order{}, fmt.Errorf("insert order: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return order, nil
}
