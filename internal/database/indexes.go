package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("products").Indexes()

	displayOrderIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "displayOrder", Value: 1}},
		Options: options.Index().
			SetName("displayOrder_index").
			SetPartialFilterExpression(bson.M{
				"displayOrder": bson.M{
					"$exists": true,
				},
			}),
	}

	log.Println("EnsureProductIndexes: creating displayOrder_index index")
	_, err := indexes.CreateOne(ctx, displayOrderIndex)
	if err != nil {
		log.Println("EnsureProductIndexes: displayOrder index error:", err)
		return err
	}
	log.Println("EnsureProductIndexes: displayOrder_index index created")
	return nil
}

func EnsureAdminIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("admins").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureAdminIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureAdminIndexes: email index error:", err)
		return err
	}
	log.Println("EnsureAdminIndexes: email_unique index created")
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	createdAtIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	}

	log.Println("EnsureOrderIndexes: creating createdAt_desc index")
	_, err := indexes.CreateOne(ctx, createdAtIndex)
	if err != nil {
		log.Println("EnsureOrderIndexes: createdAt index error:", err)
		return err
	}
	log.Println("EnsureOrderIndexes: createdAt_desc index created")
	return nil
}
