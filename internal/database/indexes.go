package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	usernameIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}},
		Options: options.Index().
			SetName("username_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique and username_unique indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{emailIndex, usernameIndex})
	if err != nil {
		log.Println("EnsureUserIndexes: index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: indexes created")
	return nil
}

func EnsureCampgroundIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("campgrounds").Indexes()

	geometryIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "geometry", Value: "2dsphere"}},
		Options: options.Index().SetName("geometry_2dsphere"),
	}

	authorIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "author", Value: 1}},
		Options: options.Index().SetName("author_index"),
	}

	log.Println("EnsureCampgroundIndexes: creating geometry_2dsphere and author indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{geometryIndex, authorIndex})
	if err != nil {
		log.Println("EnsureCampgroundIndexes: index error:", err)
		return err
	}
	log.Println("EnsureCampgroundIndexes: indexes created")
	return nil
}

func EnsureReviewIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("reviews").Indexes()

	authorIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "author", Value: 1}},
		Options: options.Index().SetName("author_index"),
	}

	log.Println("EnsureReviewIndexes: creating author index")
	_, err := indexes.CreateOne(ctx, authorIndex)
	if err != nil {
		log.Println("EnsureReviewIndexes: author index error:", err)
		return err
	}
	log.Println("EnsureReviewIndexes: author_index created")
	return nil
}
