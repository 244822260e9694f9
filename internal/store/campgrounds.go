package store

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"campmate/internal/models"
)

func FindCampground(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (models.Campground, error) {
	var campground models.Campground
	err := db.Collection("campgrounds").FindOne(ctx, bson.M{"_id": id}).Decode(&campground)
	if err == mongo.ErrNoDocuments {
		return models.Campground{}, ErrCampgroundNotFound
	}
	if err != nil {
		return models.Campground{}, err
	}
	return campground, nil
}

// DeleteCampgroundCascade is the single deletion path for campgrounds: it
// deletes every review referenced by the campground, then the campground
// itself, so no review outlives its parent. Returns the deleted document so
// the caller can clean up hosted images.
func DeleteCampgroundCascade(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (models.Campground, error) {
	campground, err := FindCampground(ctx, db, id)
	if err != nil {
		return models.Campground{}, err
	}

	if len(campground.Reviews) > 0 {
		res, err := db.Collection("reviews").DeleteMany(ctx, bson.M{"_id": bson.M{"$in": campground.Reviews}})
		if err != nil {
			return models.Campground{}, err
		}
		log.Printf("[STORE] cascade: deleted %d reviews for campground %s", res.DeletedCount, id.Hex())
	}

	res, err := db.Collection("campgrounds").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.Campground{}, err
	}
	if res.DeletedCount == 0 {
		return models.Campground{}, ErrCampgroundNotFound
	}

	return campground, nil
}
