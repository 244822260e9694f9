package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"campmate/internal/models"
)

var (
	ErrCampgroundNotFound = errors.New("store: campground not found")
	ErrReviewNotFound     = errors.New("store: review not found")
)

// InsertReview stores the review and appends its id to the campground's
// reference list. The caller must recompute the average rating afterwards.
func InsertReview(ctx context.Context, db *mongo.Database, campgroundID primitive.ObjectID, review models.Review) (primitive.ObjectID, error) {
	res, err := db.Collection("reviews").InsertOne(ctx, review)
	if err != nil {
		return primitive.NilObjectID, err
	}
	reviewID := res.InsertedID.(primitive.ObjectID)

	updateRes, err := db.Collection("campgrounds").UpdateOne(ctx,
		bson.M{"_id": campgroundID},
		bson.M{"$push": bson.M{"reviews": reviewID}},
	)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if updateRes.MatchedCount == 0 {
		// Parent vanished between the handler's existence check and the push.
		_, _ = db.Collection("reviews").DeleteOne(ctx, bson.M{"_id": reviewID})
		return primitive.NilObjectID, ErrCampgroundNotFound
	}

	return reviewID, nil
}

// DeleteReview removes the reference from the campground and deletes the
// review document. The caller must recompute the average rating afterwards.
func DeleteReview(ctx context.Context, db *mongo.Database, campgroundID, reviewID primitive.ObjectID) error {
	_, err := db.Collection("campgrounds").UpdateOne(ctx,
		bson.M{"_id": campgroundID},
		bson.M{"$pull": bson.M{"reviews": reviewID}},
	)
	if err != nil {
		return err
	}

	res, err := db.Collection("reviews").DeleteOne(ctx, bson.M{"_id": reviewID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// RecomputeAverageRating re-reads the campground's current review set and
// persists the mean rating. It always recomputes from the source of truth
// rather than adjusting a running value, so a lost race self-heals on the
// next call. Returns the persisted value.
func RecomputeAverageRating(ctx context.Context, db *mongo.Database, campgroundID primitive.ObjectID) (float64, error) {
	var campground models.Campground
	err := db.Collection("campgrounds").FindOne(ctx, bson.M{"_id": campgroundID}).Decode(&campground)
	if err == mongo.ErrNoDocuments {
		return 0, ErrCampgroundNotFound
	}
	if err != nil {
		return 0, err
	}

	average := 0.0
	if len(campground.Reviews) > 0 {
		cursor, err := db.Collection("reviews").Find(ctx, bson.M{"_id": bson.M{"$in": campground.Reviews}})
		if err != nil {
			return 0, err
		}
		var reviews []models.Review
		if err := cursor.All(ctx, &reviews); err != nil {
			return 0, err
		}

		ratings := make([]int, 0, len(reviews))
		for _, review := range reviews {
			ratings = append(ratings, review.Rating)
		}
		average = meanRating(ratings)
	}

	_, err = db.Collection("campgrounds").UpdateOne(ctx,
		bson.M{"_id": campgroundID},
		bson.M{"$set": bson.M{"averageRating": average}},
	)
	if err != nil {
		return 0, err
	}
	return average, nil
}
