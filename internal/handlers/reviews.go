package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"campmate/internal/models"
	"campmate/internal/store"
)

type ReviewRequest struct {
	Body   string `json:"body" binding:"required"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
}

func CreateReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /campgrounds/:id/reviews"
		defer handlePanic(c, route)

		campgroundID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req ReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := store.FindCampground(ctx, db, campgroundID); err != nil {
			if errors.Is(err, store.ErrCampgroundNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "campground not found"})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		review := models.Review{
			Body:      req.Body,
			Rating:    req.Rating,
			Author:    userID,
			CreatedAt: time.Now(),
		}

		reviewID, err := store.InsertReview(ctx, db, campgroundID, review)
		if err != nil {
			if errors.Is(err, store.ErrCampgroundNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "campground not found"})
				return
			}
			log.Printf("[%s] insert error: %v", route, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		// Recompute before acknowledging so the response reflects the new set.
		average, err := store.RecomputeAverageRating(ctx, db, campgroundID)
		if err != nil {
			log.Printf("[%s] recompute error: %v", route, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		review.ID = reviewID
		log.Printf("[%s] review %s created, averageRating=%v", route, reviewID.Hex(), average)
		c.JSON(http.StatusCreated, gin.H{
			"review":        review,
			"averageRating": average,
		})
	}
}

func DeleteReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /campgrounds/:id/reviews/:reviewId"
		defer handlePanic(c, route)

		campgroundID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		reviewID, err := primitive.ObjectIDFromHex(c.Param("reviewId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
			return
		}

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var review models.Review
		if err := db.Collection("reviews").FindOne(ctx, bson.M{"_id": reviewID}).Decode(&review); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !canModify(userID, review.Author) {
			log.Printf("[%s] user %s denied on review %s", route, userID.Hex(), reviewID.Hex())
			c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to do that"})
			return
		}

		if err := store.DeleteReview(ctx, db, campgroundID, reviewID); err != nil {
			if errors.Is(err, store.ErrReviewNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
				return
			}
			log.Printf("[%s] delete error: %v", route, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		average, err := store.RecomputeAverageRating(ctx, db, campgroundID)
		if err != nil {
			if errors.Is(err, store.ErrCampgroundNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "campground not found"})
				return
			}
			log.Printf("[%s] recompute error: %v", route, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Printf("[%s] review %s deleted, averageRating=%v", route, reviewID.Hex(), average)
		c.JSON(http.StatusOK, gin.H{
			"message":       "review deleted",
			"averageRating": average,
		})
	}
}
