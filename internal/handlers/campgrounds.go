package handlers

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"campmate/internal/geocode"
	"campmate/internal/models"
	"campmate/internal/storage"
	"campmate/internal/store"
)

func Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "campmate", "status": "ok"})
	}
}

/*
=======================
  LIST + MAP
=======================
*/

func GetCampgrounds(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /campgrounds"
		defer handlePanic(c, route)

		search := strings.TrimSpace(c.Query("search"))
		sortKey := strings.TrimSpace(c.Query("sort"))
		log.Printf("[%s] hit search=%s sort=%s", route, search, sortKey)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("campgrounds").Find(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var campgrounds []models.Campground
		if err := cursor.All(ctx, &campgrounds); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		campgrounds = filterCampgrounds(campgrounds, search)
		sortCampgrounds(campgrounds, sortKey)

		views := make([]gin.H, 0, len(campgrounds))
		for _, campground := range campgrounds {
			views = append(views, campgroundListView(campground))
		}

		log.Printf("[%s] returning %d campgrounds", route, len(views))
		c.JSON(http.StatusOK, gin.H{
			"data":   views,
			"search": search,
			"sort":   sortKey,
		})
	}
}

func GetCampgroundMap(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /campgrounds/map"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("campgrounds").Find(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var campgrounds []models.Campground
		if err := cursor.All(ctx, &campgrounds); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		points := make([]gin.H, 0, len(campgrounds))
		for _, campground := range campgrounds {
			points = append(points, gin.H{
				"id":       campground.ID.Hex(),
				"title":    campground.Title,
				"price":    campground.Price,
				"geometry": campground.Geometry,
			})
		}

		c.JSON(http.StatusOK, gin.H{"data": points})
	}
}

/*
=======================
  DETAIL
=======================
*/

func GetCampground(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /campgrounds/:id"

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		campground, err := store.FindCampground(ctx, db, id)
		if errors.Is(err, store.ErrCampgroundNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "campground not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		reviews, err := populateReviews(ctx, db, campground.Reviews)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		view := campgroundListView(campground)
		view["author"] = userRef(ctx, db, campground.Author)
		view["reviews"] = reviews
		view["website"] = campground.Website
		view["description"] = campground.Description

		c.JSON(http.StatusOK, view)
	}
}

func campgroundListView(campground models.Campground) gin.H {
	images := make([]gin.H, 0, len(campground.Images))
	for _, image := range campground.Images {
		images = append(images, gin.H{
			"url":       image.URL,
			"thumbnail": image.Thumbnail(),
			"filename":  image.Filename,
		})
	}
	return gin.H{
		"id":            campground.ID.Hex(),
		"title":         campground.Title,
		"location":      campground.Location,
		"price":         campground.Price,
		"geometry":      campground.Geometry,
		"images":        images,
		"reviewCount":   len(campground.Reviews),
		"averageRating": campground.AverageRating,
		"createdAt":     campground.CreatedAt,
	}
}

// populateReviews resolves the campground's review id list into review
// view-models with their author usernames, preserving insertion order.
func populateReviews(ctx context.Context, db *mongo.Database, reviewIDs []primitive.ObjectID) ([]gin.H, error) {
	if len(reviewIDs) == 0 {
		return []gin.H{}, nil
	}

	cursor, err := db.Collection("reviews").Find(ctx, bson.M{"_id": bson.M{"$in": reviewIDs}})
	if err != nil {
		return nil, err
	}
	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Review, len(reviews))
	authorIDs := make([]primitive.ObjectID, 0, len(reviews))
	for _, review := range reviews {
		byID[review.ID] = review
		authorIDs = append(authorIDs, review.Author)
	}

	userCursor, err := db.Collection("users").Find(ctx, bson.M{"_id": bson.M{"$in": authorIDs}})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := userCursor.All(ctx, &users); err != nil {
		return nil, err
	}
	usernameByID := make(map[primitive.ObjectID]string, len(users))
	for _, user := range users {
		usernameByID[user.ID] = user.Username
	}

	views := make([]gin.H, 0, len(reviewIDs))
	for _, reviewID := range reviewIDs {
		review, ok := byID[reviewID]
		if !ok {
			continue
		}
		views = append(views, gin.H{
			"id":     review.ID.Hex(),
			"body":   review.Body,
			"rating": review.Rating,
			"author": gin.H{
				"id":       review.Author.Hex(),
				"username": usernameByID[review.Author],
			},
			"createdAt": review.CreatedAt,
		})
	}
	return views, nil
}

func userRef(ctx context.Context, db *mongo.Database, id primitive.ObjectID) gin.H {
	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return gin.H{"id": id.Hex()}
	}
	return gin.H{"id": user.ID.Hex(), "username": user.Username}
}

/*
=======================
  CREATE
=======================
*/

func CreateCampground(db *mongo.Database, geocoder geocode.Geocoder, images storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /campgrounds"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "multipart/form-data required"})
			return
		}

		input, err := parseMultipartCampgroundRequest(c)
		if err != nil {
			log.Printf("[%s] multipart error: %v", route, err)
			respondMultipartError(c, err)
			return
		}

		if !input.TitleSet || input.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
			return
		}
		if !input.LocationSet || input.Location == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "location required"})
			return
		}
		if !input.PriceSet || input.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}

		geoCtx, cancelGeo := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancelGeo()

		geometry, err := geocoder.Forward(geoCtx, input.Location)
		if errors.Is(err, geocode.ErrNoResults) {
			log.Printf("[%s] no geocode results for %q", route, input.Location)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid location, please provide a valid location"})
			return
		}
		if err != nil {
			log.Printf("[%s] geocode failed: %v", route, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding service unavailable"})
			return
		}

		uploaded, err := uploadAll(c.Request.Context(), images, input.Images)
		if err != nil {
			log.Printf("[%s] image upload failed: %v", route, err)
			cleanupImages(images, uploaded)
			c.JSON(http.StatusBadGateway, gin.H{"error": "image upload failed"})
			return
		}

		campground := models.Campground{
			Title:         input.Title,
			Description:   input.Description,
			Location:      input.Location,
			Price:         input.Price,
			Website:       input.Website,
			Geometry:      geometry,
			Images:        uploaded,
			Author:        userID,
			Reviews:       []primitive.ObjectID{},
			AverageRating: 0,
			CreatedAt:     time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("campgrounds").InsertOne(ctx, campground)
		if err != nil {
			log.Printf("[%s] insert error: %v", route, err)
			cleanupImages(images, uploaded)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		campground.ID = res.InsertedID.(primitive.ObjectID)
		log.Printf("[%s] created campground %s", route, campground.ID.Hex())
		c.JSON(http.StatusCreated, campgroundListView(campground))
	}
}

// uploadAll sends every file to the image host. On failure it returns the
// images uploaded so far so the caller can clean them up.
func uploadAll(ctx context.Context, images storage.ImageStore, files []*multipart.FileHeader) ([]models.Image, error) {
	uploaded := make([]models.Image, 0, len(files))
	for _, file := range files {
		image, err := images.Upload(ctx, file)
		if err != nil {
			return uploaded, err
		}
		uploaded = append(uploaded, image)
	}
	return uploaded, nil
}

func cleanupImages(images storage.ImageStore, uploaded []models.Image) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, image := range uploaded {
		if err := images.Delete(ctx, image.Filename); err != nil {
			log.Printf("[STORAGE] cleanup of %s failed: %v", image.Filename, err)
		}
	}
}

/*
=======================
  UPDATE
=======================
*/

func UpdateCampground(db *mongo.Database, images storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /campgrounds/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "multipart/form-data required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		existing, err := store.FindCampground(ctx, db, id)
		if errors.Is(err, store.ErrCampgroundNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "campground not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !canModify(userID, existing.Author) {
			log.Printf("[%s] user %s denied on campground %s", route, userID.Hex(), id.Hex())
			c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to do that"})
			return
		}

		input, err := parseMultipartCampgroundRequest(c)
		if err != nil {
			log.Printf("[%s] multipart error: %v", route, err)
			respondMultipartError(c, err)
			return
		}

		updateSet := bson.M{}
		if input.TitleSet {
			if input.Title == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
				return
			}
			updateSet["title"] = input.Title
		}
		if input.DescriptionSet {
			updateSet["description"] = input.Description
		}
		if input.LocationSet {
			if input.Location == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "location required"})
				return
			}
			updateSet["location"] = input.Location
		}
		if input.PriceSet {
			if input.Price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
				return
			}
			updateSet["price"] = input.Price
		}
		if input.WebsiteSet {
			updateSet["website"] = input.Website
		}

		newImages, err := uploadAll(c.Request.Context(), images, input.Images)
		if err != nil {
			log.Printf("[%s] image upload failed: %v", route, err)
			cleanupImages(images, newImages)
			c.JSON(http.StatusBadGateway, gin.H{"error": "image upload failed"})
			return
		}

		update := bson.M{}
		if len(updateSet) > 0 {
			update["$set"] = updateSet
		}
		if len(newImages) > 0 {
			update["$push"] = bson.M{"images": bson.M{"$each": newImages}}
		}

		if len(update) > 0 {
			if _, err := db.Collection("campgrounds").UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
				log.Printf("[%s] update error: %v", route, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
				return
			}
		}

		// Image removal is a second, best-effort step: a host failure here
		// must not roll back the field update above.
		if len(input.DeleteImages) > 0 {
			_, err := db.Collection("campgrounds").UpdateOne(ctx,
				bson.M{"_id": id},
				bson.M{"$pull": bson.M{"images": bson.M{"filename": bson.M{"$in": input.DeleteImages}}}},
			)
			if err != nil {
				log.Printf("[%s] image pull error: %v", route, err)
			}
			for _, filename := range input.DeleteImages {
				if err := images.Delete(c.Request.Context(), filename); err != nil {
					log.Printf("[%s] image host delete %s failed: %v", route, filename, err)
				}
			}
		}

		updated, err := store.FindCampground(ctx, db, id)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] updated campground %s", route, id.Hex())
		c.JSON(http.StatusOK, campgroundListView(updated))
	}
}

/*
=======================
  DELETE
=======================
*/

func DeleteCampground(db *mongo.Database, images storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /campgrounds/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		existing, err := store.FindCampground(ctx, db, id)
		if errors.Is(err, store.ErrCampgroundNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "campground not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !canModify(userID, existing.Author) {
			log.Printf("[%s] user %s denied on campground %s", route, userID.Hex(), id.Hex())
			c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to do that"})
			return
		}

		deleted, err := store.DeleteCampgroundCascade(ctx, db, id)
		if errors.Is(err, store.ErrCampgroundNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "campground not found"})
			return
		}
		if err != nil {
			log.Printf("[%s] cascade delete error: %v", route, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		cleanupImages(images, deleted.Images)

		log.Printf("[%s] deleted campground %s with %d reviews", route, id.Hex(), len(deleted.Reviews))
		c.JSON(http.StatusOK, gin.H{"message": "campground deleted"})
	}
}
