package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"campmate/internal/config"
	"campmate/internal/database"
	"campmate/internal/geocode"
	"campmate/internal/handlers"
	"campmate/internal/middleware"
	"campmate/internal/storage"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureCampgroundIndexes(db); err != nil {
		log.Printf("campground index warning: %v", err)
	}
	if err := database.EnsureReviewIndexes(db); err != nil {
		log.Printf("review index warning: %v", err)
	}

	geocoder := geocode.NewMapboxClient(config.AppEnv.MapboxToken)

	images, err := storage.NewS3Store(context.Background(), storage.S3Config{
		Endpoint:  config.AppEnv.S3Endpoint,
		Region:    config.AppEnv.S3Region,
		Bucket:    config.AppEnv.S3Bucket,
		AccessKey: config.AppEnv.S3AccessKey,
		SecretKey: config.AppEnv.S3SecretKey,
		PublicURL: config.AppEnv.S3PublicURL,
	})
	if err != nil {
		log.Fatal(err)
	}

	r := gin.Default()

	r.GET("/", handlers.Home())

	r.POST("/auth/register", handlers.Register(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/login", handlers.Login(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/refresh", handlers.Refresh(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/logout", handlers.Logout(db))
	r.GET("/auth/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))

	r.GET("/campgrounds", handlers.GetCampgrounds(db))
	r.GET("/campgrounds/map", handlers.GetCampgroundMap(db))
	r.GET("/campgrounds/:id", handlers.GetCampground(db))

	authed := r.Group("/campgrounds")
	authed.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		authed.POST("", handlers.CreateCampground(db, geocoder, images))
		authed.PUT("/:id", handlers.UpdateCampground(db, images))
		authed.DELETE("/:id", handlers.DeleteCampground(db, images))

		authed.POST("/:id/reviews", handlers.CreateReview(db))
		authed.DELETE("/:id/reviews/:reviewId", handlers.DeleteReview(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
