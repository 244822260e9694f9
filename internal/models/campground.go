package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is one hosted campground photo.
type Image struct {
	URL      string `bson:"url" json:"url"`
	Filename string `bson:"filename" json:"filename"`
}

// Thumbnail derives a 200px-wide variant of the hosted image URL.
func (i Image) Thumbnail() string {
	return strings.Replace(i.URL, "/upload", "/upload/w_200", 1)
}

// Geometry is a GeoJSON point. Coordinates are [longitude, latitude].
type Geometry struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// Campground is the persisted campground document. Author is set once at
// creation and never changes. Reviews holds review ids in insertion order;
// AverageRating is derived from those reviews and must only be written by the
// recompute path.
type Campground struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title         string               `bson:"title" json:"title"`
	Description   string               `bson:"description,omitempty" json:"description,omitempty"`
	Location      string               `bson:"location" json:"location"`
	Price         float64              `bson:"price" json:"price"`
	Website       string               `bson:"website,omitempty" json:"website,omitempty"`
	Geometry      Geometry             `bson:"geometry" json:"geometry"`
	Images        []Image              `bson:"images" json:"images"`
	Author        primitive.ObjectID   `bson:"author" json:"author"`
	Reviews       []primitive.ObjectID `bson:"reviews" json:"reviews"`
	AverageRating float64              `bson:"averageRating" json:"averageRating"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
}
