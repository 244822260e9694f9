package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campmate/internal/geocode"
	"campmate/internal/models"
)

type fakeGeocoder struct {
	geometry models.Geometry
	err      error
	calls    int
}

func (f *fakeGeocoder) Forward(ctx context.Context, query string) (models.Geometry, error) {
	f.calls++
	return f.geometry, f.err
}

type fakeImageStore struct {
	uploads int
	deletes []string
}

func (f *fakeImageStore) Upload(ctx context.Context, file *multipart.FileHeader) (models.Image, error) {
	f.uploads++
	return models.Image{URL: "https://img.example/" + file.Filename, Filename: file.Filename}, nil
}

func (f *fakeImageStore) Delete(ctx context.Context, filename string) error {
	f.deletes = append(f.deletes, filename)
	return nil
}

func performCreate(t *testing.T, geocoder geocode.Geocoder, store *fakeImageStore, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		_ = writer.WriteField(key, value)
	}
	_ = writer.Close()

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("POST", "/campgrounds", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	c.Set("userId", primitive.NewObjectID())

	// db is never reached on the paths these tests exercise
	CreateCampground(nil, geocoder, store)(c)
	return recorder
}

func TestCreateCampgroundInvalidLocationPersistsNothing(t *testing.T) {
	geocoder := &fakeGeocoder{err: geocode.ErrNoResults}
	store := &fakeImageStore{}

	recorder := performCreate(t, geocoder, store, map[string]string{
		"title":    "Ghost Camp",
		"location": "nonexistent-place-xyz",
		"price":    "25",
	})

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if geocoder.calls != 1 {
		t.Fatalf("expected one geocode call, got %d", geocoder.calls)
	}
	if store.uploads != 0 {
		t.Fatal("no image must be uploaded when geocoding fails")
	}

	var response map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("response not json: %v", err)
	}
	if response["error"] == "" {
		t.Fatal("expected an error message in the response")
	}
}

func TestCreateCampgroundGeocoderOutageIsBadGateway(t *testing.T) {
	geocoder := &fakeGeocoder{err: context.DeadlineExceeded}
	store := &fakeImageStore{}

	recorder := performCreate(t, geocoder, store, map[string]string{
		"title":    "Timeout Camp",
		"location": "Lake Tahoe",
		"price":    "25",
	})

	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", recorder.Code)
	}
	if store.uploads != 0 {
		t.Fatal("no image must be uploaded when geocoding fails")
	}
}

func TestCreateCampgroundMissingFieldsRejectedBeforeGeocode(t *testing.T) {
	geocoder := &fakeGeocoder{geometry: models.Geometry{Type: "Point", Coordinates: []float64{0, 0}}}
	store := &fakeImageStore{}

	recorder := performCreate(t, geocoder, store, map[string]string{
		"location": "Lake Tahoe",
		"price":    "25",
	})

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing title, got %d", recorder.Code)
	}
	if geocoder.calls != 0 {
		t.Fatal("validation failure must reject before any external call")
	}
}

func TestCreateCampgroundRequiresAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("POST", "/campgrounds", nil)

	CreateCampground(nil, &fakeGeocoder{}, &fakeImageStore{})(c)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestCreateReviewRatingOutOfRangeRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, rating := range []string{"0", "6", "-1"} {
		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		body := bytes.NewBufferString(`{"body":"nice spot","rating":` + rating + `}`)
		c.Request = httptest.NewRequest("POST", "/campgrounds/abc/reviews", body)
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: primitive.NewObjectID().Hex()}}
		c.Set("userId", primitive.NewObjectID())

		CreateReview(nil)(c)

		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for rating=%s, got %d", rating, recorder.Code)
		}
	}
}
