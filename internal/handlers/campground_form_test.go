package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newMultipartContext(t *testing.T, build func(w *multipart.Writer)) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	build(writer)
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/campgrounds", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestParseMultipartCampgroundRequestFields(t *testing.T) {
	c := newMultipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("title", "  Lake Tahoe Camp ")
		_ = w.WriteField("location", "Lake Tahoe, CA")
		_ = w.WriteField("price", "42.50")
		_ = w.WriteField("website", "https://laketahoecamp.example")
	})

	parsed, err := parseMultipartCampgroundRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartCampgroundRequest returned error: %v", err)
	}
	if !parsed.TitleSet || parsed.Title != "Lake Tahoe Camp" {
		t.Fatalf("expected trimmed title, got %+v", parsed)
	}
	if !parsed.LocationSet || parsed.Location != "Lake Tahoe, CA" {
		t.Fatalf("expected location, got %+v", parsed)
	}
	if !parsed.PriceSet || parsed.Price != 42.5 {
		t.Fatalf("expected price=42.5, got %+v", parsed)
	}
	if !parsed.WebsiteSet || parsed.Website == "" {
		t.Fatalf("expected website, got %+v", parsed)
	}
	if parsed.DescriptionSet {
		t.Fatal("description was never sent")
	}
}

func TestParseMultipartCampgroundRequestInvalidPrice(t *testing.T) {
	c := newMultipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("price", "not-a-number")
	})

	if _, err := parseMultipartCampgroundRequest(c); err == nil {
		t.Fatal("expected error for non-numeric price")
	}
}

func TestParseMultipartCampgroundRequestDeleteImagesAndFiles(t *testing.T) {
	c := newMultipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("deleteImages", "campgrounds/2026/1/1/a.jpg")
		_ = w.WriteField("deleteImages", "  ")
		_ = w.WriteField("deleteImages", "campgrounds/2026/1/1/b.png")
		part, _ := w.CreateFormFile("image", "new.jpg")
		_, _ = part.Write([]byte("fake image bytes"))
	})

	parsed, err := parseMultipartCampgroundRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartCampgroundRequest returned error: %v", err)
	}
	if len(parsed.DeleteImages) != 2 {
		t.Fatalf("expected 2 delete filenames, got %v", parsed.DeleteImages)
	}
	if len(parsed.Images) != 1 || parsed.Images[0].Filename != "new.jpg" {
		t.Fatalf("expected one uploaded file, got %d", len(parsed.Images))
	}
}
