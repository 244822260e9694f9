package storage

import (
	"strings"
	"testing"
)

func TestValidateImageUploadAcceptsAllowedTypes(t *testing.T) {
	for _, name := range []string{"photo.jpg", "photo.JPEG", "map.png", "view.webp"} {
		extension, contentType, err := validateImageUpload(name, 1024)
		if err != nil {
			t.Fatalf("expected %s to validate, got %v", name, err)
		}
		if extension == "" || contentType == "" {
			t.Fatalf("expected extension and content type for %s", name)
		}
	}
}

func TestValidateImageUploadRejectsUnknownExtension(t *testing.T) {
	if _, _, err := validateImageUpload("malware.exe", 1024); err == nil {
		t.Fatal("expected error for .exe upload")
	}
	if _, _, err := validateImageUpload("noextension", 1024); err == nil {
		t.Fatal("expected error for missing extension")
	}
}

func TestValidateImageUploadRejectsOversizedFile(t *testing.T) {
	if _, _, err := validateImageUpload("big.jpg", maxImageSize+1); err == nil {
		t.Fatal("expected error for file over size cap")
	}
}

func TestStorageKeyCarriesExtension(t *testing.T) {
	key := storageKey(".png")
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("expected .png suffix, got %s", key)
	}
	if !strings.HasPrefix(key, "campgrounds/") {
		t.Fatalf("expected campgrounds/ prefix, got %s", key)
	}
	if key == storageKey(".png") {
		t.Fatal("expected unique keys per upload")
	}
}

func TestPublicURLFallsBackToEndpointAndBucket(t *testing.T) {
	s := &S3Store{cfg: S3Config{Endpoint: "http://minio:9000/", Bucket: "campmate-images"}}
	got := s.publicURL("campgrounds/2026/8/29/abc.jpg")
	want := "http://minio:9000/campmate-images/campgrounds/2026/8/29/abc.jpg"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	s.cfg.PublicURL = "https://img.campmate.example/"
	got = s.publicURL("k.jpg")
	if got != "https://img.campmate.example/k.jpg" {
		t.Fatalf("unexpected public url: %s", got)
	}
}
