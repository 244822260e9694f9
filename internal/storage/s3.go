package storage

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"campmate/internal/models"
)

// S3Config holds connection settings for an S3-compatible image host
// (AWS S3 or a MinIO-style endpoint).
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicURL is the base under which uploaded objects are reachable.
	// Defaults to Endpoint/Bucket when empty.
	PublicURL string
}

type S3Store struct {
	client *s3.Client
	cfg    S3Config
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, cfg: cfg}, nil
}

func storageKey(extension string) string {
	d := time.Now()
	return fmt.Sprintf("campgrounds/%d/%d/%d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), extension)
}

func (s *S3Store) publicURL(key string) string {
	base := strings.TrimRight(s.cfg.PublicURL, "/")
	if base == "" {
		base = strings.TrimRight(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket
	}
	return base + "/" + key
}

func (s *S3Store) Upload(ctx context.Context, file *multipart.FileHeader) (models.Image, error) {
	extension, contentType, err := validateImageUpload(file.Filename, file.Size)
	if err != nil {
		return models.Image{}, err
	}

	in, err := file.Open()
	if err != nil {
		log.Printf("[STORAGE] upload: failed to open %s: %v", file.Filename, err)
		return models.Image{}, err
	}
	defer in.Close()

	key := storageKey(extension)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          in,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(file.Size),
	})
	if err != nil {
		log.Printf("[STORAGE] upload: put %s failed: %v", key, err)
		return models.Image{}, err
	}

	return models.Image{URL: s.publicURL(key), Filename: key}, nil
}

func (s *S3Store) Delete(ctx context.Context, filename string) error {
	key := strings.TrimSpace(filename)
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("[STORAGE] delete: %s failed: %v", key, err)
		return err
	}
	return nil
}
