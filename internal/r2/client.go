package r2

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Client holds the necessary configuration for interacting with Cloudflare R2,
// where uploaded SOP documents are archived for later review.
type Client struct {
	s3Client   *s3.Client
	bucketName string
	publicURL  string // Base public URL for the bucket (e.g., https://pub-xxxxxxxx.r2.dev)
}

// NewClient creates and configures a new R2 client instance using environment variables.
// It returns (nil, nil) if R2 environment variables are not fully configured,
// allowing the application to proceed with document archiving disabled.
func NewClient() (*Client, error) {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	bucketName := os.Getenv("R2_BUCKET_NAME")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	secretAccessKey := os.Getenv("R2_SECRET_ACCESS_KEY")
	publicURL := os.Getenv("R2_PUBLIC_URL")

	if accountID == "" || bucketName == "" || accessKeyID == "" || secretAccessKey == "" || publicURL == "" {
		log.Println("WARN: Cloudflare R2 environment variables not fully configured (CLOUDFLARE_ACCOUNT_ID, R2_BUCKET_NAME, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_PUBLIC_URL). Document archiving will be skipped.")
		return nil, nil
	}

	// Custom endpoint resolver for Cloudflare R2.
	// R2 endpoint format: https://<ACCOUNT_ID>.r2.cloudflarestorage.com
	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(r2Resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config for R2: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg)

	log.Printf("INFO: R2 client initialized for bucket '%s'", bucketName)
	return &Client{
		s3Client:   s3Client,
		bucketName: bucketName,
		publicURL:  publicURL,
	}, nil
}

// UploadDocument uploads an SOP source document to the R2 bucket.
// The object key is constructed as "sop/<quizID>/<filename>".
// It returns the publicly accessible URL of the uploaded file or an error.
func (c *Client) UploadDocument(ctx context.Context, quizID uuid.UUID, filename string, content io.Reader) (string, error) {
	// Client is nil when the env vars were missing at startup.
	if c == nil || c.s3Client == nil {
		return "", fmt.Errorf("R2 client not initialized, skipping upload")
	}

	objectKey := fmt.Sprintf("sop/%s/%s", quizID.String(), filename)

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(objectKey),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to R2 (key: %s): %w", objectKey, err)
	}

	baseURL, err := url.Parse(c.publicURL)
	if err != nil {
		log.Printf("ERROR: Failed to parse R2 public base URL '%s': %v", c.publicURL, err)
		return "", fmt.Errorf("invalid R2 public base URL configured")
	}
	baseURL.Path = path.Join(baseURL.Path, objectKey)

	publicFileURL := baseURL.String()
	log.Printf("INFO: Successfully uploaded document to R2: %s", publicFileURL)
	return publicFileURL, nil
}
