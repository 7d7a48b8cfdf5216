package services

import (
	"context"
	"fmt"
	"time"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/policy"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/DyarAbdulla/carwiseiq-sub006/internal/server/config"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in, optFns...)
	}
)

// StorageService hands out presigned URLs for listing images in an
// S3-compatible store. Object keys follow the "{owner_id}/{filename}"
// convention so the storage rule can gate writes by the path's owner segment
// without any row lookup.
type StorageService struct {
	evaluator *policy.Evaluator
	config    *sc.Config
}

func NewStorageService(evaluator *policy.Evaluator, config *sc.Config) *StorageService {
	return &StorageService{evaluator: evaluator, config: config}
}

// ObjectKeyFor builds a fresh object key owned by userID.
func ObjectKeyFor(userID string) string {
	return fmt.Sprintf("%s/%v", userID, uuid.New())
}

func (s *StorageService) getS3Client() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	}), nil
}

func (s *StorageService) getPresignClient() (*s3.PresignClient, error) {
	client, err := s.getS3Client()
	if err != nil {
		return nil, err
	}
	return newS3PresignClient(client), nil
}

// GetPresignedPutURL mints a new object key under the principal's own prefix
// and returns the key with a presigned PUT URL for it. The write gate runs
// on the generated key, so a non-anonymous principal can only ever upload
// into its own prefix.
func (s *StorageService) GetPresignedPutURL(ctx context.Context, p policy.Principal) (string, string, error) {
	key := ObjectKeyFor(p.Identity)
	if err := s.evaluator.StorageWrite(ctx, p, key); err != nil {
		return "", "", err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// GetPresignedGetURL returns a presigned GET URL for the key. Object reads
// are public, mirroring the public visibility of active listing media.
func (s *StorageService) GetPresignedGetURL(ctx context.Context, p policy.Principal, key string) (string, error) {
	// CanReadObject is unconditionally true today; evaluated anyway so the
	// read path breaks loudly if the storage rule ever tightens.
	if !s.evaluator.CanReadObject(ctx, p, key) {
		return "", fmt.Errorf("object not readable: %s", key)
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// Delete removes the object if the principal owns the key's prefix or is an
// admin.
func (s *StorageService) Delete(ctx context.Context, p policy.Principal, key string) error {
	if err := s.evaluator.StorageWrite(ctx, p, key); err != nil {
		return err
	}

	client, err := s.getS3Client()
	if err != nil {
		return err
	}

	bucket := s.config.S3Bucket

	_, err = deleteObject(client, ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	return err
}
