package avatars

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/atfurman/taskapp/internal/common"
	"github.com/atfurman/taskapp/internal/server/config"
	"github.com/atfurman/taskapp/internal/server/models"
)

// S3Store keeps avatars in an S3-compatible bucket (MinIO in development)
// and records the object key on the user row. Only the key lives in
// Postgres.
type S3Store struct {
	client *s3.Client
	bucket string
	repo   Repository
}

func NewS3Store(cfg *config.Config, repo Repository) (*S3Store, error) {

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("s3 config error: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Store{client: client, bucket: cfg.S3Bucket, repo: repo}, nil
}

func storageKey() string {
	return fmt.Sprintf("avatars/%v", uuid.New())
}

func (s *S3Store) Put(ctx context.Context, user *models.User, data []byte) error {

	key := storageKey()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("s3 put error: %w", err)
	}

	if err := s.repo.SetAvatar(ctx, user.ID, nil, key); err != nil {
		return err
	}

	// the previous object, if any, is unreferenced now
	if user.AvatarKey != "" {
		_, _ = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: &s.bucket,
			Key:    &user.AvatarKey,
		})
	}

	return nil
}

func (s *S3Store) Get(ctx context.Context, user *models.User) ([]byte, error) {

	if user.AvatarKey == "" {
		return nil, common.ErrorNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &user.AvatarKey,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get error: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read error: %w", err)
	}

	return data, nil
}

func (s *S3Store) Delete(ctx context.Context, user *models.User) error {

	if user.AvatarKey != "" {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: &s.bucket,
			Key:    &user.AvatarKey,
		})
		if err != nil {
			return fmt.Errorf("s3 delete error: %w", err)
		}
	}

	return s.repo.SetAvatar(ctx, user.ID, nil, "")
}
