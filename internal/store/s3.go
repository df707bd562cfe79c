package store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader writes export artifacts under a single bucket/prefix.
type Uploader struct {
	Client S3API
	Bucket string
	Prefix string
}

func (u *Uploader) Put(ctx context.Context, key string, body []byte) error {
	full := key
	if u.Prefix != "" {
		full = u.Prefix + "/" + key
	}
	_, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.Bucket),
		Key:    aws.String(full),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", u.Bucket, full, err)
	}
	return nil
}
