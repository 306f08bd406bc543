// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	awsx "github.com/Snogren/testpadapi/internal/aws"
	"github.com/Snogren/testpadapi/internal/log"
)

// s3API is the part of *s3v2.Client the backend uses.
type s3API interface {
	s3v2.ListObjectsV2APIClient
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// S3 keeps snapshots as objects beneath a bucket prefix.
type S3 struct {
	Bucket string
	Prefix string
	client s3API
}

// NewS3 builds an S3 backend from s, loading AWS config from the shell
// environment with the region and profile overrides applied.
func NewS3(ctx context.Context, s Settings) (*S3, error) {
	if s.Bucket == "" {
		return nil, errors.New("s3 store requires a bucket")
	}

	opts := []awsx.Option{awsx.WithRetryer(awsx.NoRetries)}
	if s.Region != "" {
		opts = append(opts, awsx.WithRegion(s.Region))
	}
	if s.Profile != "" {
		opts = append(opts, awsx.WithProfile(s.Profile))
	}
	cfg, err := awsx.LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return newS3(awsx.NewS3(cfg, awsx.WithBaseEndpoint(s.Endpoint)), s.Bucket, s.Prefix), nil
}

func newS3(client s3API, bucket, prefix string) *S3 {
	return &S3{Bucket: bucket, Prefix: strings.Trim(prefix, "/"), client: client}
}

func (b *S3) key(name string) string {
	if b.Prefix == "" {
		return name
	}
	return path.Join(b.Prefix, name)
}

func (b *S3) listPrefix() string {
	if b.Prefix == "" {
		return ""
	}
	return b.Prefix + "/"
}

// List implements Backend. Only objects directly beneath the prefix are
// returned.
func (b *S3) List(ctx context.Context) ([]Object, error) {
	prefix := b.listPrefix()
	paginator := s3v2.NewListObjectsV2Paginator(b.client, &s3v2.ListObjectsV2Input{
		Bucket: awsv2.String(b.Bucket),
		Prefix: awsv2.String(prefix),
	})

	var objects []Object
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list s3://%s/%s: %w", b.Bucket, prefix, err)
		}
		for _, o := range page.Contents {
			if o.Key == nil {
				continue
			}
			name := strings.TrimPrefix(*o.Key, prefix)
			if name == "" || strings.Contains(name, "/") {
				log.Debugf("skipping s3 object %s", *o.Key)
				continue
			}
			obj := Object{Name: name, Size: awsv2.ToInt64(o.Size)}
			if o.LastModified != nil {
				obj.ModTime = *o.LastModified
			}
			objects = append(objects, obj)
		}
	}
	return objects, nil
}

// Read implements Backend.
func (b *S3) Read(ctx context.Context, name string) ([]byte, error) {
	out, err := b.client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(b.Bucket),
		Key:    awsv2.String(b.key(name)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", b.Locate(name), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.Locate(name), err)
	}
	return data, nil
}

// Create implements Backend. The put is conditional on the key being absent.
func (b *S3) Create(ctx context.Context, name string, data []byte) error {
	_, err := b.client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:      awsv2.String(b.Bucket),
		Key:         awsv2.String(b.key(name)),
		Body:        bytes.NewReader(data),
		ContentType: awsv2.String("application/json"),
		IfNoneMatch: awsv2.String("*"),
	})
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "PreconditionFailed", "ConditionalRequestConflict":
			return fmt.Errorf("%s: %w", b.Locate(name), fs.ErrExist)
		}
	}
	return fmt.Errorf("failed to put %s: %w", b.Locate(name), err)
}

// Locate implements Backend.
func (b *S3) Locate(name string) string {
	return fmt.Sprintf("s3://%s/%s", b.Bucket, b.key(name))
}

func (b *S3) String() string {
	return fmt.Sprintf("s3://%s/%s", b.Bucket, b.listPrefix())
}
