package s3client

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

var Client Provider

type Provider interface {
	MakeBucket(ctx context.Context) error
	PutObject(ctx context.Context, key, contentType string, data []byte) error
	GetObject(ctx context.Context, key string) ([]byte, error)
	RemoveObject(ctx context.Context, key string) error
}

type s3client struct {
	minioClient *minio.Client
	bucketName  string
}

func NewClient(endpoint, accessKeyID, secretAccessKey, bucketName string, useSSL bool) (Provider, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &s3client{minioClient: minioClient, bucketName: bucketName}, nil
}

func (s s3client) MakeBucket(ctx context.Context) error {
	location := "us-east-1"
	exists, err := s.minioClient.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.minioClient.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: location})
}

func (s s3client) PutObject(ctx context.Context, key, contentType string, data []byte) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.minioClient.PutObject(ctx, s.bucketName, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrapf(err, "ошибка загрузки файла %s", key)
	}
	return nil
}

func (s s3client) GetObject(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.minioClient.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка получения файла %s", key)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка чтения файла %s", key)
	}
	return data, nil
}

func (s s3client) RemoveObject(ctx context.Context, key string) error {
	err := s.minioClient.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrapf(err, "ошибка удаления файла %s", key)
	}
	return nil
}
