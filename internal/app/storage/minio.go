package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

type MinIOClient struct {
	client     *minio.Client
	bucketName string
}

// NewMinIOClient connects to MinIO and ensures the bucket exists.
func NewMinIOClient(endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*MinIOClient, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logrus.Infof("Bucket %s created successfully", bucketName)
	}

	return &MinIOClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// UploadAttachment stores an attachment under a generated object key scoped
// by owner and parent record ("notes/<userID>/<noteID>/..." or
// "tasks/<userID>/<taskID>/...") and returns the key.
func (m *MinIOClient) UploadAttachment(scope string, userID, parentID uint, fileData []byte, originalFilename, mimeType string) (string, error) {
	ctx := context.Background()

	objectKey := fmt.Sprintf("%s/%d/%d/%s-%s",
		scope, userID, parentID,
		uuid.New().String()[:8],
		sanitizeFilename(originalFilename))

	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	reader := bytes.NewReader(fileData)
	_, err := m.client.PutObject(ctx, m.bucketName, objectKey, reader, int64(len(fileData)), minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	logrus.Infof("File %s uploaded successfully", objectKey)
	return objectKey, nil
}

// sanitizeFilename keeps the extension, drops path separators.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	return strings.ReplaceAll(base, " ", "_")
}

// DeleteFile removes an object by key.
func (m *MinIOClient) DeleteFile(objectKey string) error {
	ctx := context.Background()

	err := m.client.RemoveObject(ctx, m.bucketName, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logrus.Infof("File %s deleted successfully", objectKey)
	return nil
}

// GetFileURL returns a presigned GET URL valid for one hour.
func (m *MinIOClient) GetFileURL(objectKey string) (string, error) {
	ctx := context.Background()

	url, err := m.client.PresignedGetObject(ctx, m.bucketName, objectKey, time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url.String(), nil
}

// FileExists reports whether an object key is present.
func (m *MinIOClient) FileExists(objectKey string) (bool, error) {
	ctx := context.Background()

	_, err := m.client.StatObject(ctx, m.bucketName, objectKey, minio.StatObjectOptions{})
	if err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file: %w", err)
	}

	return true, nil
}
