package files

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/minio/minio-go/v7"

	"moviechamp/src/config"
	"moviechamp/src/utils"
)

// MediaObject is a streamable handle on an object in the media bucket.
type MediaObject struct {
	Reader      io.ReadCloser
	ContentType string
	Size        int64
}

// FetchObject opens the named object from the media bucket.
func FetchObject(ctx context.Context, objectPath string) (*MediaObject, *utils.ServiceError) {
	if config.MinioClient == nil {
		return nil, utils.ServerError("Object storage is not configured")
	}

	objectPath = strings.TrimPrefix(objectPath, "/")
	if objectPath == "" || strings.Contains(objectPath, "..") {
		return nil, utils.BadRequest("Invalid file path")
	}

	obj, err := config.MinioClient.GetObject(ctx, config.BucketName, objectPath, minio.GetObjectOptions{})
	if err != nil {
		log.Printf("Error opening object %s: %v", objectPath, err)
		return nil, utils.ServerError("Failed to fetch file")
	}

	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return nil, utils.NotFound("File not found")
		}
		log.Printf("Error stating object %s: %v", objectPath, err)
		return nil, utils.ServerError("Failed to fetch file")
	}

	return &MediaObject{
		Reader:      obj,
		ContentType: stat.ContentType,
		Size:        stat.Size,
	}, nil
}

// StoreObject uploads content into the media bucket.
func StoreObject(ctx context.Context, objectPath, contentType string, size int64, r io.Reader) *utils.ServiceError {
	if config.MinioClient == nil {
		return utils.ServerError("Object storage is not configured")
	}

	objectPath = strings.TrimPrefix(objectPath, "/")
	if objectPath == "" || strings.Contains(objectPath, "..") {
		return utils.BadRequest("Invalid file path")
	}

	_, err := config.MinioClient.PutObject(ctx, config.BucketName, objectPath, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		log.Printf("Error storing object %s: %v", objectPath, err)
		return utils.ServerError("Failed to store file")
	}
	return nil
}
