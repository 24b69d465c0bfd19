package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fancystore-backend/config"
)

var (
	ErrNotFound    = errors.New("image not found")
	ErrTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrInvalidType = errors.New("invalid file type. Only JPEG, PNG, and GIF are allowed")
)

// ImageStore wraps a GridFS bucket. Blobs are keyed by generated id and
// stored under a randomized filename with their content type in metadata.
type ImageStore struct {
	bucket   *gridfs.Bucket
	maxBytes int64
	allowed  map[string]bool
}

func NewImageStore(db *mongo.Database, cfg config.UploadConfig) (*ImageStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("images"))
	if err != nil {
		return nil, fmt.Errorf("create gridfs bucket: %w", err)
	}
	allowed := make(map[string]bool, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowed[t] = true
	}
	return &ImageStore{bucket: bucket, maxBytes: cfg.MaxBytes, allowed: allowed}, nil
}

// ValidateUpload enforces the size cap and the image MIME whitelist.
func ValidateUpload(size, maxBytes int64, contentType string, allowed map[string]bool) error {
	if size > maxBytes {
		return ErrTooLarge
	}
	if !allowed[contentType] {
		return ErrInvalidType
	}
	return nil
}

// Upload streams a multipart file into the bucket and returns the generated
// file id.
func (s *ImageStore) Upload(fh *multipart.FileHeader) (primitive.ObjectID, error) {
	contentType := fh.Header.Get("Content-Type")
	if err := ValidateUpload(fh.Size, s.maxBytes, contentType, s.allowed); err != nil {
		return primitive.NilObjectID, err
	}
	src, err := fh.Open()
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	filename := uuid.NewString() + "-" + filepath.Base(fh.Filename)
	stream, err := s.bucket.OpenUploadStream(filename,
		options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType}))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("open upload stream: %w", err)
	}
	if _, err := io.Copy(stream, io.LimitReader(src, s.maxBytes)); err != nil {
		stream.Close()
		return primitive.NilObjectID, fmt.Errorf("write upload stream: %w", err)
	}
	if err := stream.Close(); err != nil {
		return primitive.NilObjectID, fmt.Errorf("close upload stream: %w", err)
	}
	id, ok := stream.FileID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("unexpected gridfs file id type")
	}
	return id, nil
}

type fileDoc struct {
	Metadata struct {
		ContentType string `bson:"contentType"`
	} `bson:"metadata"`
}

// ContentType looks up the recorded content type of a stored blob.
func (s *ImageStore) ContentType(id primitive.ObjectID) (string, error) {
	cursor, err := s.bucket.Find(bson.M{"_id": id})
	if err != nil {
		return "", fmt.Errorf("find gridfs file: %w", err)
	}
	ctx := context.Background()
	defer cursor.Close(ctx)
	if !cursor.Next(ctx) {
		return "", ErrNotFound
	}
	var doc fileDoc
	if err := cursor.Decode(&doc); err != nil {
		return "", fmt.Errorf("decode gridfs file: %w", err)
	}
	return doc.Metadata.ContentType, nil
}

// Stream copies the blob's bytes to w. Callers fetch ContentType first so
// response headers can go out before the body.
func (s *ImageStore) Stream(w io.Writer, id primitive.ObjectID) error {
	if _, err := s.bucket.DownloadToStream(id, w); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("download gridfs file: %w", err)
	}
	return nil
}

// Delete removes a stored blob. Missing blobs are not an error: delete is
// used to drop a replaced image and the record may already point elsewhere.
func (s *ImageStore) Delete(id primitive.ObjectID) error {
	if id.IsZero() {
		return nil
	}
	if err := s.bucket.Delete(id); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
		return fmt.Errorf("delete gridfs file: %w", err)
	}
	return nil
}

// ImageURL derives the public URL for a stored image id, empty when unset.
func ImageURL(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return "/api/images/" + id.Hex()
}
