package repository

import (
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MediaFile describes a stored binary asset
type MediaFile struct {
	ID          string
	Name        string
	ContentType string
	Size        int64
}

// MediaRepo stores uploaded binary assets in GridFS
type MediaRepo interface {
	Upload(name, contentType string, source io.Reader) (string, error)
	// Open returns the file's content stream and metadata. The caller
	// closes the stream.
	Open(id string) (io.ReadCloser, *MediaFile, error)
}

type mediaRepo struct {
	bucket *gridfs.Bucket
}

// NewMediaRepo creates a GridFS-backed media repository
func NewMediaRepo(db *mongo.Database) (MediaRepo, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("media"))
	if err != nil {
		return nil, err
	}
	return &mediaRepo{bucket: bucket}, nil
}

func (r *mediaRepo) Upload(name, contentType string, source io.Reader) (string, error) {
	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	oid, err := r.bucket.UploadFromStream(name, source, opts)
	if err != nil {
		return "", err
	}
	return oid.Hex(), nil
}

func (r *mediaRepo) Open(id string) (io.ReadCloser, *MediaFile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := r.bucket.OpenDownloadStream(oid)
	if err != nil {
		return nil, nil, err
	}

	file := stream.GetFile()
	meta := struct {
		ContentType string `bson:"contentType"`
	}{}
	if file.Metadata != nil {
		_ = bson.Unmarshal(file.Metadata, &meta)
	}

	return stream, &MediaFile{
		ID:          id,
		Name:        file.Name,
		ContentType: meta.ContentType,
		Size:        file.Length,
	}, nil
}
