package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"courseforge/internal/model"
)

// CourseRepo handles MongoDB operations for course documents
type CourseRepo interface {
	// Save upserts a course. An empty id inserts a new record; a non-empty
	// id replaces exactly that record. Idempotent under retry with the
	// same id.
	Save(ctx context.Context, doc model.CourseDocument, id string) (string, error)
	// LoadLatest returns the most recently updated course, or nil if the
	// collection is empty.
	LoadLatest(ctx context.Context) (*model.CourseRecord, error)
	GetByID(ctx context.Context, id string) (*model.CourseRecord, error)
	List(ctx context.Context) ([]*model.CourseRecord, error)
	Delete(ctx context.Context, id string) error
}

// courseDoc is the stored shape; _id stays an ObjectID inside the
// repository and is exposed as its hex form.
type courseDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Title     string               `bson:"title"`
	Data      model.CourseDocument `bson:"data"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

func (d courseDoc) record() *model.CourseRecord {
	return &model.CourseRecord{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Data:      d.Data,
		UpdatedAt: d.UpdatedAt,
	}
}

type courseRepo struct {
	collection *mongo.Collection
}

// NewCourseRepo creates a new course repository
func NewCourseRepo(db *mongo.Database) CourseRepo {
	return &courseRepo{
		collection: db.Collection("courses"),
	}
}

func (r *courseRepo) Save(ctx context.Context, doc model.CourseDocument, id string) (string, error) {
	stored := courseDoc{
		Title:     doc.Title,
		Data:      doc,
		UpdatedAt: time.Now(),
	}

	if id == "" {
		result, err := r.collection.InsertOne(ctx, stored)
		if err != nil {
			return "", err
		}
		oid, ok := result.InsertedID.(primitive.ObjectID)
		if !ok {
			return "", nil
		}
		return oid.Hex(), nil
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", err
	}
	stored.ID = oid
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, stored, options.Replace().SetUpsert(true))
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *courseRepo) LoadLatest(ctx context.Context) (*model.CourseRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "updatedAt", Value: -1}})

	var stored courseDoc
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&stored)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return stored.record(), nil
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.CourseRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var stored courseDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&stored)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return stored.record(), nil
}

func (r *courseRepo) List(ctx context.Context) ([]*model.CourseRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.CourseRecord
	for cursor.Next(ctx) {
		var stored courseDoc
		if err := cursor.Decode(&stored); err != nil {
			return nil, err
		}
		records = append(records, stored.record())
	}
	return records, cursor.Err()
}

func (r *courseRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
