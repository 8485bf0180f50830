package attachment

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go-coursecreator/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrAttachmentNotFound = errors.New("attachment not found")

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *Attachment) error
	// GetOwned returns ErrAttachmentNotFound both for missing ids and for
	// rows owned by someone else.
	GetOwned(ctx context.Context, id int64, userID string) (*Attachment, error)
	ListByOwner(ctx context.Context, userID, org, fileType string) ([]Attachment, error)
	FindOwned(ctx context.Context, ids []int64, userID string) ([]Attachment, error)
	UpdateDescription(ctx context.Context, id int64, userID, description string) (*Attachment, error)
	Delete(ctx context.Context, id int64) error
	EnsureIndexes(ctx context.Context) error
}

type AttachmentRepositoryImpl struct {
	db         *database.MongodbDB
	Collection *mongo.Collection
}

func NewAttachmentRepository(mongodb *database.MongodbDB) AttachmentRepository {
	return &AttachmentRepositoryImpl{
		db:         mongodb,
		Collection: mongodb.DB.Collection("attachments"),
	}
}

func (r *AttachmentRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created", Value: -1}}},
		{Keys: bson.D{{Key: "file_type", Value: 1}}},
		{Keys: bson.D{{Key: "org", Value: 1}}},
		{Keys: bson.D{{Key: "file_path", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

func (r *AttachmentRepositoryImpl) Create(ctx context.Context, attachment *Attachment) error {
	id, err := r.db.NextSequence(ctx, "attachments")
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	attachment.ID = id
	attachment.Created = now
	attachment.Modified = now

	_, err = r.Collection.InsertOne(ctx, attachment)
	return err
}

func (r *AttachmentRepositoryImpl) GetOwned(ctx context.Context, id int64, userID string) (*Attachment, error) {
	var attachment Attachment
	err := r.Collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&attachment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAttachmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *AttachmentRepositoryImpl) ListByOwner(ctx context.Context, userID, org, fileType string) ([]Attachment, error) {
	filter := bson.M{"user_id": userID, "org": org}
	if fileType != "" {
		filter["file_type"] = primitive.Regex{Pattern: regexp.QuoteMeta(fileType), Options: "i"}
	}

	return r.find(ctx, filter)
}

func (r *AttachmentRepositoryImpl) FindOwned(ctx context.Context, ids []int64, userID string) ([]Attachment, error) {
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}, "user_id": userID})
}

func (r *AttachmentRepositoryImpl) find(ctx context.Context, filter bson.M) ([]Attachment, error) {
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	attachments := []Attachment{}
	if err := cursor.All(ctx, &attachments); err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *AttachmentRepositoryImpl) UpdateDescription(ctx context.Context, id int64, userID, description string) (*Attachment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"description": description, "modified": time.Now().UTC()}}

	var attachment Attachment
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id, "user_id": userID}, update, opts).Decode(&attachment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAttachmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *AttachmentRepositoryImpl) Delete(ctx context.Context, id int64) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrAttachmentNotFound
	}
	return nil
}
