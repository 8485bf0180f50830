package user

import (
	"context"
	"errors"

	"go-coursecreator/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	// FindByEmail returns at most limit users whose email matches exactly.
	FindByEmail(ctx context.Context, email string, limit int64) ([]User, error)
	Upsert(ctx context.Context, user *User) error
}

type UserRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewUserRepository(mongodb *database.MongodbDB) UserRepository {
	return &UserRepositoryImpl{
		Collection: mongodb.DB.Collection("users"),
	}
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string, limit int64) ([]User, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"email": email}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Upsert is used by the dev seeder; in production the LMS owns user rows.
func (r *UserRepositoryImpl) Upsert(ctx context.Context, user *User) error {
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user, options.Replace().SetUpsert(true))
	return err
}
