package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mamadbah2/sarpras/internal/domain/models"
)

const usersCollection = "users"

// ErrUserNotFound is returned when no account matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines account persistence operations.
type UserRepository interface {
	Insert(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// MongoUserRepository implements UserRepository on the users collection.
type MongoUserRepository struct {
	client *Client
}

// NewUserRepository builds the MongoDB-backed user repository.
func NewUserRepository(client *Client) *MongoUserRepository {
	return &MongoUserRepository{client: client}
}

// Insert stores a new account document.
func (r *MongoUserRepository) Insert(ctx context.Context, user models.User) error {
	coll := r.client.collection(usersCollection)
	if _, err := coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByEmail loads an account by email address.
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	coll := r.client.collection(usersCollection)

	var user models.User
	err := coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}
