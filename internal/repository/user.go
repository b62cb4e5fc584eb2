package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/lessonhub-backend/internal/apperr"
	"github.com/AnshRaj112/lessonhub-backend/internal/models"
)

// UserRepository defines the user operations the auth flow needs.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateAvatar(ctx context.Context, id string, avatar string) error
	TouchLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

type UserMongoRepository struct {
	db     *mongo.Database
	logger *zerolog.Logger
}

func NewUserMongoRepository(logger *zerolog.Logger, db *mongo.Database) *UserMongoRepository {
	return &UserMongoRepository{db: db, logger: logger}
}

// EnsureIndexes creates the unique username index. The index, not the
// lookup in Register, is what guarantees uniqueness under concurrent signups.
func (r *UserMongoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_username"),
		},
	}
	if _, err := r.db.Collection(userCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		return storeErr("create user indexes", err)
	}
	r.logger.Debug().Str("collection", userCollection).Msg("indexes ensured")
	return nil
}

func (r *UserMongoRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("create user %q: %w", user.Username, apperr.ErrDuplicateUser)
		}
		return nil, storeErr("create user", err)
	}

	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, storeErr("create user", errors.New("inserted id is not an ObjectID"))
	}
	user.ID = objectID

	return user, nil
}

func (r *UserMongoRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	objectID, err := parseObjectID("get user", id)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := r.db.Collection(userCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&user); err != nil {
		return nil, notFoundOr("get user", err)
	}
	return &user, nil
}

func (r *UserMongoRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.Collection(userCollection).FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		return nil, notFoundOr("get user by username", err)
	}
	return &user, nil
}

func (r *UserMongoRepository) UpdateAvatar(ctx context.Context, id string, avatar string) error {
	objectID, err := parseObjectID("update avatar", id)
	if err != nil {
		return err
	}

	result, err := r.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"avatar": avatar, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return storeErr("update avatar", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("update avatar: %w", apperr.ErrNotFound)
	}
	return nil
}

func (r *UserMongoRepository) TouchLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_login_at": at.UTC()}},
	)
	if err != nil {
		return storeErr("touch login", err)
	}
	return nil
}
