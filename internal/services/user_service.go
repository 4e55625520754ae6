package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/nikhilr05/civicreport/internal/httperr"
	"github.com/nikhilr05/civicreport/internal/models"
)

// UserService covers the admin-side user operations: count, search and
// cascading deletion.
type UserService struct {
	users  *mongo.Collection
	issues *mongo.Collection
	logger *zap.Logger
}

func NewUserService(db *mongo.Database, logger *zap.Logger) *UserService {
	return &UserService{
		users:  db.Collection("users"),
		issues: db.Collection("issues"),
		logger: logger,
	}
}

// Count returns the number of registered users.
func (s *UserService) Count(ctx context.Context) (int64, error) {
	count, err := s.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, httperr.NewPersistence("failed to count users", err)
	}
	return count, nil
}

// Search finds users by case-insensitive name match. Password hashes
// are projected out before the documents leave the store.
func (s *UserService) Search(ctx context.Context, name string) ([]models.User, error) {
	if name == "" {
		return nil, httperr.NewValidation("search name is required")
	}

	filter := bson.M{"name": primitive.Regex{Pattern: name, Options: "i"}}
	opts := options.Find().SetProjection(bson.M{"password": 0})
	cursor, err := s.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, httperr.NewPersistence("failed to search users", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, httperr.NewPersistence("failed to decode users", err)
	}
	return users, nil
}

// DeleteCascade removes a user and then every issue they submitted.
// The two phases are not atomic: if the issue deletion fails after the
// user is gone, the issues are left orphaned and the failure is
// surfaced, never retried.
func (s *UserService) DeleteCascade(ctx context.Context, email string) (int64, error) {
	res, err := s.users.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return 0, httperr.NewPersistence("failed to delete user", err)
	}
	if res.DeletedCount == 0 {
		return 0, httperr.NewNotFound("user")
	}

	issuesRes, err := s.issues.DeleteMany(ctx, bson.M{"emailid": email})
	if err != nil {
		s.logger.Error("user deleted but issue cascade failed, issues orphaned",
			zap.String("email", email), zap.Error(err))
		return 0, httperr.NewPersistence("user deleted but their issues could not be removed", err)
	}

	return issuesRes.DeletedCount, nil
}
