package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/nikhilr05/civicreport/internal/httperr"
	"github.com/nikhilr05/civicreport/internal/models"
)

// AuthService owns user signup/login and admin token minting. Passwords
// are stored as bcrypt hashes and never returned to callers.
type AuthService struct {
	users      *mongo.Collection
	admins     *mongo.Collection
	tokens     *TokenManager
	bcryptCost int
}

func NewAuthService(db *mongo.Database, tokens *TokenManager, bcryptCost int) *AuthService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      db.Collection("users"),
		admins:     db.Collection("admins"),
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// SignupUser registers a new user account.
func (s *AuthService) SignupUser(ctx context.Context, email, name, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, httperr.NewValidation("email and password are required")
	}

	var existing models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return models.User{}, httperr.NewValidation("email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return models.User{}, httperr.NewInternal(err)
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Name:      name,
		Password:  string(hash),
		CreatedAt: time.Now(),
	}
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return models.User{}, httperr.NewPersistence("failed to create user", err)
	}

	user.Password = ""
	return user, nil
}

// LoginUser authenticates a user. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, httperr.NewAuthentication()
		}
		return models.User{}, httperr.NewInternal(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return models.User{}, httperr.NewAuthentication()
	}

	user.Password = ""
	return user, nil
}

// LoginAdmin authenticates an admin and mints a moderation token.
func (s *AuthService) LoginAdmin(ctx context.Context, adminID, password string) (string, error) {
	var admin models.Admin
	err := s.admins.FindOne(ctx, bson.M{"admin_id": adminID}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", httperr.NewAuthentication()
		}
		return "", httperr.NewInternal(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return "", httperr.NewAuthentication()
	}

	token, err := s.tokens.Generate(admin.AdminID)
	if err != nil {
		return "", httperr.NewInternal(err)
	}
	return token, nil
}
