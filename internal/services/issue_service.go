package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/nikhilr05/civicreport/internal/httperr"
	"github.com/nikhilr05/civicreport/internal/models"
)

// AnonymousUser is the display name attached to issues whose submitter
// email has no matching account.
const AnonymousUser = "Anonymous User"

// IssueService orchestrates submission, moderation and aggregated reads.
type IssueService struct {
	issues *mongo.Collection
	users  *mongo.Collection
	logger *zap.Logger
}

func NewIssueService(db *mongo.Database, logger *zap.Logger) *IssueService {
	return &IssueService{
		issues: db.Collection("issues"),
		users:  db.Collection("users"),
		logger: logger,
	}
}

// SubmitInput carries the caller-supplied issue fields. Any status a
// caller might smuggle in is ignored: new issues always start pending.
type SubmitInput struct {
	Location    string
	EmailID     string
	Category    string
	Issue       string
	Description string
}

// NewIssue builds the record for a submission. Status is pending
// unconditionally and the date is stamped at creation.
func NewIssue(input SubmitInput, photoURL string) models.Issue {
	now := time.Now()
	return models.Issue{
		ID:          primitive.NewObjectID(),
		Photo:       photoURL,
		Location:    input.Location,
		EmailID:     input.EmailID,
		Category:    input.Category,
		Issue:       input.Issue,
		Description: input.Description,
		Date:        now.Format("1/2/2006, 3:04:05 PM"),
		CreatedAt:   now,
		Status:      models.StatusPending,
	}
}

// Submit persists a new issue. The evidence URL must already be stored;
// a failed upload never reaches this point.
func (s *IssueService) Submit(ctx context.Context, input SubmitInput, photoURL string) (models.Issue, error) {
	issue := NewIssue(input, photoURL)
	if _, err := s.issues.InsertOne(ctx, issue); err != nil {
		s.logger.Error("issue insert failed", zap.String("emailid", input.EmailID), zap.Error(err))
		return models.Issue{}, httperr.NewPersistence("failed to save issue", err)
	}
	return issue, nil
}

// TransitionStatus moves an issue to the target status. Unknown targets
// are rejected, as are transitions out of a terminal state.
func (s *IssueService) TransitionStatus(ctx context.Context, id string, target models.IssueStatus) (models.Issue, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Issue{}, httperr.NewNotFound("issue")
	}

	if !models.KnownStatus(target) {
		return models.Issue{}, httperr.NewValidation(fmt.Sprintf("unknown status %q", target))
	}

	var issue models.Issue
	if err := s.issues.FindOne(ctx, bson.M{"_id": objID}).Decode(&issue); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Issue{}, httperr.NewNotFound("issue")
		}
		return models.Issue{}, httperr.NewInternal(err)
	}

	if !models.ValidTransition(issue.Status, target) {
		return models.Issue{}, httperr.NewConflict(
			fmt.Sprintf("cannot transition issue from %q to %q", issue.Status, target))
	}

	// Last-writer-wins: concurrent transitions race without an
	// optimistic check.
	_, err = s.issues.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"status": target}})
	if err != nil {
		return models.Issue{}, httperr.NewPersistence("failed to update issue status", err)
	}

	issue.Status = target
	return issue, nil
}

// ListAll returns every issue, most recent first, with submitter names.
func (s *IssueService) ListAll(ctx context.Context) ([]models.IssueWithUser, error) {
	return s.list(ctx, bson.M{})
}

// ListByStatus returns issues in the given status, most recent first.
func (s *IssueService) ListByStatus(ctx context.Context, status models.IssueStatus) ([]models.IssueWithUser, error) {
	return s.list(ctx, bson.M{"status": status})
}

// ListByUser returns a submitter's issues, optionally narrowed to one
// status, most recent first.
func (s *IssueService) ListByUser(ctx context.Context, emailID string, status models.IssueStatus) ([]models.IssueWithUser, error) {
	filter := bson.M{"emailid": emailID}
	if status != "" {
		filter["status"] = status
	}
	return s.list(ctx, filter)
}

func (s *IssueService) list(ctx context.Context, filter bson.M) ([]models.IssueWithUser, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := s.issues.Find(ctx, filter, opts)
	if err != nil {
		return nil, httperr.NewPersistence("failed to fetch issues", err)
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, httperr.NewPersistence("failed to decode issues", err)
	}

	names, err := s.lookupNames(ctx, issues)
	if err != nil {
		return nil, err
	}
	return Decorate(issues, names), nil
}

// lookupNames fetches every distinct submitter account in one query.
// The lookup is not transactional with the issue read: a user deleted
// in between simply resolves to the fallback name.
func (s *IssueService) lookupNames(ctx context.Context, issues []models.Issue) (map[string]string, error) {
	emails := make([]string, 0, len(issues))
	seen := make(map[string]struct{}, len(issues))
	for _, issue := range issues {
		if _, ok := seen[issue.EmailID]; ok {
			continue
		}
		seen[issue.EmailID] = struct{}{}
		emails = append(emails, issue.EmailID)
	}
	if len(emails) == 0 {
		return map[string]string{}, nil
	}

	cursor, err := s.users.Find(ctx, bson.M{"email": bson.M{"$in": emails}})
	if err != nil {
		return nil, httperr.NewPersistence("failed to fetch users", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, httperr.NewPersistence("failed to decode users", err)
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.Email] = u.Name
	}
	return names, nil
}

// Decorate attaches the submitter's display name to each issue, falling
// back to AnonymousUser for dangling email references.
func Decorate(issues []models.Issue, names map[string]string) []models.IssueWithUser {
	out := make([]models.IssueWithUser, 0, len(issues))
	for _, issue := range issues {
		name, ok := names[issue.EmailID]
		if !ok || name == "" {
			name = AnonymousUser
		}
		out = append(out, models.IssueWithUser{Issue: issue, Username: name})
	}
	return out
}
