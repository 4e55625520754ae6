package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/nikhilr05/civicreport/internal/httperr"
	"github.com/nikhilr05/civicreport/internal/models"
	"github.com/nikhilr05/civicreport/internal/services"
	"github.com/nikhilr05/civicreport/internal/storage"
)

type IssueHandler struct {
	issues   *services.IssueService
	evidence storage.EvidenceStore
	logger   *zap.Logger
}

func NewIssueHandler(issues *services.IssueService, evidence storage.EvidenceStore, logger *zap.Logger) *IssueHandler {
	return &IssueHandler{issues: issues, evidence: evidence, logger: logger}
}

// Submit accepts a multipart issue report. The photo is stored first;
// no issue record is created if the upload fails.
func (h *IssueHandler) Submit(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return httperr.Respond(c, h.logger, httperr.NewValidation("photo is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return httperr.Respond(c, h.logger, httperr.NewUpload(err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return httperr.Respond(c, h.logger, httperr.NewUpload(err))
	}

	photoURL, err := h.evidence.Store(c.UserContext(), data, fileHeader.Filename)
	if err != nil {
		return httperr.Respond(c, h.logger, err)
	}

	input := services.SubmitInput{
		Location:    c.FormValue("location"),
		EmailID:     c.FormValue("emailid"),
		Category:    c.FormValue("category"),
		Issue:       c.FormValue("issue"),
		Description: c.FormValue("description"),
	}

	issue, err := h.issues.Submit(c.UserContext(), input, photoURL)
	if err != nil {
		return httperr.Respond(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "issue submitted successfully",
		"issue":   issue,
	})
}

// ListAll returns every issue with submitter names, newest first.
func (h *IssueHandler) ListAll(c *fiber.Ctx) error {
	issues, err := h.issues.ListAll(c.UserContext())
	if err != nil {
		return httperr.Respond(c, h.logger, err)
	}
	return c.JSON(issues)
}

// ListByStatus returns issues in the status named by the path.
func (h *IssueHandler) ListByStatus(c *fiber.Ctx) error {
	status := models.IssueStatus(c.Params("status"))
	issues, err := h.issues.ListByStatus(c.UserContext(), status)
	if err != nil {
		return httperr.Respond(c, h.logger, err)
	}
	return c.JSON(issues)
}

// ListAccepted is a shortcut for the accepted listing.
func (h *IssueHandler) ListAccepted(c *fiber.Ctx) error {
	issues, err := h.issues.ListByStatus(c.UserContext(), models.StatusAccepted)
	if err != nil {
		return httperr.Respond(c, h.logger, err)
	}
	return c.JSON(issues)
}

// ListByUser returns a submitter's issues, optionally filtered by a
// status query parameter.
func (h *IssueHandler) ListByUser(c *fiber.Ctx) error {
	emailID := c.Params("emailid")
	status := models.IssueStatus(c.Query("status"))
	issues, err := h.issues.ListByUser(c.UserContext(), emailID, status)
	if err != nil {
		return httperr.Respond(c, h.logger, err)
	}
	return c.JSON(issues)
}

// UpdateStatus transitions an issue's moderation status.
func (h *IssueHandler) UpdateStatus(c *fiber.Ctx) error {
	var request struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&request); err != nil {
		return httperr.Respond(c, h.logger, httperr.NewValidation("invalid request body"))
	}

	issue, err := h.issues.TransitionStatus(c.UserContext(), c.Params("id"), models.IssueStatus(request.Status))
	if err != nil {
		return httperr.Respond(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "issue status updated",
		"issue":   issue,
	})
}
