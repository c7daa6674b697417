package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"coursedocs/internal/http/middleware"
	"coursedocs/internal/model"
	"coursedocs/internal/service"
)

// updateDocumentRequest is the reviewer's PUT body. Omitted fields are left unchanged.
type updateDocumentRequest struct {
	Status          string  `json:"status"`
	RejectionReason string  `json:"rejection_reason"`
	Category        *string `json:"category"`
	TermTag         *string `json:"term_tag"`
}

// UploadDocument accepts a multipart submission for a course (field "file", plus "category"
// and optional "term_tag").
//
// @Summary Submit a course document for review
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param course_id path string true "Course ID"
// @Param file formData file true "Document (pdf, docx, pptx, png, jpg, txt)"
// @Param category formData string true "lecture-material | note | past-questions (spaced and singular spellings accepted)"
// @Param term_tag formData string false "Academic term, YYYY/YYYY; required for past questions"
// @Success 201 {object} documentView
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /courses/{course_id}/documents [post]
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := c.Params("course_id")
		if _, err := uuid.Parse(courseID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_COURSE_ID", "invalid course id format")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := docSvc.Submit(c.UserContext(), service.SubmitRequest{
			CourseID:   courseID,
			UploaderID: middleware.ViewerFrom(c).ID,
			Category:   c.FormValue("category"),
			TermTag:    c.FormValue("term_tag"),
			Filename:   fh.Filename,
			Size:       fh.Size,
			File:       f,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(newDocumentView(doc))
	}
}

// ListCourseDocuments lists the approved documents of a course.
//
// @Summary List published documents of a course
// @Tags documents
// @Produce json
// @Param course_id path string true "Course ID"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} listResponse[documentView]
// @Failure 400 {object} errorPayload
// @Router /courses/{course_id}/documents [get]
func ListCourseDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := c.Params("course_id")
		if _, err := uuid.Parse(courseID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_COURSE_ID", "invalid course id format")
		}
		limit, offset, ok := pageParams(c)
		if !ok {
			return nil
		}

		res, err := docSvc.ListApproved(c.UserContext(), courseID, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(publicList(res))
	}
}

// ListDocuments is the reviewer listing across courses, optionally by status.
//
// @Summary List documents for review
// @Tags review
// @Produce json
// @Param status query string false "pending | approved | rejected"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} listResponse[reviewerView]
// @Failure 400 {object} errorPayload
// @Failure 403 {object} errorPayload
// @Router /documents [get]
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok := pageParams(c)
		if !ok {
			return nil
		}

		res, err := docSvc.List(c.UserContext(), c.Query("status"), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(reviewerList(res))
	}
}

// GetDocument returns one document with a download URL when one can be issued.
// Unpublished documents are visible to reviewers and their uploader only.
//
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} documentView
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [get]
func GetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, ok := visibleDocument(c, docSvc)
		if !ok {
			return nil
		}

		// The URL is optional here; /documents/:id/url reports issuer failures.
		u, err := docSvc.AccessURL(c.UserContext(), doc)
		if err != nil {
			u = ""
		}

		if middleware.ViewerFrom(c).IsReviewer() {
			v := newReviewerView(doc)
			v.URL = u
			return c.JSON(v)
		}
		v := newDocumentView(doc)
		v.URL = u
		return c.JSON(v)
	}
}

// GetDocumentURL issues a fresh time-limited download URL.
//
// @Summary Get a download URL
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorPayload
// @Failure 503 {object} errorPayload
// @Router /documents/{id}/url [get]
func GetDocumentURL(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, ok := visibleDocument(c, docSvc)
		if !ok {
			return nil
		}
		u, err := docSvc.AccessURL(c.UserContext(), doc)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": u})
	}
}

// UpdateDocument applies a reviewer decision and/or metadata edit.
//
// @Summary Review a document
// @Tags review
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param body body updateDocumentRequest true "Decision and metadata"
// @Success 200 {object} reviewResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Failure 503 {object} errorPayload
// @Router /documents/{id} [put]
func UpdateDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var body updateDocumentRequest
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if body.Status == "" && body.Category == nil && body.TermTag == nil {
			return writeError(c, fiber.StatusBadRequest, "EMPTY_UPDATE", "nothing to update")
		}

		res, err := docSvc.Review(c.UserContext(), id, service.ReviewRequest{
			Status:          body.Status,
			RejectionReason: body.RejectionReason,
			Category:        body.Category,
			TermTag:         body.TermTag,
			ReviewerID:      middleware.ViewerFrom(c).ID,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(reviewResponse{
			Document: newReviewerView(res.Document),
			Action:   res.Action.String(),
			Deleted:  res.Purged,
		})
	}
}

// DeleteDocument removes a document regardless of its review state.
//
// @Summary Delete a document
// @Tags review
// @Param id path string true "Document ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [delete]
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := docSvc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// visibleDocument loads :id and writes the error response itself when it returns false.
func visibleDocument(c *fiber.Ctx, docSvc service.DocumentService) (*model.Document, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		return nil, false
	}
	doc, err := docSvc.Get(c.UserContext(), id)
	if err != nil {
		_ = writeServiceError(c, err)
		return nil, false
	}
	if !canView(middleware.ViewerFrom(c), doc) {
		_ = writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
		return nil, false
	}
	return doc, true
}

func canView(v middleware.Viewer, doc *model.Document) bool {
	return doc.Status == model.StatusApproved || v.IsReviewer() || (v.ID != "" && v.ID == doc.UploaderID)
}

// pageParams parses limit/offset and writes a 400 itself when it returns false.
func pageParams(c *fiber.Ctx) (int, int, bool) {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		return 0, 0, false
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		return 0, 0, false
	}
	return limit, offset, true
}
