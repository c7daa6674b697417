package handler

import (
	"time"

	"coursedocs/internal/model"
	"coursedocs/internal/service"
)

// documentView is what any caller may see of a document.
type documentView struct {
	ID            string       `json:"id"`
	CanonicalName string       `json:"canonical_name"`
	Category      string       `json:"category"`
	TermTag       string       `json:"term_tag,omitempty"`
	Extension     string       `json:"extension"`
	ContentType   string       `json:"content_type"`
	Size          int64        `json:"size"`
	PageCount     int          `json:"page_count,omitempty"`
	Status        model.Status `json:"status"`
	CourseID      string       `json:"course_id"`
	UploaderID    string       `json:"uploader_id"`
	CreatedAt     time.Time    `json:"created_at"`
	URL           string       `json:"url,omitempty"`
}

// reviewerView adds the storage and review fields only reviewers get.
type reviewerView struct {
	documentView
	OriginalName    string    `json:"original_name"`
	StagingPath     string    `json:"staging_path"`
	PermanentPath   string    `json:"permanent_path,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	ReviewerID      string    `json:"reviewer_id,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type listResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

type reviewResponse struct {
	Document reviewerView `json:"document"`
	Action   string       `json:"action"`
	Deleted  bool         `json:"deleted"`
}

func newDocumentView(d *model.Document) documentView {
	return documentView{
		ID:            d.ID,
		CanonicalName: d.CanonicalName,
		Category:      d.Category,
		TermTag:       d.TermTag,
		Extension:     d.Extension,
		ContentType:   d.ContentType,
		Size:          d.ByteSize,
		PageCount:     d.PageCount,
		Status:        d.Status,
		CourseID:      d.CourseID,
		UploaderID:    d.UploaderID,
		CreatedAt:     d.CreatedAt,
	}
}

func newReviewerView(d *model.Document) reviewerView {
	return reviewerView{
		documentView:    newDocumentView(d),
		OriginalName:    d.OriginalName,
		StagingPath:     d.StagingPath,
		PermanentPath:   d.PermanentPath,
		RejectionReason: d.RejectionReason,
		ReviewerID:      d.ReviewerID,
		UpdatedAt:       d.UpdatedAt,
	}
}

func publicList(res *service.DocumentListResult) listResponse[documentView] {
	out := listResponse[documentView]{Data: make([]documentView, 0, len(res.Items)), Total: res.Total}
	for i := range res.Items {
		out.Data = append(out.Data, newDocumentView(&res.Items[i]))
	}
	return out
}

func reviewerList(res *service.DocumentListResult) listResponse[reviewerView] {
	out := listResponse[reviewerView]{Data: make([]reviewerView, 0, len(res.Items)), Total: res.Total}
	for i := range res.Items {
		out.Data = append(out.Data, newReviewerView(&res.Items[i]))
	}
	return out
}
