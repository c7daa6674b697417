package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"coursedocs/internal/cache"
	"coursedocs/internal/logger"
	"coursedocs/internal/model"
	"coursedocs/internal/naming"
	"coursedocs/internal/placement"
	"coursedocs/internal/repository"
	"coursedocs/internal/review"
	"coursedocs/internal/storage"
	"coursedocs/internal/validation"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// SubmitRequest carries one upload. File must be seekable: it is sniffed, rewound and then streamed
// to the object store.
type SubmitRequest struct {
	CourseID   string
	UploaderID string
	Category   string
	TermTag    string
	Filename   string
	Size       int64
	File       io.ReadSeeker
}

// ReviewRequest is a reviewer's update. An empty Status leaves the review state alone;
// nil Category/TermTag leave that field unchanged.
type ReviewRequest struct {
	Status          string
	RejectionReason string
	Category        *string
	TermTag         *string
	ReviewerID      string
}

// ReviewResult reports what a review did. Purged documents no longer exist.
type ReviewResult struct {
	Document *model.Document
	Action   review.Action
	Purged   bool
}

// DocumentService defines the use cases for handling course documents.
type DocumentService interface {
	// Submit validates an upload, stages it in object storage, records it as pending and
	// notifies the reviewers. The staged object is deleted again if the record cannot be saved.
	Submit(ctx context.Context, req SubmitRequest) (*model.Document, error)

	// Review applies metadata edits and a status decision to a document.
	// A failed promotion leaves the document pending and returns ErrPromotionFailed with the result.
	Review(ctx context.Context, id string, req ReviewRequest) (*ReviewResult, error)

	// List returns documents in any course, optionally filtered by status.
	List(ctx context.Context, status string, limit, offset int) (*DocumentListResult, error)

	// ListApproved returns the published documents of one course.
	ListApproved(ctx context.Context, courseID string, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// AccessURL issues a time-limited read URL for the document's current object.
	AccessURL(ctx context.Context, doc *model.Document) (string, error)

	// Delete removes a document record and, best effort, its object.
	Delete(ctx context.Context, id string) error
}

// Dependencies wires a DocumentService. Cache and Metrics are optional.
type Dependencies struct {
	Store      storage.Storage
	Documents  repository.DocumentRepository
	UnitOfWork repository.UnitOfWork
	Courses    repository.CourseReader
	Notifier   repository.Notifier
	Cache      cache.Cache
	Content    *validation.ContentValidator
	Metadata   *validation.MetadataValidator
	Metrics    *Metrics
	Logger     *logger.Logger
	PresignTTL time.Duration
	Now        func() time.Time
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store      storage.Storage
	repo       repository.DocumentRepository
	uow        repository.UnitOfWork
	courses    repository.CourseReader
	notifier   repository.Notifier
	cache      cache.Cache
	content    *validation.ContentValidator
	meta       *validation.MetadataValidator
	metrics    *Metrics
	log        *logger.Logger
	presignTTL time.Duration
	now        func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(d Dependencies) DocumentService {
	s := &documentService{
		store:      d.Store,
		repo:       d.Documents,
		uow:        d.UnitOfWork,
		courses:    d.Courses,
		notifier:   d.Notifier,
		cache:      d.Cache,
		content:    d.Content,
		meta:       d.Metadata,
		metrics:    d.Metrics,
		log:        d.Logger,
		presignTTL: d.PresignTTL,
		now:        d.Now,
	}
	if s.content == nil {
		s.content = validation.NewContentValidator(0)
	}
	if s.meta == nil {
		s.meta = validation.NewMetadataValidator()
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.presignTTL <= 0 {
		s.presignTTL = time.Hour
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	return s
}

func (s *documentService) Submit(ctx context.Context, req SubmitRequest) (*model.Document, error) {
	if req.File == nil {
		return nil, ErrReaderNil
	}

	meta, err := s.meta.Validate(validation.Metadata{Category: req.Category, TermTag: req.TermTag})
	if err != nil {
		s.metrics.submission("invalid")
		return nil, err
	}
	content, err := s.content.Validate(req.File, req.Filename, req.Size)
	if err != nil {
		if validation.HasCode(err, validation.CodeTooLarge) {
			s.metrics.submission("too_large")
		} else {
			s.metrics.submission("invalid")
		}
		return nil, err
	}

	course, cls, err := s.classify(ctx, req.CourseID)
	if err != nil {
		s.metrics.submission("invalid")
		return nil, err
	}

	stem := naming.Compose(course.Code, meta.Category, meta.TermTag, naming.Token())
	name := naming.Normalize(stem+content.Extension, content.Extension)
	key := placement.StagingPath(placement.LocationOf(course), cls, name)

	// Upload to object storage
	if _, err := s.store.Put(ctx, key, req.File, storage.PutObjectOptions{
		Size:        content.Size,
		ContentType: content.ContentType,
		Metadata: map[string]string{
			"original-filename": req.Filename,
		},
	}); err != nil {
		s.log.Error("stage upload failed", "op", "put", "key", key, "error", err)
		s.metrics.submission("failed")
		return nil, fmt.Errorf("%w: upload to storage: %v", ErrStorage, err)
	}

	now := s.now()
	doc := &model.Document{
		ID:            uuid.NewString(),
		OriginalName:  req.Filename,
		CanonicalName: name,
		Extension:     content.Extension,
		ContentType:   content.ContentType,
		ByteSize:      content.Size,
		PageCount:     content.PageCount,
		Category:      meta.Category,
		TermTag:       meta.TermTag,
		Status:        model.StatusPending,
		StagingPath:   key,
		CourseID:      course.ID,
		UploaderID:    req.UploaderID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		s.metrics.submission("failed")
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.Error("orphaned staged object", "op", "delete", "key", key, "error", delErr)
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	if err := s.notifier.Notify(ctx, model.AudienceAdmin, "new file pending review - "+stored.CanonicalName); err != nil {
		s.log.Warn("notify reviewers failed", "document_id", stored.ID, "error", err)
	}

	s.metrics.submission("accepted")
	s.metrics.uploaded(stored.ByteSize)
	s.log.Info("document submitted", "document_id", stored.ID, "key", key, "classification", cls.Kind.String())
	return stored, nil
}

// classify resolves the course and where its documents are filed.
func (s *documentService) classify(ctx context.Context, courseID string) (*model.Course, placement.Classification, error) {
	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, placement.Classification{}, ErrCourseNotFound
		}
		return nil, placement.Classification{}, fmt.Errorf("get course: %w", err)
	}
	coverage, err := s.courses.CourseDepartments(ctx, course.ID)
	if err != nil {
		return nil, placement.Classification{}, fmt.Errorf("course departments: %w", err)
	}
	total, err := s.courses.CountDepartments(ctx)
	if err != nil {
		return nil, placement.Classification{}, fmt.Errorf("count departments: %w", err)
	}
	cls, err := placement.Classify(coverage, total)
	if err != nil {
		return nil, placement.Classification{}, err
	}
	return course, cls, nil
}

func (s *documentService) Review(ctx context.Context, id string, req ReviewRequest) (*ReviewResult, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	decision, err := review.ParseDecision(req.Status, req.RejectionReason)
	if err != nil {
		return nil, err
	}

	var (
		res          ReviewResult
		promoteErr   error
		promotedTo   string
		staleStaging string
	)
	err = s.uow.WithinTx(ctx, func(docs repository.DocumentRepository) error {
		doc, err := docs.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		if req.Category != nil || req.TermTag != nil {
			in := validation.Metadata{Category: doc.Category, TermTag: doc.TermTag}
			if req.Category != nil {
				in.Category = *req.Category
			}
			if req.TermTag != nil {
				in.TermTag = *req.TermTag
			}
			meta, err := s.meta.Validate(in)
			if err != nil {
				return err
			}
			doc.Category, doc.TermTag = meta.Category, meta.TermTag
		}

		action, err := review.Apply(doc, decision, req.ReviewerID)
		if err != nil {
			return err
		}
		doc.UpdatedAt = s.now()
		res.Action = action

		switch action {
		case review.ActionPromote:
			perm, err := s.promote(ctx, doc)
			if err != nil {
				promoteErr = err
				if rbErr := review.Rollback(doc); rbErr != nil {
					return rbErr
				}
				// Metadata edits still persist; the document stays reviewable.
				break
			}
			doc.PermanentPath = perm
			promotedTo = perm
			staleStaging = doc.StagingPath

		case review.ActionPurge:
			key := doc.ObjectKey()
			if err := s.store.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
				s.log.Error("purge object failed", "op", "delete", "key", key, "document_id", doc.ID, "error", err)
				return fmt.Errorf("%w: delete object: %v", ErrStorage, err)
			}
			if err := docs.Delete(ctx, doc.ID); err != nil {
				return err
			}
			s.invalidate(ctx, key)
			res.Document = doc
			res.Purged = true
			return nil
		}

		if err := docs.Update(ctx, doc); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		res.Document = doc
		return nil
	})
	if err != nil {
		if promotedTo != "" {
			// The approval never committed; the permanent copy must not outlive it.
			if delErr := s.store.Delete(ctx, promotedTo); delErr != nil {
				s.log.Error("orphaned promoted object", "op", "delete", "key", promotedTo, "error", delErr)
			}
		}
		s.metrics.review(res.Action.String(), "failed")
		return nil, err
	}

	if staleStaging != "" {
		if err := s.store.Delete(ctx, staleStaging); err != nil {
			s.log.Warn("staging cleanup failed", "op", "delete", "key", staleStaging, "document_id", id, "error", err)
		}
		s.invalidate(ctx, staleStaging)
	}

	if promoteErr != nil {
		span := trace.SpanFromContext(ctx)
		span.RecordError(promoteErr)
		span.AddEvent("promotion_rolled_back", trace.WithAttributes(attribute.String("document.id", id)))
		s.log.Error("promotion failed, document left pending", "document_id", id, "error", promoteErr)
		s.metrics.review(res.Action.String(), "rolled_back")
		return &res, fmt.Errorf("%w: %v", ErrPromotionFailed, promoteErr)
	}

	s.metrics.review(res.Action.String(), "ok")
	s.log.Info("document reviewed", "document_id", id, "action", res.Action.String(), "reviewer_id", req.ReviewerID)
	return &res, nil
}

// promote copies the staged object to its permanent key and verifies the copy. The staged
// object is left in place; the caller removes it once the approval is committed. A copy that
// lands but fails verification is removed again.
func (s *documentService) promote(ctx context.Context, doc *model.Document) (string, error) {
	perm, err := placement.PermanentPath(doc.StagingPath)
	if err != nil {
		return "", err
	}
	parsed, err := placement.ParsePath(perm)
	if err != nil {
		return "", err
	}
	if parsed.Staging {
		return "", fmt.Errorf("%w: %q", placement.ErrMalformedPath, perm)
	}
	if _, err := storage.CopyVerified(ctx, s.store, doc.StagingPath, perm, doc.ByteSize); err != nil {
		if errors.Is(err, storage.ErrIncompleteCopy) {
			if delErr := s.store.Delete(ctx, perm); delErr != nil && !errors.Is(delErr, storage.ErrObjectNotFound) {
				s.log.Error("orphaned promoted object", "op", "delete", "key", perm, "document_id", doc.ID, "error", delErr)
			}
		}
		return "", err
	}
	return perm, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, status string, limit, offset int) (*DocumentListResult, error) {
	st := model.Status(status)
	if st != "" && !st.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.list(ctx, repository.DocumentFilter{Status: st}, limit, offset)
}

func (s *documentService) ListApproved(ctx context.Context, courseID string, limit, offset int) (*DocumentListResult, error) {
	if courseID == "" {
		return nil, ErrIDRequired
	}
	return s.list(ctx, repository.DocumentFilter{Status: model.StatusApproved, CourseID: courseID}, limit, offset)
}

func (s *documentService) list(ctx context.Context, f repository.DocumentFilter, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, f, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// AccessURL serves a cached URL while it still has a safe margin left, otherwise presigns a new one.
func (s *documentService) AccessURL(ctx context.Context, doc *model.Document) (string, error) {
	key := doc.ObjectKey()
	if key == "" {
		return "", fmt.Errorf("%w: document has no object", ErrIssuerUnavailable)
	}

	if s.cache != nil {
		u, err := s.cache.Get(ctx, cache.PresignKey(key))
		if err == nil && u != "" {
			s.metrics.presign("cache")
			return u, nil
		}
		if err != nil && !errors.Is(err, cache.ErrNotFound) {
			s.log.Warn("presign cache read failed", "key", key, "error", err)
		}
	}

	u, err := s.store.PresignGet(ctx, key, s.presignTTL, doc.CanonicalName)
	if err != nil {
		s.metrics.presign("error")
		s.log.Error("presign failed", "op", "presign", "key", key, "error", err)
		return "", fmt.Errorf("%w: %v", ErrIssuerUnavailable, err)
	}
	s.metrics.presign("store")

	if ttl := cache.PresignTTL(s.presignTTL); s.cache != nil && ttl > 0 {
		if err := s.cache.Set(ctx, cache.PresignKey(key), u, ttl); err != nil {
			s.log.Warn("presign cache write failed", "key", key, "error", err)
		}
	}
	return u, nil
}

// Delete removes the object at whichever key is authoritative, then the record.
// Object failures are logged and never block the record removal.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	key := doc.ObjectKey()
	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Warn("delete object failed", "op", "delete", "key", key, "document_id", id, "error", err)
	}
	s.invalidate(ctx, key)

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("document deleted", "document_id", id, "key", key)
	return nil
}

func (s *documentService) invalidate(ctx context.Context, objectKey string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.PresignKey(objectKey)); err != nil {
		s.log.Warn("presign cache invalidation failed", "key", objectKey, "error", err)
	}
}
