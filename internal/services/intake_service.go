package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"figure-forge-backend/internal/models"
)

// IntakeService runs the intake saga: a requester submits a fabrication
// request with one source image and optional reference images. Uploads and
// the order insert hit two independently failing systems; any failure after
// an upload deletes every object written in this invocation, so no orphaned
// objects outlive a failed submission.
type IntakeService struct {
	store  ObjectStore
	orders OrderStore
	ids    func() uuid.UUID
}

func NewIntakeService(store ObjectStore, orders OrderStore) *IntakeService {
	return &IntakeService{
		store:  store,
		orders: orders,
		ids:    uuid.New,
	}
}

type SubmitOrderInput struct {
	RequesterID     string
	Description     string
	SizePreference  string
	SourceImage     ImageFile
	ReferenceImages []ImageFile
}

// Submit validates the request, uploads its images, and inserts the order
// with status pending_review. Re-invocation after a failure is safe: every
// call uploads under a fresh request namespace.
func (s *IntakeService) Submit(in SubmitOrderInput) (uuid.UUID, error) {
	if in.RequesterID == "" {
		return uuid.Nil, &ValidationError{Field: "requester_id", Reason: "requester id is required"}
	}

	description := strings.TrimSpace(in.Description)
	// Characters, not bytes: multibyte descriptions count by rune.
	if utf8.RuneCountInString(description) < MinDescriptionLen {
		return uuid.Nil, &ValidationError{Field: "description", Reason: "description must be at least 10 characters"}
	}
	if strings.TrimSpace(in.SizePreference) == "" {
		return uuid.Nil, &ValidationError{Field: "size_preference", Reason: "size preference is required"}
	}
	if err := validateImage(in.SourceImage, "source image"); err != nil {
		return uuid.Nil, err
	}
	for i, ref := range in.ReferenceImages {
		if err := validateImage(ref, fmt.Sprintf("reference image %d", i+1)); err != nil {
			return uuid.Nil, err
		}
	}

	// Fresh namespace per submission, so concurrent submissions by the same
	// requester never collide on a storage path.
	requestUID := s.ids()
	prefix := fmt.Sprintf("%s/custom-orders/%s", in.RequesterID, requestUID)
	sourcePath := fmt.Sprintf("%s/source/%s", prefix, in.SourceImage.Filename)

	orderID := s.ids()
	order := &models.CustomOrder{
		ID:              orderID,
		RequesterID:     in.RequesterID,
		Description:     description,
		SizePreference:  strings.TrimSpace(in.SizePreference),
		SourceImagePath: sourcePath,
		Status:          models.StatusPendingReview,
	}

	steps := []sagaStep{
		{
			name: "upload source image",
			run: func() error {
				if err := s.store.Upload(sourcePath, in.SourceImage.Data, in.SourceImage.ContentType, false); err != nil {
					return &UploadError{Path: sourcePath, Err: err}
				}
				return nil
			},
			compensate: func() error {
				return s.store.Remove([]string{sourcePath})
			},
		},
	}

	for i, ref := range in.ReferenceImages {
		ref := ref
		refPath := fmt.Sprintf("%s/refs/%d_%s", prefix, i, ref.Filename)
		order.ReferenceImagePaths = append(order.ReferenceImagePaths, refPath)
		steps = append(steps, sagaStep{
			name: fmt.Sprintf("upload reference image %d", i+1),
			run: func() error {
				if err := s.store.Upload(refPath, ref.Data, ref.ContentType, false); err != nil {
					return &UploadError{Path: refPath, Err: err}
				}
				return nil
			},
			compensate: func() error {
				return s.store.Remove([]string{refPath})
			},
		})
	}

	steps = append(steps,
		sagaStep{
			name: "sync requester record",
			run: func() error {
				if err := s.orders.UpsertRequester(in.RequesterID); err != nil {
					return &PersistenceError{Op: "requester upsert", Err: err}
				}
				return nil
			},
		},
		sagaStep{
			name: "insert order record",
			run: func() error {
				if err := s.orders.InsertOrder(order); err != nil {
					return &PersistenceError{Op: "order insert", Err: err}
				}
				return nil
			},
		},
	)

	if _, err := runSaga(steps); err != nil {
		return uuid.Nil, err
	}
	return orderID, nil
}
