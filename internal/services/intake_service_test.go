package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"figure-forge-backend/internal/models"
)

func validSubmitInput() SubmitOrderInput {
	return SubmitOrderInput{
		RequesterID:    "requester-1",
		Description:    "A knight figure with a broadsword",
		SizePreference: "1/7 scale",
		SourceImage:    testImage("knight.png"),
		ReferenceImages: []ImageFile{
			testImage("pose.png"),
			testImage("armor.png"),
		},
	}
}

func TestIntakeService_Submit(t *testing.T) {
	store := newFakeObjectStore()
	orders := newFakeOrderStore()
	svc := NewIntakeService(store, orders)

	orderID, err := svc.Submit(validSubmitInput())
	require.NoError(t, err)

	order, err := orders.GetOrder(orderID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingReview, order.Status)
	assert.Equal(t, "requester-1", order.RequesterID)
	assert.True(t, strings.HasPrefix(order.SourceImagePath, "requester-1/custom-orders/"))
	assert.True(t, strings.HasSuffix(order.SourceImagePath, "/source/knight.png"))

	// Reference paths keep submission order
	require.Len(t, order.ReferenceImagePaths, 2)
	assert.Contains(t, order.ReferenceImagePaths[0], "/refs/0_pose.png")
	assert.Contains(t, order.ReferenceImagePaths[1], "/refs/1_armor.png")

	// Every path the record references actually holds an object
	assert.Contains(t, store.objects, order.SourceImagePath)
	for _, path := range order.ReferenceImagePaths {
		assert.Contains(t, store.objects, path)
	}

	// The requester record was synced before the insert
	assert.True(t, orders.requesters["requester-1"])
}

func TestIntakeService_Submit_FreshNamespacePerCall(t *testing.T) {
	store := newFakeObjectStore()
	orders := newFakeOrderStore()
	svc := NewIntakeService(store, orders)

	first, err := svc.Submit(validSubmitInput())
	require.NoError(t, err)
	second, err := svc.Submit(validSubmitInput())
	require.NoError(t, err)

	a, _ := orders.GetOrder(first)
	b, _ := orders.GetOrder(second)
	assert.NotEqual(t, a.SourceImagePath, b.SourceImagePath)
}

func TestIntakeService_Submit_Validation(t *testing.T) {
	store := newFakeObjectStore()
	orders := newFakeOrderStore()
	svc := NewIntakeService(store, orders)

	tests := []struct {
		name   string
		mutate func(*SubmitOrderInput)
	}{
		{"short description", func(in *SubmitOrderInput) { in.Description = "too short" }},
		{"short multibyte description", func(in *SubmitOrderInput) { in.Description = "기사 피규어" }},
		{"blank size preference", func(in *SubmitOrderInput) { in.SizePreference = "   " }},
		{"missing source image", func(in *SubmitOrderInput) { in.SourceImage = ImageFile{} }},
		{"non-image source", func(in *SubmitOrderInput) { in.SourceImage.ContentType = "application/pdf" }},
		{"oversized source", func(in *SubmitOrderInput) { in.SourceImage.Data = make([]byte, MaxImageBytes+1) }},
		{"non-image reference", func(in *SubmitOrderInput) { in.ReferenceImages[1].ContentType = "text/plain" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSubmitInput()
			tt.mutate(&in)

			_, err := svc.Submit(in)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			// Validation fails fast: nothing was uploaded or persisted
			assert.Empty(t, store.objects)
			assert.Empty(t, orders.orders)
		})
	}
}

func TestIntakeService_Submit_ReferenceUploadFailureCleansUp(t *testing.T) {
	store := newFakeObjectStore()
	store.failOn = "refs/2_"
	orders := newFakeOrderStore()
	svc := NewIntakeService(store, orders)

	in := validSubmitInput()
	in.ReferenceImages = append(in.ReferenceImages, testImage("base.png"))

	_, err := svc.Submit(in)

	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	// The source and the two reference images uploaded before the failure
	// were deleted: the request namespace holds zero objects.
	assert.Empty(t, store.paths(), "expected no orphaned objects, got %v", store.paths())
	assert.Empty(t, orders.orders)
}

func TestIntakeService_Submit_InsertFailureCompensatesUploads(t *testing.T) {
	store := newFakeObjectStore()
	orders := newFakeOrderStore()
	orders.failInsert = errors.New("connection reset")
	svc := NewIntakeService(store, orders)

	_, err := svc.Submit(validSubmitInput())

	var persistenceErr *PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.Empty(t, store.paths())
}

func TestIntakeService_Submit_SourceUploadNeverOverwrites(t *testing.T) {
	store := newFakeObjectStore()
	orders := newFakeOrderStore()
	svc := NewIntakeService(store, orders)

	ids := 0
	svc.ids = func() uuid.UUID {
		ids++
		var id uuid.UUID
		copy(id[:], fmt.Sprintf("fixed-uuid-%05d", ids))
		return id
	}

	in := validSubmitInput()
	in.ReferenceImages = nil
	_, err := svc.Submit(in)
	require.NoError(t, err)

	// Same namespace again: the non-overwriting upload must refuse
	ids = 0
	_, err = svc.Submit(in)
	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
}
