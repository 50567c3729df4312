package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"figure-forge-backend/internal/models"
)

// fakeObjectStore keeps uploaded objects in memory and can be told to fail a
// specific upload by path substring.
type fakeObjectStore struct {
	objects     map[string][]byte
	uploadOrder []string
	failOn      string // substring of the path that should fail
	failErr     error
	removed     []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}}
}

func (f *fakeObjectStore) Upload(path string, data []byte, contentType string, overwrite bool) error {
	if f.failOn != "" && strings.Contains(path, f.failOn) {
		if f.failErr != nil {
			return f.failErr
		}
		return errors.New("upload refused")
	}
	if _, exists := f.objects[path]; exists && !overwrite {
		return fmt.Errorf("object already exists at %s", path)
	}
	f.objects[path] = data
	f.uploadOrder = append(f.uploadOrder, path)
	return nil
}

func (f *fakeObjectStore) Remove(paths []string) error {
	for _, path := range paths {
		delete(f.objects, path)
		f.removed = append(f.removed, path)
	}
	return nil
}

func (f *fakeObjectStore) SignedURL(path string, ttlSeconds int) (string, error) {
	if _, exists := f.objects[path]; !exists {
		return "", fmt.Errorf("no object at %s", path)
	}
	return "https://signed.example/" + path, nil
}

func (f *fakeObjectStore) paths() []string {
	var out []string
	for path := range f.objects {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

type fakeOrderStore struct {
	orders     map[uuid.UUID]*models.CustomOrder
	requesters map[string]bool

	failUpsert error
	failInsert error
	failQuote  error
	failStatus error
	failImages error
	failLink   error
	failGet    error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders:     map[uuid.UUID]*models.CustomOrder{},
		requesters: map[string]bool{},
	}
}

func (f *fakeOrderStore) UpsertRequester(requesterID string) error {
	if f.failUpsert != nil {
		return f.failUpsert
	}
	f.requesters[requesterID] = true
	return nil
}

func (f *fakeOrderStore) InsertOrder(order *models.CustomOrder) error {
	if f.failInsert != nil {
		return f.failInsert
	}
	if !f.requesters[order.RequesterID] {
		return errors.New("requester foreign key violation")
	}
	clone := *order
	f.orders[order.ID] = &clone
	return nil
}

func (f *fakeOrderStore) GetOrder(orderID uuid.UUID) (*models.CustomOrder, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	order, ok := f.orders[orderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (f *fakeOrderStore) ListOrdersByRequester(requesterID string) ([]models.CustomOrder, error) {
	var out []models.CustomOrder
	for _, order := range f.orders {
		if order.RequesterID == requesterID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) ListOrdersByStatus(status models.OrderStatus) ([]models.CustomOrder, error) {
	var out []models.CustomOrder
	for _, order := range f.orders {
		if status == "" || order.Status == status {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) SetQuote(orderID uuid.UUID, price decimal.Decimal) (*models.CustomOrder, error) {
	if f.failQuote != nil {
		return nil, f.failQuote
	}
	order, ok := f.orders[orderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	order.QuotedPrice = decimal.NullDecimal{Decimal: price, Valid: true}
	order.Status = models.StatusQuoteProvided
	clone := *order
	return &clone, nil
}

func (f *fakeOrderStore) SetOrderStatus(orderID uuid.UUID, status models.OrderStatus) (*models.CustomOrder, error) {
	if f.failStatus != nil {
		return nil, f.failStatus
	}
	order, ok := f.orders[orderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	order.Status = status
	clone := *order
	return &clone, nil
}

func (f *fakeOrderStore) SetCompletedImages(orderID uuid.UUID, paths []string) (*models.CustomOrder, error) {
	if f.failImages != nil {
		return nil, f.failImages
	}
	order, ok := f.orders[orderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	order.CompletedImagePaths = paths
	order.Status = models.StatusCompleted
	clone := *order
	return &clone, nil
}

func (f *fakeOrderStore) LinkProduct(orderID, productID uuid.UUID) error {
	if f.failLink != nil {
		return f.failLink
	}
	order, ok := f.orders[orderID]
	if !ok {
		return models.ErrNotFound
	}
	order.LinkedProductID = uuid.NullUUID{UUID: productID, Valid: true}
	return nil
}

type fakeProductStore struct {
	products   map[uuid.UUID]*models.Product
	categories map[int]bool

	failInsert    error
	failSetImages error
	deleted       []uuid.UUID
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{
		products:   map[uuid.UUID]*models.Product{},
		categories: map[int]bool{1: true, 2: true},
	}
}

func (f *fakeProductStore) InsertProduct(product *models.Product) error {
	if f.failInsert != nil {
		return f.failInsert
	}
	clone := *product
	f.products[product.ID] = &clone
	return nil
}

func (f *fakeProductStore) SetProductImagePaths(productID uuid.UUID, paths []string) error {
	if f.failSetImages != nil {
		return f.failSetImages
	}
	product, ok := f.products[productID]
	if !ok {
		return models.ErrNotFound
	}
	product.ImagePaths = paths
	return nil
}

func (f *fakeProductStore) DeleteProduct(productID uuid.UUID) error {
	delete(f.products, productID)
	f.deleted = append(f.deleted, productID)
	return nil
}

func (f *fakeProductStore) GetProduct(productID uuid.UUID) (*models.Product, error) {
	product, ok := f.products[productID]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (f *fakeProductStore) ListActiveProducts(categoryID, limit int) ([]models.Product, error) {
	var out []models.Product
	for _, product := range f.products {
		if product.IsActive && (categoryID == 0 || product.CategoryID == categoryID) {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (f *fakeProductStore) CategoryExists(categoryID int) (bool, error) {
	return f.categories[categoryID], nil
}

func (f *fakeProductStore) ListCategories() ([]models.Category, error) {
	return nil, nil
}

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) PublishOrderEvent(orderID uuid.UUID, event string, payload map[string]interface{}) error {
	f.events = append(f.events, event)
	return nil
}

func testImage(name string) ImageFile {
	return ImageFile{
		Filename:    name,
		ContentType: "image/png",
		Data:        []byte("fake png bytes"),
	}
}
