package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/offanish/proshop/models"
)

// ProductListState is a snapshot of the catalog slice.
type ProductListState struct {
	phase
	Products       []models.Product
	Page           int
	Pages          int
	TopProducts    []models.Product
	CreatedProduct *models.Product
	UpdatedProduct *models.Product
}

// ProductListSlice owns the catalog collection plus the admin create /
// update / delete operations against it.
type ProductListSlice struct {
	sliceMu
	gw    *Gateway
	state ProductListState

	// last list query, replayed after a delete
	lastKeyword string
	lastPage    int
}

func NewProductListSlice(gw *Gateway) *ProductListSlice {
	return &ProductListSlice{gw: gw, lastPage: 1}
}

// State returns a copy of the current slice state.
func (s *ProductListSlice) State() ProductListState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ResetStatus clears the error and success flags so the view can arm for
// the next one-shot observation.
func (s *ProductListSlice) ResetStatus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = ""
	s.state.Success = false
}

type productPage struct {
	Products []models.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
}

// List replaces the product collection with one catalog page.
func (s *ProductListSlice) List(ctx context.Context, keyword string, page int) error {
	s.mu.Lock()
	s.state.begin()
	s.lastKeyword, s.lastPage = keyword, page
	s.mu.Unlock()

	var resp productPage
	err := s.gw.Get(ctx, fmt.Sprintf("/products?keyword=%s&pageNumber=%d", url.QueryEscape(keyword), page), &resp)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.reject(err)
		return err
	}
	s.state.fulfill()
	s.state.Products = resp.Products
	s.state.Page = resp.Page
	s.state.Pages = resp.Pages
	return nil
}

// ListTop replaces the top-products collection.
func (s *ProductListSlice) ListTop(ctx context.Context) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	var products []models.Product
	err := s.gw.Get(ctx, "/products/top", &products)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.reject(err)
		return err
	}
	s.state.fulfill()
	s.state.TopProducts = products
	return nil
}

// Create asks the server for a placeholder product and stores it so the
// view can navigate to its editor.
func (s *ProductListSlice) Create(ctx context.Context) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	var product models.Product
	err := s.gw.Post(ctx, "/products", nil, &product)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.reject(err)
		return err
	}
	s.state.fulfill()
	s.state.CreatedProduct = &product
	return nil
}

// UpdateProductInput carries the editable product fields. Nil fields are
// left unchanged server-side.
type UpdateProductInput struct {
	Name         *string  `json:"name,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Image        *string  `json:"image,omitempty"`
	Brand        *string  `json:"brand,omitempty"`
	Category     *string  `json:"category,omitempty"`
	CountInStock *int     `json:"countInStock,omitempty"`
}

// Update overwrites product fields and stores the result.
func (s *ProductListSlice) Update(ctx context.Context, id uint, input UpdateProductInput) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	var product models.Product
	err := s.gw.Put(ctx, fmt.Sprintf("/products/%d", id), input, &product)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.reject(err)
		return err
	}
	s.state.fulfill()
	s.state.UpdatedProduct = &product
	return nil
}

// Delete removes a product, then re-lists so the collection reflects
// server truth rather than a local splice. The re-list is a second
// round trip whose failure surfaces like any other list failure.
func (s *ProductListSlice) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	s.state.begin()
	keyword, page := s.lastKeyword, s.lastPage
	s.mu.Unlock()

	if err := s.gw.Delete(ctx, fmt.Sprintf("/products/%d", id)); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.state.reject(err)
		return err
	}

	return s.List(ctx, keyword, page)
}

type createReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateReview appends a review to a product and arms the success flag.
func (s *ProductListSlice) CreateReview(ctx context.Context, productID uint, rating int, comment string) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	err := s.gw.Post(ctx, fmt.Sprintf("/products/%d/reviews", productID), createReviewInput{Rating: rating, Comment: comment}, nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.reject(err)
		return err
	}
	s.state.fulfill()
	s.state.Success = true
	return nil
}

// ProductDetailsState is a snapshot of the single-product slice.
type ProductDetailsState struct {
	phase
	Product models.Product
}

// ProductDetailsSlice owns the currently viewed product.
type ProductDetailsSlice struct {
	sliceMu
	gw    *Gateway
	state ProductDetailsState
}

func NewProductDetailsSlice(gw *Gateway) *ProductDetailsSlice {
	return &ProductDetailsSlice{gw: gw}
}

func (s *ProductDetailsSlice) State() ProductDetailsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Get replaces the single product record.
func (s *ProductDetailsSlice) Get(ctx context.Context, id uint) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	var product models.Product
	err := s.gw.Get(ctx, fmt.Sprintf("/products/%d", id), &product)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.reject(err)
		return err
	}
	s.state.fulfill()
	s.state.Product = product
	return nil
}
