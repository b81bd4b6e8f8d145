package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/offanish/proshop/models"
)

// CartItem is a cart line with its add-time product snapshot.
type CartItem struct {
	Product      uint    `json:"product"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
	CountInStock int     `json:"countInStock"`
	Qty          int     `json:"qty"`
}

// CartState is a snapshot of the cart slice.
type CartState struct {
	phase
	CartItems       []CartItem
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
}

// CartSlice owns the client-side cart. Every mutation writes the affected
// cache slot synchronously after the in-memory update.
type CartSlice struct {
	sliceMu
	gw    *Gateway
	cache Cache
	state CartState
}

// NewCartSlice seeds the cart from the cache; absent slots leave the
// defaults in place.
func NewCartSlice(gw *Gateway, cache Cache) *CartSlice {
	s := &CartSlice{gw: gw, cache: cache}
	cache.Get(CacheKeyCartItems, &s.state.CartItems)
	cache.Get(CacheKeyShippingAddress, &s.state.ShippingAddress)
	cache.Get(CacheKeyPaymentMethod, &s.state.PaymentMethod)
	return s
}

func (s *CartSlice) State() CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.CartItems = append([]CartItem(nil), s.state.CartItems...)
	return st
}

// AddLine fetches the product's current record and merges it into the
// cart. A line for the same product is replaced wholly, quantity
// included, never accumulated.
func (s *CartSlice) AddLine(ctx context.Context, productID uint, qty int) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	var product models.Product
	err := s.gw.Get(ctx, fmt.Sprintf("/products/%d", productID), &product)
	if err == nil {
		if qty < 1 {
			err = errors.New("quantity must be at least 1")
		} else if qty > product.CountInStock {
			err = errors.New("quantity exceeds available stock")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.reject(err)
		return err
	}
	s.state.fulfill()

	line := CartItem{
		Product:      product.ID,
		Name:         product.Name,
		Image:        product.Image,
		Price:        product.Price,
		CountInStock: product.CountInStock,
		Qty:          qty,
	}

	replaced := false
	for i, item := range s.state.CartItems {
		if item.Product == productID {
			s.state.CartItems[i] = line
			replaced = true
			break
		}
	}
	if !replaced {
		s.state.CartItems = append(s.state.CartItems, line)
	}

	return s.cache.Put(CacheKeyCartItems, s.state.CartItems)
}

// RemoveLine drops the line for a product. Removing an absent product is
// a no-op (the cache slot is still rewritten).
func (s *CartSlice) RemoveLine(productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.state.CartItems[:0]
	for _, item := range s.state.CartItems {
		if item.Product != productID {
			kept = append(kept, item)
		}
	}
	s.state.CartItems = kept

	return s.cache.Put(CacheKeyCartItems, s.state.CartItems)
}

func (s *CartSlice) SetShippingAddress(addr models.ShippingAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ShippingAddress = addr
	return s.cache.Put(CacheKeyShippingAddress, addr)
}

func (s *CartSlice) SetPaymentMethod(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PaymentMethod = method
	return s.cache.Put(CacheKeyPaymentMethod, method)
}

// OrderItems converts the cart lines into a checkout payload.
func (s *CartSlice) OrderItems() []OrderItemInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]OrderItemInput, 0, len(s.state.CartItems))
	for _, item := range s.state.CartItems {
		items = append(items, OrderItemInput{Product: item.Product, Qty: item.Qty})
	}
	return items
}
