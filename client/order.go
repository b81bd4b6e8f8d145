package client

import (
	"context"
	"fmt"

	"github.com/offanish/proshop/models"
)

// OrderItemInput is one checkout line sent to the server.
type OrderItemInput struct {
	Product uint `json:"product"`
	Qty     int  `json:"qty"`
}

// CreateOrderInput is the checkout payload. The server recomputes prices
// from the catalog; only references and quantities travel.
type CreateOrderInput struct {
	OrderItems      []OrderItemInput       `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// PaymentResultInput is the receipt recorded against an order.
type PaymentResultInput struct {
	TransactionID string `json:"id"`
	Status        string `json:"status"`
	UpdateTime    string `json:"updateTime"`
	EmailAddress  string `json:"emailAddress"`
}

// OrderState is a snapshot of the order slice.
type OrderState struct {
	phase
	CreatedOrder   *models.Order
	OrderDetails   *models.Order
	PaymentSuccess bool
	DeliverSuccess bool
	MyOrders       []models.Order
	AllOrders      []models.Order
}

// OrderSlice owns checkout, payment, delivery, and the order collections.
type OrderSlice struct {
	sliceMu
	gw    *Gateway
	state OrderState
}

func NewOrderSlice(gw *Gateway) *OrderSlice {
	return &OrderSlice{gw: gw}
}

func (s *OrderSlice) State() OrderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Create places an order and stores the server's snapshot of it.
func (s *OrderSlice) Create(ctx context.Context, input CreateOrderInput) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	var order models.Order
	err := s.gw.Post(ctx, "/orders", input, &order)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.reject(err)
		return err
	}
	s.state.fulfill()
	s.state.CreatedOrder = &order
	s.state.Success = true
	return nil
}

// GetDetails replaces the viewed order.
func (s *OrderSlice) GetDetails(ctx context.Context, id uint) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	var order models.Order
	err := s.gw.Get(ctx, fmt.Sprintf("/orders/%d", id), &order)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.reject(err)
		return err
	}
	s.state.fulfill()
	s.state.OrderDetails = &order
	return nil
}

// Pay records a payment receipt and arms the payment flag.
func (s *OrderSlice) Pay(ctx context.Context, orderID uint, result PaymentResultInput) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	err := s.gw.Put(ctx, fmt.Sprintf("/orders/%d/pay", orderID), result, nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.reject(err)
		return err
	}
	s.state.fulfill()
	s.state.PaymentSuccess = true
	return nil
}

// Deliver marks an order delivered and arms the delivery flag.
func (s *OrderSlice) Deliver(ctx context.Context, orderID uint) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	err := s.gw.Put(ctx, fmt.Sprintf("/orders/%d/deliver", orderID), nil, nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.reject(err)
		return err
	}
	s.state.fulfill()
	s.state.DeliverSuccess = true
	return nil
}

// GetMine replaces the caller's order collection.
func (s *OrderSlice) GetMine(ctx context.Context) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	var orders []models.Order
	err := s.gw.Get(ctx, "/orders/myorders", &orders)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.reject(err)
		return err
	}
	s.state.fulfill()
	s.state.MyOrders = orders
	return nil
}

// GetAll replaces the admin order collection.
func (s *OrderSlice) GetAll(ctx context.Context) error {
	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()

	var orders []models.Order
	err := s.gw.Get(ctx, "/orders", &orders)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state.reject(err)
		return err
	}
	s.state.fulfill()
	s.state.AllOrders = orders
	return nil
}

// ResetOrders clears only the order collections, not the viewed order or
// its flags. Invoked as part of logout.
func (s *OrderSlice) ResetOrders() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.MyOrders = nil
	s.state.AllOrders = nil
}
