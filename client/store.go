package client

// Store bundles the domain slices over one gateway and one cache, the way
// a storefront process uses them. The user slice's token feeds the
// gateway, so every slice picks up the session automatically.
type Store struct {
	Gateway        *Gateway
	ProductList    *ProductListSlice
	ProductDetails *ProductDetailsSlice
	Cart           *CartSlice
	User           *UserSlice
	Order          *OrderSlice
}

func NewStore(baseURL string, cache Cache) *Store {
	gw := NewGateway(baseURL)

	user := NewUserSlice(gw, cache)
	gw.Token = user.Token

	return &Store{
		Gateway:        gw,
		ProductList:    NewProductListSlice(gw),
		ProductDetails: NewProductDetailsSlice(gw),
		Cart:           NewCartSlice(gw, cache),
		User:           user,
		Order:          NewOrderSlice(gw),
	}
}

// Logout signs out and cascades the resets the next session depends on.
func (s *Store) Logout() error {
	return s.User.Logout(s.Order)
}
