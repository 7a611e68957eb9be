// internal/devserver/store.go
package devserver

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-client/internal/domain/address"
	"github.com/your-org/storefront-client/internal/domain/booking"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/order"
	"github.com/your-org/storefront-client/internal/domain/pricing"
	"github.com/your-org/storefront-client/internal/domain/product"
	"github.com/your-org/storefront-client/internal/domain/wishlist"
)

// memoryState is the dev backend's entire world: one user's cart,
// addresses, wishlist, orders, and bookings, plus a seeded catalog.
type memoryState struct {
	mu sync.Mutex

	products  []product.Product
	cart      []cart.LineItem
	addresses []address.Address
	wishlist  []wishlist.Item
	orders    []order.Order
	bookings  []booking.Booking
	promos    map[string]pricing.PromoResult

	nextAddressID int
	nextOrderSeq  int
}

func newMemoryState() *memoryState {
	return &memoryState{
		products: seedProducts(),
		bookings: seedBookings(),
		promos: map[string]pricing.PromoResult{
			"SAVE10":  {Code: "SAVE10", Valid: true, Type: pricing.PromoTypePercent, Value: 10},
			"FLAT500": {Code: "FLAT500", Valid: true, Type: pricing.PromoTypeFlat, Value: 500},
		},
	}
}

func seedProducts() []product.Product {
	return []product.Product{
		{ID: "p-monstera", Name: "Monstera Deliciosa", Description: "Large-leaf tropical houseplant", Price: 2499, Category: "plants", InStock: true, Rating: 4.8},
		{ID: "p-fiddle", Name: "Fiddle Leaf Fig", Description: "Statement plant for bright rooms", Price: 3999, Category: "plants", InStock: true, Rating: 4.5},
		{ID: "p-snake", Name: "Snake Plant", Description: "Low-maintenance air purifier", Price: 1499, Category: "plants", InStock: true, Rating: 4.9},
		{ID: "p-pothos", Name: "Golden Pothos", Description: "Trailing vine, thrives anywhere", Price: 999, Category: "plants", InStock: true, Rating: 4.7},
		{ID: "p-ceramic", Name: "Ceramic Planter", Description: "Matte white, 20cm", Price: 1899, Category: "accessories", InStock: true, Rating: 4.3},
		{ID: "p-mister", Name: "Brass Plant Mister", Description: "300ml, fine spray", Price: 1299, Category: "accessories", InStock: false, Rating: 4.1},
	}
}

func seedBookings() []booking.Booking {
	return []booking.Booking{
		{
			BookingNumber: "BK-1001",
			Status:        booking.StatusConfirmed,
			ScheduledTime: time.Now().Add(72 * time.Hour).UTC(),
			Duration:      time.Hour,
			Service:       "Plant Care Consultation",
			Provider:      "Green Thumb Co",
			Price:         4500,
		},
		{
			BookingNumber: "BK-1002",
			Status:        booking.StatusCompleted,
			ScheduledTime: time.Now().Add(-7 * 24 * time.Hour).UTC(),
			Duration:      2 * time.Hour,
			Service:       "Repotting Service",
			Provider:      "Green Thumb Co",
			Price:         7500,
		},
	}
}

// Helpers below assume s.mu is held.

func (s *memoryState) productByID(id string) *product.Product {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i]
		}
	}
	return nil
}

func (s *memoryState) bookingByNumber(number string) *booking.Booking {
	for i := range s.bookings {
		if s.bookings[i].BookingNumber == number {
			return &s.bookings[i]
		}
	}
	return nil
}

func (s *memoryState) cartCopy() []cart.LineItem {
	return append([]cart.LineItem(nil), s.cart...)
}

func (s *memoryState) addressCopy() []address.Address {
	return append([]address.Address(nil), s.addresses...)
}

func (s *memoryState) wishlistCopy() []wishlist.Item {
	return append([]wishlist.Item(nil), s.wishlist...)
}

func (s *memoryState) addToCart(productID string, quantity int) (*cart.LineItem, bool) {
	p := s.productByID(productID)
	if p == nil || !p.InStock {
		return nil, false
	}
	for i := range s.cart {
		if s.cart[i].ProductID == productID {
			s.cart[i].Quantity += quantity
			return &s.cart[i], true
		}
	}
	line := cart.LineItem{
		ID:          "line-" + uuid.NewString(),
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Quantity:    quantity,
	}
	s.cart = append(s.cart, line)
	return &s.cart[len(s.cart)-1], true
}

func (s *memoryState) newAddressID() string {
	s.nextAddressID++
	return "addr-" + strconv.Itoa(s.nextAddressID)
}

func (s *memoryState) newOrderNumber(now time.Time) string {
	s.nextOrderSeq++
	return "ORD-" + now.Format("2006") + "-" + strconv.Itoa(1000+s.nextOrderSeq)
}
