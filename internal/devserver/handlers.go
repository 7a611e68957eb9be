// internal/devserver/handlers.go
package devserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-client/internal/domain/address"
	"github.com/your-org/storefront-client/internal/domain/booking"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/domain/order"
	"github.com/your-org/storefront-client/internal/domain/pricing"
	"github.com/your-org/storefront-client/internal/domain/product"
	"github.com/your-org/storefront-client/internal/domain/wishlist"
)

// Product handlers

func (s *Server) listProducts(c *gin.Context) {
	search := strings.ToLower(c.Query("search"))
	category := c.Query("category")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	matched := make([]product.Product, 0, len(s.state.products))
	for _, p := range s.state.products {
		if category != "" && p.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		matched = append(matched, p)
		if limit > 0 && len(matched) >= limit {
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"products": matched})
}

func (s *Server) getProduct(c *gin.Context) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	p := s.state.productByID(c.Param("id"))
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

// Cart handlers

type addCartItemPayload struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type updateCartItemPayload struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func (s *Server) getCart(c *gin.Context) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"items": s.state.cartCopy()})
}

func (s *Server) addCartItem(c *gin.Context) {
	var payload addCartItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid cart payload"})
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if _, ok := s.state.addToCart(payload.ProductID, payload.Quantity); !ok {
		c.JSON(http.StatusConflict, gin.H{"message": "Out of stock"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": s.state.cartCopy()})
}

func (s *Server) updateCartItem(c *gin.Context) {
	var payload updateCartItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid cart payload"})
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	lineID := c.Param("id")
	for i := range s.state.cart {
		if s.state.cart[i].ID == lineID {
			s.state.cart[i].Quantity = payload.Quantity
			c.JSON(http.StatusOK, gin.H{"items": s.state.cartCopy()})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "item not found in cart"})
}

func (s *Server) removeCartItem(c *gin.Context) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	lineID := c.Param("id")
	for i := range s.state.cart {
		if s.state.cart[i].ID == lineID {
			s.state.cart = append(s.state.cart[:i], s.state.cart[i+1:]...)
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"items": s.state.cartCopy()})
}

// Address handlers

func (s *Server) listAddresses(c *gin.Context) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"addresses": s.state.addressCopy()})
}

func (s *Server) getAddress(c *gin.Context) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	id := c.Param("id")
	for _, a := range s.state.addresses {
		if a.ID == id {
			c.JSON(http.StatusOK, gin.H{"address": a})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "address not found"})
}

func (s *Server) createAddress(c *gin.Context) {
	var form address.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid address payload"})
		return
	}
	if result := form.Validate(); !result.OK {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "address validation failed", "fields": result.Fields})
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	addr := addressFromForm(form)
	addr.ID = s.state.newAddressID()
	if len(s.state.addresses) == 0 {
		addr.IsDefault = true
	}
	if addr.IsDefault {
		for i := range s.state.addresses {
			s.state.addresses[i].IsDefault = false
		}
	}
	s.state.addresses = append(s.state.addresses, addr)
	c.JSON(http.StatusCreated, gin.H{"address": addr})
}

func (s *Server) updateAddress(c *gin.Context) {
	var form address.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid address payload"})
		return
	}
	if result := form.Validate(); !result.OK {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "address validation failed", "fields": result.Fields})
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	id := c.Param("id")
	for i := range s.state.addresses {
		if s.state.addresses[i].ID != id {
			continue
		}
		updated := addressFromForm(form)
		updated.ID = id
		if updated.IsDefault {
			for j := range s.state.addresses {
				s.state.addresses[j].IsDefault = false
			}
		} else if s.state.addresses[i].IsDefault {
			// The only default cannot be silently dropped.
			updated.IsDefault = true
		}
		s.state.addresses[i] = updated
		c.JSON(http.StatusOK, gin.H{"address": updated})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "address not found"})
}

func (s *Server) deleteAddress(c *gin.Context) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	id := c.Param("id")
	for i := range s.state.addresses {
		if s.state.addresses[i].ID == id {
			wasDefault := s.state.addresses[i].IsDefault
			s.state.addresses = append(s.state.addresses[:i], s.state.addresses[i+1:]...)
			if wasDefault && len(s.state.addresses) > 0 {
				s.state.addresses[0].IsDefault = true
			}
			c.JSON(http.StatusOK, gin.H{"message": "address deleted"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "address not found"})
}

func (s *Server) setDefaultAddress(c *gin.Context) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	id := c.Param("id")
	found := false
	for i := range s.state.addresses {
		s.state.addresses[i].IsDefault = s.state.addresses[i].ID == id
		if s.state.addresses[i].IsDefault {
			found = true
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "address not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": s.state.addressCopy()})
}

func addressFromForm(form address.Form) address.Address {
	return address.Address{
		Name:        form.Name,
		Phone:       form.Phone,
		Email:       form.Email,
		FullAddress: form.FullAddress,
		City:        form.City,
		Province:    form.Province,
		Country:     form.Country,
		PostalCode:  form.PostalCode,
		Label:       form.Label,
		IsDefault:   form.IsDefault,
	}
}

// Order handlers

func (s *Server) createOrder(c *gin.Context) {
	var req checkout.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order payload"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "cannot place an empty order"})
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	now := time.Now().UTC()
	confirmed := checkout.Order{
		OrderNumber: s.state.newOrderNumber(now),
		Status:      string(order.StatusPending),
		Total:       req.Pricing.Total,
		CreatedAt:   now,
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, order.Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}
	s.state.orders = append([]order.Order{{
		OrderNumber:  confirmed.OrderNumber,
		Status:       order.StatusPending,
		Items:        items,
		Subtotal:     req.Pricing.Subtotal,
		Discount:     req.Pricing.Discount,
		ShippingCost: req.Pricing.ShippingCost,
		Tax:          req.Pricing.Tax,
		Total:        req.Pricing.Total,
		Currency:     s.currency,
		CreatedAt:    now,
	}}, s.state.orders...)

	// Order creation consumes the cart.
	s.state.cart = nil

	c.JSON(http.StatusCreated, gin.H{"order": confirmed})
}

func (s *Server) listOrders(c *gin.Context) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"orders": append([]order.Order(nil), s.state.orders...)})
}

func (s *Server) getOrder(c *gin.Context) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	number := c.Param("number")
	for _, o := range s.state.orders {
		if o.OrderNumber == number {
			c.JSON(http.StatusOK, gin.H{"order": o})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
}

func (s *Server) cancelOrder(c *gin.Context) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	number := c.Param("number")
	for i := range s.state.orders {
		if s.state.orders[i].OrderNumber != number {
			continue
		}
		if !s.state.orders[i].CanBeCancelled() {
			c.JSON(http.StatusConflict, gin.H{"message": "order can no longer be cancelled"})
			return
		}
		s.state.orders[i].Status = order.StatusCancelled
		c.JSON(http.StatusOK, gin.H{"order": s.state.orders[i]})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
}

// Promo handlers

type promoValidatePayload struct {
	Code string `json:"code" binding:"required"`
}

func (s *Server) validatePromo(c *gin.Context) {
	var payload promoValidatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid promo payload"})
		return
	}

	s.state.mu.Lock()
	result, ok := s.state.promos[strings.ToUpper(payload.Code)]
	s.state.mu.Unlock()

	if !ok {
		c.JSON(http.StatusOK, pricing.PromoResult{Code: payload.Code, Valid: false, Message: "promo code not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Wishlist handlers

type addWishlistPayload struct {
	ProductID string `json:"product_id" binding:"required"`
}

func (s *Server) getWishlist(c *gin.Context) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"items": s.state.wishlistCopy()})
}

func (s *Server) addWishlistItem(c *gin.Context) {
	var payload addWishlistPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid wishlist payload"})
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	p := s.state.productByID(payload.ProductID)
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}
	for _, item := range s.state.wishlist {
		if item.ProductID == payload.ProductID {
			c.JSON(http.StatusOK, gin.H{"items": s.state.wishlistCopy()})
			return
		}
	}
	s.state.wishlist = append(s.state.wishlist, wishlist.Item{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Price:     p.Price,
		AddedAt:   time.Now().UTC(),
	})
	c.JSON(http.StatusOK, gin.H{"items": s.state.wishlistCopy()})
}

func (s *Server) removeWishlistItem(c *gin.Context) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	productID := c.Param("id")
	for i := range s.state.wishlist {
		if s.state.wishlist[i].ProductID == productID {
			s.state.wishlist = append(s.state.wishlist[:i], s.state.wishlist[i+1:]...)
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"items": s.state.wishlistCopy()})
}

// Booking handlers

type cancelBookingPayload struct {
	Reason string `json:"reason"`
}

type rescheduleBookingPayload struct {
	ScheduledTime time.Time `json:"scheduled_time" binding:"required"`
}

func (s *Server) listBookings(c *gin.Context) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"bookings": append([]booking.Booking(nil), s.state.bookings...)})
}

func (s *Server) getBooking(c *gin.Context) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if b := s.state.bookingByNumber(c.Param("number")); b != nil {
		c.JSON(http.StatusOK, gin.H{"booking": b})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "booking not found"})
}

func (s *Server) cancelBooking(c *gin.Context) {
	var payload cancelBookingPayload
	_ = c.ShouldBindJSON(&payload)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	b := s.state.bookingByNumber(c.Param("number"))
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "booking not found"})
		return
	}
	if !b.CanBeCancelled() {
		c.JSON(http.StatusConflict, gin.H{"message": "booking can no longer be cancelled"})
		return
	}
	b.Status = booking.StatusCancelled
	b.Cancellation = &booking.Cancellation{
		Reason:      payload.Reason,
		CancelledBy: "customer",
		CancelledAt: time.Now().UTC(),
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

func (s *Server) rescheduleBooking(c *gin.Context) {
	var payload rescheduleBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid reschedule payload"})
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	b := s.state.bookingByNumber(c.Param("number"))
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "booking not found"})
		return
	}
	if !b.CanBeRescheduled() {
		c.JSON(http.StatusConflict, gin.H{"message": "booking can no longer be rescheduled"})
		return
	}
	b.ScheduledTime = payload.ScheduledTime.UTC()
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// Analytics handler

type eventsPayload struct {
	Events []map[string]any `json:"events"`
}

func (s *Server) acceptEvents(c *gin.Context) {
	var payload eventsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid events payload"})
		return
	}
	s.logger.WithField("count", len(payload.Events)).Debug("analytics events received")
	c.JSON(http.StatusAccepted, gin.H{"accepted": len(payload.Events)})
}
