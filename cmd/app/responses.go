package main

import (
	"time"

	"SareeStoreAPI/internal/model"

	"github.com/google/uuid"
)

// Store rows are snake_case; everything the API returns is camelCase.

type productResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   *string    `json:"description"`
	Price         float64    `json:"price"`
	Category      string     `json:"category"`
	Images        []string   `json:"images"`
	StockQuantity int        `json:"stockQuantity"`
	InStock       bool       `json:"inStock"`
	SKU           *string    `json:"sku"`
	Material      *string    `json:"material"`
	Color         *string    `json:"color"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

func toProductResponse(p model.Product) productResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return productResponse{
		ID:            p.ProductID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Category:      p.Category,
		Images:        images,
		StockQuantity: p.StockQuantity,
		InStock:       p.InStock,
		SKU:           p.SKU,
		Material:      p.Material,
		Color:         p.Color,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductResponses(list []model.Product) []productResponse {
	out := make([]productResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out
}

type orderResponse struct {
	ID                uuid.UUID  `json:"id"`
	OrderNumber       string     `json:"orderNumber"`
	CustomerID        uuid.UUID  `json:"customerId"`
	ShippingAddressID uuid.UUID  `json:"shippingAddressId"`
	Subtotal          float64    `json:"subtotal"`
	ShippingCost      float64    `json:"shippingCost"`
	TotalAmount       float64    `json:"totalAmount"`
	Status            string     `json:"status"`
	PaymentStatus     string     `json:"paymentStatus"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
}

func toOrderResponse(o model.Order) orderResponse {
	return orderResponse{
		ID:                o.OrderID,
		OrderNumber:       o.OrderNumber,
		CustomerID:        o.CustomerID,
		ShippingAddressID: o.ShippingAddressID,
		Subtotal:          o.Subtotal,
		ShippingCost:      o.ShippingCost,
		TotalAmount:       o.TotalAmount,
		Status:            o.Status,
		PaymentStatus:     o.PaymentStatus,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func toOrderResponses(list []model.Order) []orderResponse {
	out := make([]orderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out
}

type customerResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  *string    `json:"fullName"`
	Phone     *string    `json:"phone"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

func toCustomerResponse(c model.Customer) customerResponse {
	return customerResponse{
		ID:        c.CustomerID,
		Email:     c.Email,
		FullName:  c.FullName,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

type addressResponse struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"fullName"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"addressLine1"`
	AddressLine2 *string   `json:"addressLine2"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postalCode"`
	Country      string    `json:"country"`
}

type orderItemResponse struct {
	ID         uuid.UUID        `json:"id"`
	ProductID  uuid.UUID        `json:"productId"`
	Quantity   int              `json:"quantity"`
	UnitPrice  float64          `json:"unitPrice"`
	TotalPrice float64          `json:"totalPrice"`
	Product    *productResponse `json:"product"`
}

type orderDetailResponse struct {
	orderResponse
	Customer        customerResponse    `json:"customer"`
	ShippingAddress addressResponse     `json:"shippingAddress"`
	Items           []orderItemResponse `json:"items"`
}

func toOrderDetailResponse(d *model.OrderDetail) orderDetailResponse {
	items := make([]orderItemResponse, 0, len(d.Items))
	for _, it := range d.Items {
		ir := orderItemResponse{
			ID:         it.OrderItemID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		}
		if it.Product != nil {
			pr := toProductResponse(*it.Product)
			ir.Product = &pr
		}
		items = append(items, ir)
	}
	a := d.Address
	return orderDetailResponse{
		orderResponse: toOrderResponse(d.Order),
		Customer:      toCustomerResponse(d.Customer),
		ShippingAddress: addressResponse{
			ID:           a.AddressID,
			FullName:     a.FullName,
			Phone:        a.Phone,
			AddressLine1: a.AddressLine1,
			AddressLine2: a.AddressLine2,
			City:         a.City,
			State:        a.State,
			PostalCode:   a.PostalCode,
			Country:      a.Country,
		},
		Items: items,
	}
}

type wishlistItemResponse struct {
	ID        uuid.UUID        `json:"id"`
	ProductID uuid.UUID        `json:"productId"`
	Product   *productResponse `json:"product"`
	CreatedAt *time.Time       `json:"createdAt,omitempty"`
}

func toWishlistItemResponse(w model.WishlistItem) wishlistItemResponse {
	r := wishlistItemResponse{ID: w.WishlistItemID, ProductID: w.ProductID, CreatedAt: w.CreatedAt}
	if w.Product != nil {
		pr := toProductResponse(*w.Product)
		r.Product = &pr
	}
	return r
}

type contactResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone"`
	Subject   *string    `json:"subject"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"isRead"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

func toContactResponse(m model.ContactMessage) contactResponse {
	return contactResponse{
		ID:        m.MessageID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Subject:   m.Subject,
		Message:   m.Message,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

type userResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  *string    `json:"fullName"`
	IsAdmin   bool       `json:"isAdmin"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{ID: u.UserID, Email: u.Email, FullName: u.FullName, IsAdmin: u.IsAdmin, CreatedAt: u.CreatedAt}
}

type dashboardResponse struct {
	TotalProducts  int64   `json:"totalProducts"`
	TotalOrders    int64   `json:"totalOrders"`
	PendingOrders  int64   `json:"pendingOrders"`
	TotalCustomers int64   `json:"totalCustomers"`
	UnreadMessages int64   `json:"unreadMessages"`
	Revenue        float64 `json:"revenue"`
}
