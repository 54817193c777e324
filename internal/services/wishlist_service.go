package services

import (
	"context"
	"errors"
	"strings"

	"SareeStoreAPI/internal/model"
	"SareeStoreAPI/internal/repository"

	"github.com/google/uuid"
)

type WishlistStore interface {
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.WishlistItem, error)
	Add(ctx context.Context, customerID, productID uuid.UUID) (*model.WishlistItem, error)
	Remove(ctx context.Context, customerID, productID uuid.UUID) error
}

// WishlistService keys wishlists by the signed-in user's email, which maps
// onto the same customer rows checkout uses.
type WishlistService struct {
	Items     WishlistStore
	Customers CustomerProvider
	Products  ProductProvider
}

func NewWishlistService(w WishlistStore, c CustomerProvider, p ProductProvider) *WishlistService {
	return &WishlistService{Items: w, Customers: c, Products: p}
}

func (s *WishlistService) customerFor(ctx context.Context, email string) (*model.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	c, err := s.Customers.GetByEmail(ctx, email)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	c = &model.Customer{Email: email}
	err = s.Customers.Create(ctx, c)
	if errors.Is(err, repository.ErrDuplicate) {
		// created concurrently
		return s.Customers.GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List never creates a customer; an unknown email has an empty wishlist.
func (s *WishlistService) List(ctx context.Context, email string) ([]model.WishlistItem, error) {
	c, err := s.Customers.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrNotFound) {
		return []model.WishlistItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.Items.ListByCustomer(ctx, c.CustomerID)
}

func (s *WishlistService) Add(ctx context.Context, email string, productID uuid.UUID) (*model.WishlistItem, error) {
	if productID == uuid.Nil {
		return nil, invalid("productId", "productId is required")
	}
	p, err := s.Products.GetByID(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	c, err := s.customerFor(ctx, email)
	if err != nil {
		return nil, err
	}
	item, err := s.Items.Add(ctx, c.CustomerID, productID)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrAlreadyInWishlist
	}
	if err != nil {
		return nil, err
	}
	item.Product = p
	return item, nil
}

// Remove is idempotent: removing something that is not there succeeds.
func (s *WishlistService) Remove(ctx context.Context, email string, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return invalid("productId", "productId is required")
	}
	c, err := s.Customers.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.Items.Remove(ctx, c.CustomerID, productID)
}
