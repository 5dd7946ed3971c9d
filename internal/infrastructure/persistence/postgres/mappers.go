package postgres

import (
	"github.com/AdaoraUmeh/quickcart/internal/domain"
)

func toDomainProduct(m ProductModel) *domain.Product {
	return &domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Price:       domain.Money{Cents: m.PriceCents},
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toDomainOrder(m OrderModel) *domain.Order {
	return &domain.Order{
		ID:                   m.ID,
		FullName:             m.FullName,
		Email:                m.Email,
		Phone:                m.Phone,
		Address:              m.Address,
		Status:               domain.OrderStatus(m.Status),
		TransactionRef:       m.TransactionRef,
		GatewayTransactionID: m.GatewayTransactionID,
		PaymentMethod:        m.PaymentMethod,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func toDomainOrderItem(m OrderItemModel) domain.OrderItem {
	return domain.OrderItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    int(m.Quantity),
		Price:       domain.Money{Cents: m.PriceCents},
	}
}
