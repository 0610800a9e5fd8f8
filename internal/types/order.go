package types

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

const DefaultCountry = "United States"

type OrderItem struct {
	ProductID   uuid.UUID `json:"product_id" validate:"required"`
	ProductName string    `json:"product_name" validate:"required" example:"Wireless Mouse"`
	Quantity    int       `json:"quantity" validate:"gt=0" example:"2"`
	Price       float64   `json:"price" validate:"gte=0" example:"29.99"`
}

type AddressInfo struct {
	StreetAddress string  `json:"street_address" validate:"required" example:"1 Main St"`
	City          string  `json:"city" validate:"required" example:"Springfield"`
	State         string  `json:"state" validate:"required" example:"IL"`
	ZipCode       string  `json:"zip_code" validate:"required" example:"62701"`
	Country       string  `json:"country" example:"United States"`
	Phone         *string `json:"phone,omitempty"`
	FullName      *string `json:"full_name,omitempty"`
}

type Order struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total" example:"59.98"`
	Status          OrderStatus `json:"status" example:"pending"`
	ShippingAddress AddressInfo `json:"shipping_address"`
	CreatedAt       time.Time   `json:"created_at"`
}

type CreateOrderRequest struct {
	Items           []OrderItem `json:"items" validate:"required,min=1,dive"`
	Total           float64     `json:"total" validate:"gte=0" example:"59.98"`
	ShippingAddress AddressInfo `json:"shipping_address" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled" example:"shipped"`
}
