package commerceModel

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	Id           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

type Order struct {
	Id                   int64       `json:"id"`
	UserId               int64       `json:"user_id"`
	ProductId            int64       `json:"product_id"`
	Quantity             int         `json:"quantity"`
	TotalPrice           float64     `json:"total_price"`
	Status               OrderStatus `json:"status"`
	OrderedAt            time.Time   `json:"ordered_at"`
	DeliveryInstructions string      `json:"delivery_instructions,omitempty"`
	PaymentMethod        string      `json:"payment_method,omitempty"`
	AddressLabel         string      `json:"address_label,omitempty"`
	DeliverySlotMinutes  int         `json:"delivery_slot_minutes,omitempty"`

	// joined product fields, populated on reads
	ProductName string  `json:"product_name,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Category    string  `json:"category,omitempty"`
	SalePrice   float64 `json:"sale_price,omitempty"`
	MarketPrice float64 `json:"-"`
	UserEmail   string  `json:"user_email,omitempty"`
}

type Address struct {
	Id        int64   `json:"id"`
	UserId    int64   `json:"user_id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Line1     string  `json:"address_line1"`
	Line2     string  `json:"address_line2,omitempty"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Pincode   string  `json:"pincode"`
	Landmark  string  `json:"landmark,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	IsDefault bool    `json:"is_default"`
}
