package api

import (
	"time"

	"github.com/swippe/quickcommerce/internal/domain/catalogModel"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

// JobResponse is the polled status of any async job.
type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	ChatId    string            `json:"chat_id,omitempty" example:"chat_550"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

// AssistantResponse is the finished chat answer plus the products that
// grounded it.
type AssistantResponse struct {
	Question string                      `json:"question"`
	Answer   string                      `json:"answer"`
	Products []catalogModel.ProductMatch `json:"products,omitempty"`
}

type Result struct {
	Status            string             `json:"status"`
	AssistantResponse *AssistantResponse `json:"assistant_response,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	ChatId    string `json:"chat_id,omitempty"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
	ChatID  string `json:"chatID,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type UserSummary struct {
	Id        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type CheckoutItem struct {
	ProductId int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required"`
}

type CheckoutRequest struct {
	Items                []CheckoutItem `json:"items" validate:"required"`
	DeliveryInstructions string         `json:"delivery_instructions,omitempty"`
	PaymentMethod        string         `json:"payment_method,omitempty"`
	AddressLabel         string         `json:"address_label,omitempty"`
	DeliverySlotMinutes  int            `json:"delivery_slot_minutes,omitempty"`
}

type AddressRequest struct {
	Name      string  `json:"name" validate:"required"`
	Phone     string  `json:"phone,omitempty"`
	Line1     string  `json:"address_line1" validate:"required"`
	Line2     string  `json:"address_line2,omitempty"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Pincode   string  `json:"pincode,omitempty"`
	Landmark  string  `json:"landmark,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	IsDefault bool    `json:"is_default,omitempty"`
}

type RoutineCreateRequest struct {
	ProductId          int64  `json:"product_id" validate:"required"`
	Quantity           int    `json:"quantity" validate:"required"`
	Frequency          string `json:"frequency" validate:"required"`
	DeliveryDay        string `json:"delivery_day,omitempty"`
	DeliveryTime       string `json:"delivery_time,omitempty"`
	CustomIntervalDays int    `json:"custom_interval_days,omitempty"`
	AutoOrder          *bool  `json:"auto_order,omitempty"`
	MaxOrders          int    `json:"max_orders,omitempty"`
	LockPrice          bool   `json:"lock_price,omitempty"`
	Notification       *bool  `json:"notification_enabled,omitempty"`
	SkipHolidays       *bool  `json:"skip_holidays,omitempty"`
	StartDate          string `json:"start_date,omitempty"`
	EndDate            string `json:"end_date,omitempty"`
}

// RoutineUpdateRequest uses pointers so absent fields stay untouched.
type RoutineUpdateRequest struct {
	Quantity           *int    `json:"quantity,omitempty"`
	Frequency          *string `json:"frequency,omitempty"`
	DeliveryDay        *string `json:"delivery_day,omitempty"`
	DeliveryTime       *string `json:"delivery_time,omitempty"`
	CustomIntervalDays *int    `json:"custom_interval_days,omitempty"`
	AutoOrder          *bool   `json:"auto_order,omitempty"`
	MaxOrders          *int    `json:"max_orders,omitempty"`
	Notification       *bool   `json:"notification_enabled,omitempty"`
	SkipHolidays       *bool   `json:"skip_holidays,omitempty"`
	EndDate            *string `json:"end_date,omitempty"`
}

type PriceLockRequest struct {
	Lock bool `json:"lock"`
}

type SemanticSearchRequest struct {
	Query string `json:"query" validate:"required"`
}
