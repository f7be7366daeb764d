package jobModel

import (
	"context"
	"time"

	"github.com/swippe/quickcommerce/internal/domain/catalogModel"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	UserQueryInit    InternalStatus = "Init"
	CacheCall        InternalStatus = "CacheCall"
	RAGCall          InternalStatus = "RAG"
	LLMCall          InternalStatus = "LLM"
	VectorDBCall     InternalStatus = "VectorDB"
	EmbeddingAPICall InternalStatus = "EmbeddingAPI"
	RedisCall        InternalStatus = "Redis"

	IngestInit       InternalStatus = "IngestInit"
	IngestProcessing InternalStatus = "IngestProcessing"
	InvoiceInit      InternalStatus = "InvoiceInit"
	InvoiceSending   InternalStatus = "InvoiceSending"
	Error            InternalStatus = "Error"

	Complete InternalStatus = "Complete"

	JobTypeQuery   JobType = "Query"
	JobTypeIngest  JobType = "Ingest"
	JobTypeInvoice JobType = "Invoice"
)

type Job struct {
	Id          string         `json:"id"`
	ChatId      string         `json:"chat_id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

// JobPayload carries the inputs and outputs of all three job kinds.
// Query jobs use Question/Answer/Products, Ingest jobs carry nothing but
// the trigger, Invoice jobs carry the order id and recipient.
type JobPayload struct {
	Question string                      `json:"question,omitempty"`
	Answer   string                      `json:"answer,omitempty"`
	Products []catalogModel.ProductMatch `json:"products,omitempty"`

	InvoiceUserId   int64   `json:"invoice_user_id,omitempty"`
	InvoiceOrderIds []int64 `json:"invoice_order_ids,omitempty"`
	InvoiceEmail    string  `json:"invoice_email,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

// MessageStore keeps per-chat conversation history for the RAG pipeline.
type MessageStore interface {
	ValidateChatId(ctx context.Context, id string) bool
	TrySaveChat(ctx context.Context, id string, payload JobPayload) error
	InitNewChat(ctx context.Context, id string) error
	GetMessageHistory(ctx context.Context, chatId string) ([]string, error)
	ResetChat(ctx context.Context, id string) error
}
