package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/swippe/quickcommerce/internal/adapter/utils"
	"github.com/swippe/quickcommerce/internal/api"
	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/domain/jobModel"
	"github.com/swippe/quickcommerce/internal/job"
	"github.com/swippe/quickcommerce/internal/metrics"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service *job.Service
}

// newJobData is the normalized input for any of the three async job kinds.
type newJobData struct {
	id              string
	chatId          string
	message         string
	isNewChat       bool
	traceId         string
	jobType         jobModel.JobType
	invoiceUserId   int64
	invoiceEmail    string
	invoiceOrderIds []int64
}

func InitJobHandler(jobService *job.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})
}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "jobId", newJob.id)
	logJH.Info("To create new job", "jobType", newJob.jobType)
	handlerInstance.pushToJobChannel(newJob)
	if newJob.isNewChat {
		logJH.Info("Create new chat")
		handlerInstance.initNewChat(newJob.chatId, newJob.traceId)
	}
}

// EnqueueInvoiceJob queues the post-checkout invoice email; the caller gets
// its order response without waiting on SMTP.
func EnqueueInvoiceJob(traceId string, userId int64, email string, orderIds []int64) string {
	jobId := utils.GetNewUUID()
	CreateNewJob(newJobData{
		id:              jobId,
		traceId:         traceId,
		jobType:         jobModel.JobTypeInvoice,
		invoiceUserId:   userId,
		invoiceEmail:    email,
		invoiceOrderIds: orderIds,
	})
	return jobId
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

func ValidateChatRequest(chatReq api.ChatRequest) bool {
	if handlerInstance == nil {
		return false
	}
	logJH.Debug("Validating chat id", "chatId", chatReq.ChatID)
	if chatReq.Message == "" {
		return false
	}
	if chatReq.ChatID == "" {
		return true
	}
	return handlerInstance.service.MessageStore.ValidateChatId(context.Background(), chatReq.ChatID)
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {
	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.JobType = newJob.jobType

	switch newJob.jobType {
	case jobModel.JobTypeIngest:
		_job.CurrentStep = jobModel.IngestInit

	case jobModel.JobTypeInvoice:
		_job.CurrentStep = jobModel.InvoiceInit
		_job.JobPayload.InvoiceUserId = newJob.invoiceUserId
		_job.JobPayload.InvoiceEmail = newJob.invoiceEmail
		_job.JobPayload.InvoiceOrderIds = newJob.invoiceOrderIds

	default:
		_job.ChatId = newJob.chatId
		_job.JobPayload.Question = newJob.message
		_job.CurrentStep = jobModel.UserQueryInit
	}

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //blocking send so the system never takes more than it can hold
	logJH.Info("Created new job")

	//a new worker is signaled every N requests, and always for a catalog
	//reindex since that batch work would starve chat jobs on one worker
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || _job.JobType == jobModel.JobTypeIngest {
		metrics.StartDispatcherSignalCount()
		logJH.Debug("Dispatcher signal", "requestCount", accurateCount)
		h.service.DispatcherChannel <- true
	}
}

func (h *JobHandler) initNewChat(chatId string, traceId string) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if err := h.service.MessageStore.InitNewChat(ctxC, chatId); err != nil {
		logJH.Error("Error initiating new chat", "chatId", chatId, "error", err)
	}
}

func resetChat(ctx context.Context, chatId string) error {
	return handlerInstance.service.MessageStore.ResetChat(ctx, chatId)
}
