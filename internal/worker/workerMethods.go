package worker

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/swippe/quickcommerce/internal/config"
	jobmodel "github.com/swippe/quickcommerce/internal/domain/jobModel"
	"github.com/swippe/quickcommerce/internal/metrics"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, 60*time.Second)
	defer cancel()
	logger.With("traceId", job.TraceId)
	logger.Debug("Processing job", "jobId", job.Id, "jobType", job.JobType)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	switch job.JobType {
	case jobmodel.JobTypeIngest:
		job.CurrentStep = jobmodel.IngestProcessing
		job = _ragService.IngestCatalog(ctx, job)

	case jobmodel.JobTypeInvoice:
		job = sendInvoice(ctx, job, logger)

	default:
		job.CurrentStep = jobmodel.RedisCall
		job = processQuery(ctx, job, logger)
		if job.Status != jobmodel.JobStatusError {
			if err := _jobService.MessageStore.TrySaveChat(ctx, job.ChatId, job.JobPayload); err != nil {
				logger.Error("Failed to save chat history", "err", err)
			}
		}
	}

	job.EndTime = time.Now()
	if job.Status == jobmodel.JobStatusError {
		saveJobState(ctx, job, jobmodel.JobStatusError)
		return
	}
	saveJobState(ctx, job, jobmodel.JobStatusComplete)
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()
}

func processQuery(ctx context.Context, job jobmodel.Job, logger *logger_i.Logger) jobmodel.Job {
	messageHistory, err := _jobService.MessageStore.GetMessageHistory(ctx, job.ChatId)
	if err != nil {
		logger.Error("Failed to get message history", "err", err)
	}
	return _ragService.ProcessRequest(ctx, job, messageHistory)
}

func sendInvoice(ctx context.Context, job jobmodel.Job, logger *logger_i.Logger) jobmodel.Job {
	job.CurrentStep = jobmodel.InvoiceSending
	err := _invoiceService.SendInvoice(ctx, job.JobPayload.InvoiceUserId, job.JobPayload.InvoiceEmail, job.JobPayload.InvoiceOrderIds)
	if err != nil {
		logger.Error("Invoice job failed", "jobId", job.Id, "err", err)
		metrics.CountInvoiceSent("error")
		job.Status = jobmodel.JobStatusError
		job.Error = jobmodel.JobError{
			Code:    http.StatusInternalServerError,
			Message: "Invoice delivery failed",
			Retry:   true,
		}
		return job
	}
	metrics.CountInvoiceSent("sent")
	job.CurrentStep = jobmodel.Complete
	return job
}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update job status", "err", err)
	}
}
