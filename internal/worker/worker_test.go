package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/data/sqliteStore"
	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/catalogModel"
	"github.com/swippe/quickcommerce/internal/domain/jobModel"
	"github.com/swippe/quickcommerce/internal/invoice"
	"github.com/swippe/quickcommerce/internal/job"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

// MockRagService to track if jobs are executed
type MockRagService struct {
	ProcessedCount int32
}

func (m *MockRagService) ProcessRequest(ctx context.Context, j jobModel.Job, hist []string) jobModel.Job {
	atomic.AddInt32(&m.ProcessedCount, 1)
	return j
}

func (m *MockRagService) IngestCatalog(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.ProcessedCount, 1)
	return j
}

func (m *MockRagService) SemanticSearch(ctx context.Context, query string) ([]catalogModel.ProductMatch, error) {
	return nil, nil
}

type MockJobStore struct {
	OnSaveJob func(ctx context.Context, job jobModel.Job) error
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	return jobModel.Job{}, false
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	if m.OnSaveJob != nil {
		return m.OnSaveJob(ctx, j)
	}
	return nil
}

// MockMessageStore handles chat history
type MockMessageStore struct {
	OnGetHistory func(ctx context.Context, chatId string) ([]string, error)
	OnSaveChat   func(ctx context.Context, chatId string, payload jobModel.JobPayload) error
}

func (m *MockMessageStore) ValidateChatId(ctx context.Context, id string) bool {
	return true
}

func (m *MockMessageStore) InitNewChat(ctx context.Context, id string) error {
	return nil
}

func (m *MockMessageStore) ResetChat(ctx context.Context, id string) error {
	return nil
}

func (m *MockMessageStore) GetMessageHistory(ctx context.Context, id string) ([]string, error) {
	if m.OnGetHistory != nil {
		return m.OnGetHistory(ctx, id)
	}
	return []string{}, nil
}
func (m *MockMessageStore) TrySaveChat(ctx context.Context, id string, p jobModel.JobPayload) error {
	if m.OnSaveChat != nil {
		return m.OnSaveChat(ctx, id, p)
	}
	return nil
}

func TestWorkerPool_Flow(t *testing.T) {
	// 1. Setup
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          &MockJobStore{},
		MessageStore:      &MockMessageStore{},
	}
	mockRag := &MockRagService{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockRag, nil)
	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		// Signal dispatcher to create a worker
		jobSvc.DispatcherChannel <- true

		// Give it a millisecond to spawn
		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker processes a job", func(t *testing.T) {
		testJob := jobModel.Job{Id: "test-1", JobType: jobModel.JobTypeQuery}
		jobSvc.JobChannel <- testJob

		// Wait for worker to pick up and process
		time.Sleep(50 * time.Millisecond)

		processed := atomic.LoadInt32(&mockRag.ProcessedCount)
		if processed != 1 {
			t.Errorf("Expected 1 job processed, got %d", processed)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		// Send stop signal
		close(stopChan)

		// Wait for workers to exit
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_IdleTimeout(t *testing.T) {
	// Temporarily override config/globals for test
	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 0)
	logger = logger_i.NewLogger("TestWorkerPool")
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
	}
	InitServices(jobSvc, &MockRagService{}, nil)

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	// Spawn 1 worker manually
	createWorker()
	time.Sleep(config.IdleWorkerTimeout)

	time.Sleep(100 * time.Millisecond)
	count := atomic.LoadInt64(&currentWorkerCount)
	if count != 0 {
		t.Errorf("Assertion Failed: Worker should have timed out and retired, but count is %d", count)
	}
}

func TestExecuteJob_Invoice(t *testing.T) {
	db, err := sqliteStore.NewTestDB(context.Background())
	if err != nil {
		t.Fatalf("could not open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	orders := store.GetOrderStore(db)
	userId, err := store.GetUserStore(db).CreateUser(context.Background(), "buyer@example.com", "hash")
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	err = store.GetProductStore(db).BulkInsert(context.Background(), []catalogModel.Product{
		{Id: 1, Name: "Basmati Rice", Category: "Staples", Brand: "Daawat", SalePrice: 120, MarketPrice: 150},
	})
	if err != nil {
		t.Fatalf("seeding products: %v", err)
	}
	ids, err := orders.CreateOrders(context.Background(), userId, []store.OrderLine{{ProductId: 1, Quantity: 1, TotalPrice: 120}})
	if err != nil {
		t.Fatalf("CreateOrders failed: %v", err)
	}

	var savedStatuses []jobModel.JobStatus
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 1),
		DispatcherChannel: make(chan bool, 1),
		JobStore: &MockJobStore{OnSaveJob: func(ctx context.Context, j jobModel.Job) error {
			savedStatuses = append(savedStatuses, j.Status)
			return nil
		}},
		MessageStore: &MockMessageStore{},
	}
	// mailer stays disabled so the send is a logged no-op
	invoiceSvc := invoice.NewService(orders, invoice.NewMailer(invoice.MailerConfig{Enabled: false}))
	logger = logger_i.NewLogger("TestWorkerPool")
	InitServices(jobSvc, &MockRagService{}, invoiceSvc)

	executeJob(jobModel.Job{
		Id:      "invoice-1",
		JobType: jobModel.JobTypeInvoice,
		JobPayload: jobModel.JobPayload{
			InvoiceUserId:   userId,
			InvoiceEmail:    "buyer@example.com",
			InvoiceOrderIds: ids,
		},
	})

	if len(savedStatuses) != 2 {
		t.Fatalf("Expected RUNNING then COMPLETE saves, got %v", savedStatuses)
	}
	if savedStatuses[0] != jobModel.JobStatusRunning || savedStatuses[1] != jobModel.JobStatusComplete {
		t.Errorf("Unexpected status sequence: %v", savedStatuses)
	}
}

func TestExecuteJob_InvoiceMissingOrders(t *testing.T) {
	db, err := sqliteStore.NewTestDB(context.Background())
	if err != nil {
		t.Fatalf("could not open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	var lastStatus jobModel.JobStatus
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 1),
		DispatcherChannel: make(chan bool, 1),
		JobStore: &MockJobStore{OnSaveJob: func(ctx context.Context, j jobModel.Job) error {
			lastStatus = j.Status
			return nil
		}},
		MessageStore: &MockMessageStore{},
	}
	invoiceSvc := invoice.NewService(store.GetOrderStore(db), invoice.NewMailer(invoice.MailerConfig{Enabled: false}))
	logger = logger_i.NewLogger("TestWorkerPool")
	InitServices(jobSvc, &MockRagService{}, invoiceSvc)

	executeJob(jobModel.Job{
		Id:         "invoice-missing",
		JobType:    jobModel.JobTypeInvoice,
		JobPayload: jobModel.JobPayload{InvoiceUserId: 1, InvoiceEmail: "buyer@example.com", InvoiceOrderIds: []int64{99}},
	})

	if lastStatus != jobModel.JobStatusError {
		t.Errorf("Job status got %s, want error for a missing order set", lastStatus)
	}
}
