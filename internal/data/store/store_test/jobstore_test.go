package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/data/redisStore"
	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/jobModel"
)

func TestRedisJobStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	jobStore := store.TestJobStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	jobID := "job_abc_123"

	testJob := jobModel.Job{
		Id:      jobID,
		Status:  jobModel.JobStatusRunning,
		JobType: jobModel.JobTypeQuery,
		JobPayload: jobModel.JobPayload{
			Question: "is there any atta on discount?",
		},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		if err := jobStore.SaveJob(ctx, testJob); err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		retrievedJob, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Job was saved but not found in Redis")
		}
		if retrievedJob.JobPayload.Question != testJob.JobPayload.Question {
			t.Errorf("Data mismatch! Got %s, want %s",
				retrievedJob.JobPayload.Question, testJob.JobPayload.Question)
		}
	})

	t.Run("Invoice payload survives the roundtrip", func(t *testing.T) {
		invoiceJob := jobModel.Job{
			Id:      "invoice-1",
			JobType: jobModel.JobTypeInvoice,
			JobPayload: jobModel.JobPayload{
				InvoiceUserId:   42,
				InvoiceEmail:    "shopper@example.com",
				InvoiceOrderIds: []int64{7, 8, 9},
			},
		}
		if err := jobStore.SaveJob(ctx, invoiceJob); err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}
		got, found := jobStore.GetJob(ctx, "invoice-1")
		if !found {
			t.Fatal("Invoice job not found")
		}
		if got.JobPayload.InvoiceEmail != "shopper@example.com" || len(got.JobPayload.InvoiceOrderIds) != 3 {
			t.Errorf("Invoice payload mismatch: %+v", got.JobPayload)
		}
	})

	t.Run("Get Non-Existent Job", func(t *testing.T) {
		if _, found := jobStore.GetJob(ctx, "ghost-id"); found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Delete Job", func(t *testing.T) {
		jobStore.DeleteJob(ctx, jobID)

		if mr.Exists(jobID) {
			t.Error("Job still exists in Redis after DeleteJob call")
		}
	})
}

func TestRedisMessageStore_History(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	messageStore := store.TestMessageStore(redisStore.NewTestStore(client))

	ctx := context.Background()
	chatId := "chat-1"

	if err := messageStore.InitNewChat(ctx, chatId); err != nil {
		t.Fatalf("InitNewChat failed: %v", err)
	}
	if !messageStore.ValidateChatId(ctx, chatId) {
		t.Fatal("Chat id should validate after init")
	}
	if messageStore.ValidateChatId(ctx, "unknown-chat") {
		t.Error("Unknown chat id should not validate")
	}

	// init leaves a single marker entry in the list
	initial, err := messageStore.GetMessageHistory(ctx, chatId)
	if err != nil {
		t.Fatalf("GetMessageHistory failed: %v", err)
	}

	payload := jobModel.JobPayload{Question: "cheapest dal?", Answer: "Toor Dal at ₹95"}
	if err := messageStore.TrySaveChat(ctx, chatId, payload); err != nil {
		t.Fatalf("TrySaveChat failed: %v", err)
	}

	history, err := messageStore.GetMessageHistory(ctx, chatId)
	if err != nil {
		t.Fatalf("GetMessageHistory failed: %v", err)
	}
	if len(history) != len(initial)+1 {
		t.Fatalf("Expected %d history entries, got %d", len(initial)+1, len(history))
	}

	if err := messageStore.TrySaveChat(ctx, "never-inited", payload); err == nil {
		t.Error("TrySaveChat on an unknown chat should fail")
	}

	if err := messageStore.ResetChat(ctx, chatId); err != nil {
		t.Fatalf("ResetChat failed: %v", err)
	}
	history, err = messageStore.GetMessageHistory(ctx, chatId)
	if err != nil {
		t.Fatalf("GetMessageHistory after reset failed: %v", err)
	}
	if len(history) != len(initial) {
		t.Errorf("Expected history back to %d entries after reset, got %d", len(initial), len(history))
	}
}
