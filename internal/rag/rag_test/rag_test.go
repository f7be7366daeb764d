package rag_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/domain/catalogModel"
	"github.com/swippe/quickcommerce/internal/domain/jobModel"
	"github.com/swippe/quickcommerce/internal/rag"
)

func TestProcessRequest_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, v *MockVectorDB, l *MockLLM)
		expectedStep   jobModel.InternalStatus
		expectedStatus jobModel.JobStatus
		expectedAnswer string
		expectError    bool
	}{
		{
			name: "Success_Full_Flow",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, pc []string, h []string) (string, error) {
					return "final answer", nil
				}
			},
			expectedStep:   jobModel.Complete,
			expectedAnswer: "final answer",
		},
		{
			name: "Success_Cache_Hit",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnGetCachedAnswer = func(ctx context.Context, emb []float32) (string, bool, error) {
					return "cached answer", true, nil
				}
				l.OnGenerate = func(ctx context.Context, q string, pc []string, h []string) (string, error) {
					t.Error("LLM should not be called on a cache hit")
					return "", nil
				}
			},
			expectedStep:   jobModel.Complete,
			expectedAnswer: "cached answer",
		},
		{
			name: "Failure_Embedding",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectError:    true,
		},
		{
			name: "Failure_Vector_Search",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnSearch = func(ctx context.Context, emb []float32) ([]catalogModel.ProductMatch, error) {
					return nil, errors.New("db timeout")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectError:    true,
		},
		{
			name: "Failure_LLM_Generation",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, pc []string, h []string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}
			mLLM := &MockLLM{}

			tt.setupMocks(mEmbed, mVec, mLLM)

			s := rag.NewService(mVec, mLLM, mEmbed, &MockCatalog{})

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
			job := jobModel.Job{
				Id: "test-job",
				JobPayload: jobModel.JobPayload{
					Question: "which dal is cheapest?",
				},
			}

			result := s.ProcessRequest(ctx, job, []string{})

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}
			if tt.expectedStep != "" && result.CurrentStep != tt.expectedStep {
				t.Errorf("Step got %v, want %v", result.CurrentStep, tt.expectedStep)
			}
			if tt.expectedAnswer != "" && result.JobPayload.Answer != tt.expectedAnswer {
				t.Errorf("Answer got %s, want %s", result.JobPayload.Answer, tt.expectedAnswer)
			}
			if tt.expectError && result.Error.Code != http.StatusInternalServerError {
				t.Errorf("Error code got %d, want %d", result.Error.Code, http.StatusInternalServerError)
			}
		})
	}
}

func TestProcessRequest_RecordsMatchedProducts(t *testing.T) {
	mVec := &MockVectorDB{
		OnSearch: func(ctx context.Context, emb []float32) ([]catalogModel.ProductMatch, error) {
			return []catalogModel.ProductMatch{
				{Id: 7, Name: "Whole Wheat Atta", Brand: "Aashirvaad", SalePrice: 280, Score: 0.91},
			}, nil
		},
	}
	s := rag.NewService(mVec, &MockLLM{}, &MockEmbedder{}, &MockCatalog{})

	job := jobModel.Job{Id: "j1", JobPayload: jobModel.JobPayload{Question: "atta?"}}
	result := s.ProcessRequest(context.Background(), job, nil)

	if len(result.JobPayload.Products) != 1 {
		t.Fatalf("Products got %d, want 1", len(result.JobPayload.Products))
	}
	if result.JobPayload.Products[0].Name != "Whole Wheat Atta" {
		t.Errorf("Product got %s, want Whole Wheat Atta", result.JobPayload.Products[0].Name)
	}
}

func TestIngestCatalog_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, v *MockVectorDB, c *MockCatalog)
		expectedStatus jobModel.JobStatus
	}{
		{
			name:           "Ingestion_Success",
			setupMocks:     func(e *MockEmbedder, v *MockVectorDB, c *MockCatalog) {},
			expectedStatus: jobModel.JobStatusComplete,
		},
		{
			name: "Failure_Empty_Catalog",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, c *MockCatalog) {
				c.OnAllForIndexing = func(ctx context.Context) ([]catalogModel.Product, error) {
					return nil, nil
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
		{
			name: "Failure_Collection_Creation",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, c *MockCatalog) {
				v.OnEnsureCollection = func(ctx context.Context, name string) error {
					return errors.New("connection refused")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
		{
			name: "Failure_Batch_Embedding",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, c *MockCatalog) {
				e.OnBatchEmbedding = func(ctx context.Context, texts []string, isHuge bool) ([][]float32, error) {
					return nil, errors.New("quota exceeded")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
		{
			name: "Failure_Vector_Upsert",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, c *MockCatalog) {
				v.OnUpsertProducts = func(ctx context.Context, name string, chunks []catalogModel.ProductChunk, vectors [][]float32) error {
					return errors.New("disk full")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}
			mCat := &MockCatalog{}

			tt.setupMocks(mEmbed, mVec, mCat)

			s := rag.NewService(mVec, &MockLLM{}, mEmbed, mCat)

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "ingest-trace")
			job := jobModel.Job{Id: "ingest-job-1", JobType: jobModel.JobTypeIngest}

			result := s.IngestCatalog(ctx, job)

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}
		})
	}
}

func TestSemanticSearch(t *testing.T) {
	t.Run("Returns matches", func(t *testing.T) {
		s := rag.NewService(&MockVectorDB{}, &MockLLM{}, &MockEmbedder{}, &MockCatalog{})

		matches, err := s.SemanticSearch(context.Background(), "rice")
		if err != nil {
			t.Fatalf("SemanticSearch failed: %v", err)
		}
		if len(matches) != 1 || matches[0].Name != "Basmati Rice" {
			t.Errorf("Unexpected matches: %+v", matches)
		}
	})

	t.Run("Embedding failure propagates", func(t *testing.T) {
		mEmbed := &MockEmbedder{
			OnGetEmbedding: func(ctx context.Context, text string) ([]float32, error) {
				return nil, errors.New("api limit")
			},
		}
		s := rag.NewService(&MockVectorDB{}, &MockLLM{}, mEmbed, &MockCatalog{})

		if _, err := s.SemanticSearch(context.Background(), "rice"); err == nil {
			t.Error("Expected an error when embedding fails")
		}
	})
}

func TestDisabledService(t *testing.T) {
	s := rag.NewDisabledService()

	if _, err := s.SemanticSearch(context.Background(), "rice"); !errors.Is(err, rag.ErrAssistantDisabled) {
		t.Errorf("Expected ErrAssistantDisabled, got %v", err)
	}

	result := s.ProcessRequest(context.Background(), jobModel.Job{Id: "j1"}, nil)
	if result.Status != jobModel.JobStatusError {
		t.Errorf("Status got %v, want %v", result.Status, jobModel.JobStatusError)
	}
	if result.Error.Code != http.StatusServiceUnavailable {
		t.Errorf("Error code got %d, want %d", result.Error.Code, http.StatusServiceUnavailable)
	}
}
