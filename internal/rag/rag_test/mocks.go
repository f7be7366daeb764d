package rag_test

import (
	"context"

	"github.com/swippe/quickcommerce/internal/domain/catalogModel"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	// Control fields to simulate different behaviors
	OnSearch           func(ctx context.Context, queryVector []float32) ([]catalogModel.ProductMatch, error)
	OnGetCachedAnswer  func(ctx context.Context, queryVector []float32) (string, bool, error)
	OnSaveToCache      func(ctx context.Context, id string, vector []float32, answer string) error
	OnEnsureCollection func(ctx context.Context, name string) error
	OnUpsertProducts   func(ctx context.Context, name string, chunks []catalogModel.ProductChunk, vectors [][]float32) error
}

func (m *MockVectorDB) Search(ctx context.Context, v []float32) ([]catalogModel.ProductMatch, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, v)
	}
	return []catalogModel.ProductMatch{{Id: 1, Name: "Basmati Rice", Brand: "Daawat", SalePrice: 120}}, nil
}

func (m *MockVectorDB) GetCachedAnswer(ctx context.Context, v []float32) (string, bool, error) {
	if m.OnGetCachedAnswer != nil {
		return m.OnGetCachedAnswer(ctx, v)
	}
	return "", false, nil
}

func (m *MockVectorDB) SaveToCache(ctx context.Context, id string, v []float32, a string) error {
	if m.OnSaveToCache != nil {
		return m.OnSaveToCache(ctx, id, v, a)
	}
	return nil
}

func (m *MockVectorDB) EnsureCollection(ctx context.Context, name string) error {
	if m.OnEnsureCollection != nil {
		return m.OnEnsureCollection(ctx, name)
	}
	return nil
}

func (m *MockVectorDB) UpsertProducts(ctx context.Context, name string, chunks []catalogModel.ProductChunk, vectors [][]float32) error {
	if m.OnUpsertProducts != nil {
		return m.OnUpsertProducts(ctx, name, chunks, vectors)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, texts []string, isHuge bool) ([][]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, texts []string, isHuge bool) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, texts, isHuge)
	}
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{0.1, 0.2}
	}
	return vectors, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, query string, productContext []string, history []string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, q string, pc []string, hist []string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, q, pc, hist)
	}
	return "mocked llm response", nil
}

// MockCatalog implements ingest.CatalogSource
type MockCatalog struct {
	OnAllForIndexing func(ctx context.Context) ([]catalogModel.Product, error)
}

func (m *MockCatalog) AllForIndexing(ctx context.Context) ([]catalogModel.Product, error) {
	if m.OnAllForIndexing != nil {
		return m.OnAllForIndexing(ctx)
	}
	return []catalogModel.Product{
		{Id: 1, Name: "Basmati Rice", Category: "Staples", Brand: "Daawat", SalePrice: 120, Rating: 4.3},
		{Id: 2, Name: "Toor Dal", Category: "Staples", Brand: "Tata Sampann", SalePrice: 95, Rating: 4.1},
	}, nil
}
