package ingest

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/swippe/quickcommerce/internal/domain/catalogModel"
)

func buildChunks(products []catalogModel.Product) []catalogModel.ProductChunk {
	chunks := make([]catalogModel.ProductChunk, 0, len(products))
	for _, p := range products {
		chunks = append(chunks, catalogModel.ProductChunk{
			ChunkId: chunkId(p.Id),
			Product: p,
			Text:    p.EmbeddingText(),
		})
	}
	return chunks
}

// chunkId is deterministic per product so reindexing upserts in place.
func chunkId(productId int64) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("product-%d", productId))).String()
}

func chunkTexts(chunks []catalogModel.ProductChunk) []string {
	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, c.Text)
	}
	return texts
}

// dropFailedEmbeddings strips entries whose vector came back nil, keeping
// chunk and vector slices aligned for the upsert.
func dropFailedEmbeddings(chunks []catalogModel.ProductChunk, vectors [][]float32) ([]catalogModel.ProductChunk, [][]float32) {
	keptChunks := make([]catalogModel.ProductChunk, 0, len(chunks))
	keptVectors := make([][]float32, 0, len(vectors))
	for i := range vectors {
		if i >= len(chunks) {
			break
		}
		if vectors[i] == nil {
			continue
		}
		keptChunks = append(keptChunks, chunks[i])
		keptVectors = append(keptVectors, vectors[i])
	}
	return keptChunks, keptVectors
}
