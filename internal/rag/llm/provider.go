package llm

import "context"

type Provider interface {
	Generate(ctx context.Context, query string, productContext []string, messageHistory []string) (string, error)
}
