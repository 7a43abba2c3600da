package embeddings

import (
	"codescan/internal/config"
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
)

const (
	// maxBatchSize bounds the number of inputs per embedding request. One
	// source file can yield many function records; large Solidity files
	// routinely exceed a single request's input limit.
	maxBatchSize = 64

	// maxInputBytes truncates oversized record contents before embedding.
	// Whole-file fallback records can span an entire module, far past the
	// model's context window; the head of a function carries most of the
	// retrieval signal anyway.
	maxInputBytes = 24 * 1024
)

type Client struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewClient() *Client {
	apiKey := config.Get("OPENAI_API_KEY", "openai_key")
	if apiKey == "" {
		fmt.Fprintf(os.Stderr, "⚠ Warning: OPENAI_API_KEY is not set\n")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL := config.Get("OPENAI_BASE_URL", "openai_base_url"); baseURL != "" {
		cfg.BaseURL = baseURL
		fmt.Fprintf(os.Stderr, "→ Using custom API endpoint: %s\n", baseURL)
	}

	modelName := config.Get("OPENAI_EMBEDDING_MODEL", "openai_embedding_model")
	model := openai.SmallEmbedding3
	if modelName != "" {
		model = openai.EmbeddingModel(modelName)
		fmt.Fprintf(os.Stderr, "→ Using embedding model: %s\n", modelName)
	}

	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Embed returns the embedding vector for a single query or record text.
func (c *Client) Embed(text string) ([]float32, error) {
	resp, err := c.client.CreateEmbeddings(context.Background(), openai.EmbeddingRequest{
		Model: c.model,
		Input: []string{truncate(text)},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}
	return resp.Data[0].Embedding, nil
}

// EmbedBatch embeds all texts, splitting into capped requests and returning
// vectors in input order.
func (c *Client) EmbedBatch(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	results := make([][]float32, len(texts))
	for start := 0; start < len(texts); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch := make([]string, end-start)
		for i, t := range texts[start:end] {
			batch[i] = truncate(t)
		}

		resp, err := c.client.CreateEmbeddings(context.Background(), openai.EmbeddingRequest{
			Model: c.model,
			Input: batch,
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Data) != len(batch) {
			return nil, fmt.Errorf("expected %d embeddings, got %d", len(batch), len(resp.Data))
		}
		for _, data := range resp.Data {
			results[start+data.Index] = data.Embedding
		}
	}
	return results, nil
}

// truncate caps an input at maxInputBytes without splitting a UTF-8 sequence.
func truncate(text string) string {
	if len(text) <= maxInputBytes {
		return text
	}
	cut := maxInputBytes
	for cut > 0 && text[cut]&0xC0 == 0x80 {
		cut--
	}
	return text[:cut]
}
