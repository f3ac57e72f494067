package usecase_test

import (
	"context"
	"sync"

	"github.com/m-mizutani/gollem"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	client *mockLLMClient
}

var (
	_ gollem.Session   = (*mockLLMSession)(nil)
	_ gollem.LLMClient = (*mockLLMClient)(nil)
)

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	s.client.mu.Lock()
	defer s.client.mu.Unlock()

	s.client.generateCalls++
	if s.client.err != nil {
		return nil, s.client.err
	}
	return &gollem.Response{Texts: []string{s.client.response}}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, options ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, options ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return s.GenerateStream(ctx, input...)
}

func (s *mockLLMSession) History() (*gollem.History, error) { return nil, nil }

func (s *mockLLMSession) AppendHistory(*gollem.History) error { return nil }

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	mu            sync.Mutex
	response      string
	err           error
	generateCalls int
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	return &mockLLMSession{client: c}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func (c *mockLLMClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generateCalls
}
