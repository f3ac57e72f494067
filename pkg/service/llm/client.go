package llm

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// Client is a thin gateway over a gollem LLM client. A nil underlying
// client means text generation is disabled and every call returns
// ErrNotConfigured.
type Client struct {
	llm gollem.LLMClient
}

func New(llmClient gollem.LLMClient) *Client {
	return &Client{llm: llmClient}
}

// Enabled reports whether an underlying LLM client is available.
func (c *Client) Enabled() bool {
	return c != nil && c.llm != nil
}

// Generate sends a single prompt and returns the plain-text response.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", goerr.Wrap(ErrNotConfigured, "cannot generate text")
	}

	ssn, err := c.llm.NewSession(ctx)
	if err != nil {
		return "", goerr.Wrap(ErrRequestFailed, "failed to create session", goerr.V("cause", err.Error()))
	}

	resp, err := ssn.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(ErrRequestFailed, "failed to generate content", goerr.V("cause", err.Error()))
	}

	if len(resp.Texts) == 0 || strings.TrimSpace(resp.Texts[0]) == "" {
		return "", goerr.Wrap(ErrMalformedResponse, "empty response")
	}

	return strings.TrimSpace(resp.Texts[0]), nil
}

// GenerateStructured sends a prompt with a JSON response schema and
// decodes the response into out.
func (c *Client) GenerateStructured(ctx context.Context, prompt string, schema *gollem.Parameter, out any) error {
	if !c.Enabled() {
		return goerr.Wrap(ErrNotConfigured, "cannot generate structured output")
	}

	ssn, err := c.llm.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(schema),
	)
	if err != nil {
		return goerr.Wrap(ErrRequestFailed, "failed to create session", goerr.V("cause", err.Error()))
	}

	resp, err := ssn.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return goerr.Wrap(ErrRequestFailed, "failed to generate content", goerr.V("cause", err.Error()))
	}

	if len(resp.Texts) == 0 {
		return goerr.Wrap(ErrMalformedResponse, "empty response")
	}

	if err := json.Unmarshal([]byte(resp.Texts[0]), out); err != nil {
		return goerr.Wrap(ErrMalformedResponse, "failed to decode response",
			goerr.V("cause", err.Error()),
			goerr.V("response", resp.Texts[0]),
		)
	}

	return nil
}
