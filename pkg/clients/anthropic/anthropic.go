package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	maxTokens      = 64
)

// ErrNoCommand is returned when the model could not map the message to a command.
var ErrNoCommand = errors.New("message does not map to a command")

const systemPrompt = `You translate messages from the keeper of the Gilded Rose inn into exactly one stock command.
Commands:
/stock - show the current stock
/advance - run the nightly update now
/add <sell_in> <quality> <name> - add an item, e.g. /add 5 20 Elixir of the Mongoose
/help - list commands
Answer with the command only, on a single line. If the message asks for none of these, answer NONE.`

// Client defines the interface for AI text processing.
type Client interface {
	TranslateToCommand(ctx context.Context, input string) (string, error)
}

type anthropicClient struct {
	httpClient *resty.Client
	model      string
}

// Option customises the client.
type Option func(*resty.Client)

// WithBaseURL points the client at another API host.
func WithBaseURL(baseURL string) Option {
	return func(c *resty.Client) {
		c.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	}
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey, model string, opts ...Option) Client {
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	for _, opt := range opts {
		opt(client)
	}

	return &anthropicClient{httpClient: client, model: model}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
}

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// TranslateToCommand asks the model for the slash command matching a free-text message.
func (c *anthropicClient) TranslateToCommand(ctx context.Context, input string) (string, error) {
	reqBody := messageRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages:  []Message{{Role: "user", Content: input}},
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post("/v1/messages")
	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	command := strings.TrimSpace(respBody.Content[0].Text)
	if line, _, found := strings.Cut(command, "\n"); found {
		command = strings.TrimSpace(line)
	}
	command = strings.Trim(command, "`")

	if command == "" || strings.EqualFold(command, "NONE") || !strings.HasPrefix(command, "/") {
		return "", ErrNoCommand
	}

	return command, nil
}
