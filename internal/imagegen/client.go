// Package imagegen calls an OpenAI-compatible API to enhance furniture
// prompts and render concept images.
package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
)

const enhanceSystemPrompt = `You turn a client's furniture idea into a detailed prompt for an image model.
Describe a single piece of furniture photographed in a neutral studio: shape, proportions, material, finish, joinery and lighting.
Reply with a JSON object {"prompt": string, "title": string}. The title has at most 8 words.`

const maxResponseBytes = 32 << 20

// EnhancedPrompt is the structured output of the prompt enhancement step.
type EnhancedPrompt struct {
	Prompt string `json:"prompt" validate:"required,min=10,max=4000"`
	Title  string `json:"title" validate:"required,max=120"`
}

type Client struct {
	baseURL    string
	apiKey     string
	textModel  string
	imageModel string
	imageSize  string
	timeout    time.Duration
	httpClient *http.Client
	validate   *validator.Validate
}

func NewClient(baseURL, apiKey, textModel, imageModel string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		textModel:  textModel,
		imageModel: imageModel,
		imageSize:  "1024x1024",
		timeout:    timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		validate: validator.New(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
	N      int    `json:"n"`
}

// EnhancePrompt rewrites a short client idea into a detailed image prompt
// and a display title.
func (c *Client) EnhancePrompt(ctx context.Context, prompt string) (*EnhancedPrompt, error) {
	body, err := c.post(ctx, "/chat/completions", chatRequest{
		Model: c.textModel,
		Messages: []chatMessage{
			{Role: "system", Content: enhanceSystemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return nil, err
	}

	content := gjson.GetBytes(body, "choices.0.message.content")
	if !content.Exists() || !gjson.Valid(content.String()) {
		return nil, &Error{Kind: KindValidation, Message: "completion content is not JSON"}
	}

	parsed := gjson.Parse(content.String())
	enhanced := &EnhancedPrompt{
		Prompt: strings.TrimSpace(parsed.Get("prompt").String()),
		Title:  strings.TrimSpace(parsed.Get("title").String()),
	}
	if err := c.validate.Struct(enhanced); err != nil {
		return nil, &Error{Kind: KindValidation, Message: "enhanced prompt failed validation", Err: err}
	}
	return enhanced, nil
}

// GenerateImage renders prompt and returns the decoded image bytes.
func (c *Client) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	body, err := c.post(ctx, "/images/generations", imageRequest{
		Model:  c.imageModel,
		Prompt: prompt,
		Size:   c.imageSize,
		N:      1,
	})
	if err != nil {
		return nil, err
	}

	encoded := gjson.GetBytes(body, "data.0.b64_json").String()
	if encoded == "" {
		return nil, &Error{Kind: KindValidation, Message: "response contains no image data"}
	}

	image, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: "image data is not valid base64", Err: err}
	}
	return image, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		message := gjson.GetBytes(body, "error.message").String()
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{Kind: KindHTTPStatus, StatusCode: resp.StatusCode, Message: message}
	}

	return body, nil
}

func classifyTransportError(err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: KindTimeout, Message: "request timed out", Err: err}
	}
	return &Error{Kind: KindNetwork, Message: "request failed", Err: err}
}
