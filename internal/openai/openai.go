package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"mojinamer/describer"

	oagc "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	systemPrompt = "You name image files succinctly for easy search. " +
		"Respond with a single short snake_case name, no spaces, lowercase, " +
		"ASCII letters/numbers/underscores only. 3-6 words, max 42 characters. " +
		"Do not include the file extension or any punctuation beyond underscores."

	userText = "Give a concise, descriptive base name for this image. " +
		"Return only the name, nothing else."
)

type openai struct {
	oac   *oagc.Client
	model string
}

var _ describer.Describer = &openai{}

// Init creates the OpenAI backend. Extra request options are appended last so
// tests can redirect the client at a local server.
func Init(apiKey, model string, httpClient *http.Client, extra ...option.RequestOption) *openai {
	opts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0), // failures are reported per image, never retried
	}, extra...)

	return &openai{
		oac:   oagc.NewClient(opts...),
		model: model,
	}
}

func (o *openai) Name() string { return "openai" }

func (o *openai) Model() string { return o.model }

func (o *openai) IsHealthy() bool {
	// The hosted API has no health probe worth hitting before a run.
	return true
}

func (o *openai) DescribeImage(ctx context.Context, img describer.Image) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", img.MIME, base64.StdEncoding.EncodeToString(img.Data))

	ccnp := oagc.ChatCompletionNewParams{
		Model: oagc.F(oagc.ChatModel(o.model)),
		Messages: oagc.F([]oagc.ChatCompletionMessageParamUnion{
			oagc.SystemMessage(systemPrompt),
			oagc.UserMessageParts(
				oagc.TextPart(userText),
				oagc.ImagePart(dataURL),
			),
		}),
		Temperature: oagc.Float(0.2),
		MaxTokens:   oagc.Int(20),
	}
	resp, err := o.oac.Chat.Completions.New(ctx, ccnp)
	if err != nil {
		var apierr *oagc.Error
		if errors.As(err, &apierr) {
			switch apierr.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return "", describer.ErrAuthentication
			case http.StatusTooManyRequests:
				return "", describer.ErrRateLimited
			}
		}
		return "", fmt.Errorf("naming request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", describer.ErrMalformedResponse
	}
	phrase := strings.TrimSpace(resp.Choices[0].Message.Content)
	if phrase == "" {
		return "", describer.ErrMalformedResponse
	}

	return phrase, nil
}
