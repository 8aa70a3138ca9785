package llama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"strings"

	"mojinamer/describer"
)

const (
	imagePreamble = `A chat between a curious human and an artificial intelligence assistant. The assistant gives helpful, detailed, and polite answers to the human's questions.
USER:`
	imageSuffix = `
ASSISTANT:`

	nameInstruction = `[img-10]suggest a short descriptive file name for this image: lowercase words joined by underscores, no extension, no other text`
)

type jsonmap map[string]any

// Low temperature and a short completion budget keep the server on task: a
// handful of snake_case words, nothing conversational.
var defaultparams = jsonmap{
	"n_predict":      24,
	"n_probs":        0,
	"temperature":    0.2,
	"stop":           []string{"</s>", "USER:", "ASSISTANT:"},
	"repeat_last_n":  256,
	"repeat_penalty": 1.18,
	"top_k":          40,
	"top_p":          0.5,
	"cache_prompt":   true,
}

type llama struct {
	srvAddr string
	seed    int

	client *http.Client
}

var _ describer.Describer = &llama{}

func Init(srvAddr string, seed int, httpClient *http.Client) *llama {
	return &llama{
		srvAddr: srvAddr,
		seed:    seed,
		client:  httpClient,
	}
}

func (l *llama) Name() string { return "llama" }

func (l *llama) IsHealthy() bool {
	resp, err := l.client.Get(l.srvAddr)
	if err != nil {
		return false
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func (l *llama) DescribeImage(ctx context.Context, img describer.Image) (string, error) {
	imb64 := base64.StdEncoding.EncodeToString(img.Data)
	return l.sendRequest(ctx, imagePreamble+nameInstruction+imageSuffix, jsonmap{
		"image_data": []jsonmap{
			{
				"data": imb64, "id": 10,
			},
		},
	})
}

func (l *llama) sendRequest(ctx context.Context, prompt string, keys jsonmap) (string, error) {
	data := maps.Clone(defaultparams)
	maps.Copy(data, keys)
	data["prompt"] = prompt
	data["stream"] = false
	data["seed"] = l.seed

	buf := bytes.NewBuffer(make([]byte, 0, 2_000_000)) // The buffer will be resized by Encode
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(&data); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.srvAddr+"/completion", bytes.NewReader(buf.Bytes()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("naming request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llama server returned %s", resp.Status)
	}

	respbody := struct {
		Content string
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&respbody); err != nil {
		return "", describer.ErrMalformedResponse
	}

	phrase := strings.TrimSpace(respbody.Content)
	if phrase == "" {
		return "", describer.ErrMalformedResponse
	}

	return phrase, nil
}
