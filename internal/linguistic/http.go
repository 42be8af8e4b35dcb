package linguistic

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/suPer8Hu/study-assistant/internal/nlp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HTTPBackend talks to a parse service exposing POST /parse and GET /health.
type HTTPBackend struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPBackend(baseURL string, timeout time.Duration) *HTTPBackend {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HTTPBackend{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

type parseReq struct {
	Text string `json:"text"`
}

type parseResp struct {
	nlp.ParsedDoc
	Error string `json:"error,omitempty"`
}

func (b *HTTPBackend) Parse(ctx context.Context, text string) (*nlp.ParsedDoc, error) {
	if b.Client == nil {
		return nil, errors.New("linguistic: http client is nil")
	}

	body, err := json.Marshal(parseReq{Text: text})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/parse", b.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("linguistic: status %d", resp.StatusCode)
	}

	var decoded parseResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if decoded.Error != "" {
		return nil, errors.New(decoded.Error)
	}
	doc := decoded.ParsedDoc
	return &doc, nil
}

func (b *HTTPBackend) Ping(ctx context.Context) error {
	if b.Client == nil {
		return errors.New("linguistic: http client is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.BaseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := b.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("linguistic: health status %d", resp.StatusCode)
	}
	return nil
}
