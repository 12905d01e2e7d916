package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/css-prep/backend/internal/models"
)

// RemoteClient calls an external MCQ generation service that already speaks
// the question set contract: POST {baseURL}/mcq/generate.
type RemoteClient struct {
	baseURL string
	http    *http.Client
}

func NewRemoteClient(baseURL string, timeout time.Duration) *RemoteClient {
	return &RemoteClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *RemoteClient) Generate(ctx context.Context, req models.GenerateRequest) (*models.QuestionSet, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mcq/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("mcq service: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read mcq response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mcq service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	set, err := ParseResponse(string(payload), req.Count)
	if err != nil {
		return nil, err
	}
	set.Subject = req.Subject
	return set, nil
}
