package slides

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrRendererNotConfigured = errors.New("slides renderer not configured")

// Deck is the renderer-facing presentation document.
type Deck struct {
	Title    string    `json:"tituloPresentacion"`
	Sections []Section `json:"secciones"`
	Style    Style     `json:"estilo"`
}

type Section struct {
	Title   string   `json:"titulo"`
	Bullets []string `json:"bullets"`
}

type Style struct {
	Mode        string `json:"modo"`
	Font        string `json:"fuente"`
	Conclusions bool   `json:"conclusiones"`
	Slides      *int   `json:"slides,omitempty"`
}

// Renderer delegates .pptx generation to an external rendering service and
// streams the finished file back.
type Renderer struct {
	httpClient *http.Client
	baseURL    string
}

func NewRenderer(baseURL string) *Renderer {
	return &Renderer{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		baseURL:    baseURL,
	}
}

func (r *Renderer) Configured() bool {
	return r.baseURL != ""
}

// Render posts the deck and returns the .pptx bytes.
func (r *Renderer) Render(ctx context.Context, deck *Deck) ([]byte, error) {
	if !r.Configured() {
		return nil, ErrRendererNotConfigured
	}

	body, err := json.Marshal(deck)
	if err != nil {
		return nil, fmt.Errorf("failed to encode deck: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/render", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("renderer returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered deck: %w", err)
	}
	return data, nil
}
