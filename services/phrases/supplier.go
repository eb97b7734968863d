package phrases

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"

	constants "emoguchi/constants/game"
)

// Supplier provides scripted lines for rounds. Implementations must honor the
// context deadline; the state machine treats any error or timeout as a cue to
// use the fallback list, never surfacing it to clients.
type Supplier interface {
	GeneratePhrase(ctx context.Context) (string, error)
	GenerateBatch(ctx context.Context, count int) ([]string, error)
}

// StaticSupplier serves the built-in fallback phrases. It is both the default
// supplier when no LLM endpoint is configured and the timeout fallback path.
type StaticSupplier struct{}

func (s *StaticSupplier) GeneratePhrase(ctx context.Context) (string, error) {
	return FallbackPhrase(), nil
}

func (s *StaticSupplier) GenerateBatch(ctx context.Context, count int) ([]string, error) {
	out := make([]string, count)
	for i := range out {
		out[i] = FallbackPhrase()
	}
	return out, nil
}

// FallbackPhrase picks a random line from the static list.
func FallbackPhrase() string {
	return constants.FallbackPhrases[rand.Intn(len(constants.FallbackPhrases))]
}

// HTTPSupplier calls an external phrase-generation endpoint. The endpoint
// receives {"count": n} and answers {"phrases": [...]}; anything else is an
// error and the caller falls back.
type HTTPSupplier struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPSupplier reads PHRASE_API_URL / PHRASE_API_KEY from the environment.
// Returns nil when no endpoint is configured, callers then use the static
// supplier.
func NewHTTPSupplier() *HTTPSupplier {
	endpoint := os.Getenv("PHRASE_API_URL")
	if endpoint == "" {
		return nil
	}
	return &HTTPSupplier{
		endpoint: endpoint,
		apiKey:   os.Getenv("PHRASE_API_KEY"),
		client:   &http.Client{Timeout: constants.PhraseSupplierTimeout},
	}
}

func (s *HTTPSupplier) GeneratePhrase(ctx context.Context) (string, error) {
	batch, err := s.GenerateBatch(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(batch) == 0 {
		return "", fmt.Errorf("phrase supplier returned empty batch")
	}
	return batch[0], nil
}

func (s *HTTPSupplier) GenerateBatch(ctx context.Context, count int) ([]string, error) {
	body, err := json.Marshal(map[string]int{"count": count})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("phrase supplier returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Phrases []string `json:"phrases"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("error decoding phrase supplier response: %v", err)
	}
	if len(parsed.Phrases) == 0 {
		return nil, fmt.Errorf("phrase supplier returned no phrases")
	}
	return parsed.Phrases, nil
}

// FetchWithTimeout asks the supplier for one phrase under the hard supplier
// timeout, falling back to the static list on any failure. This is the only
// operation allowed to delay a round start, bounded by the timeout.
func FetchWithTimeout(supplier Supplier) string {
	if supplier == nil {
		return FallbackPhrase()
	}
	ctx, cancel := context.WithTimeout(context.Background(), constants.PhraseSupplierTimeout)
	defer cancel()

	type result struct {
		phrase string
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		phrase, err := supplier.GeneratePhrase(ctx)
		ch <- result{phrase, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil || r.phrase == "" {
			return FallbackPhrase()
		}
		return r.phrase
	case <-ctx.Done():
		return FallbackPhrase()
	}
}

// FetchBatch asks for count phrases under one timeout interval, padding with
// fallback lines when the supplier under-delivers.
func FetchBatch(supplier Supplier, count int) []string {
	if count <= 0 {
		count = constants.DefaultPrefetchBatch
	}
	if count > constants.MaxPrefetchBatch {
		count = constants.MaxPrefetchBatch
	}

	var phrases []string
	if supplier != nil {
		ctx, cancel := context.WithTimeout(context.Background(), constants.PhraseSupplierTimeout)
		defer cancel()
		if batch, err := supplier.GenerateBatch(ctx, count); err == nil {
			phrases = batch
		}
	}
	for len(phrases) < count {
		phrases = append(phrases, FallbackPhrase())
	}
	return phrases[:count]
}
