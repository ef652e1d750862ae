package langserve

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/utils"
)

// Client talks to the langserve host that executes the chains. Each chain
// file is mounted as a route named after the file without its extension,
// so "simple_chain.py" answers under {base}/simple_chain/.
type Client interface {
	BatchInvoke(ctx context.Context, chainFile string, inputs []string, configurable map[string]interface{}) ([]string, error)
	GetConfigSchema(ctx context.Context, chainFile string) (map[string]interface{}, error)
}

type batchRequest struct {
	Inputs []string               `json:"inputs"`
	Config batchConfig            `json:"config"`
	Kwargs map[string]interface{} `json:"kwargs"`
}

type batchConfig struct {
	Configurable map[string]interface{} `json:"configurable"`
}

type batchResponse struct {
	Output []string `json:"output"`
}

type client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseLog *logger.Logger) Client {
	clientLog := baseLog.With("client", "LangserveClient")
	baseURL := strings.TrimRight(utils.GetEnv("LANGSERVE_BASE_URL", "http://localhost:8001", baseLog), "/")
	timeoutSeconds := utils.GetEnvAsInt("LANGSERVE_TIMEOUT_SECONDS", 120, baseLog)
	return &client{
		log:     clientLog,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

func chainRoute(chainFile string) string {
	return strings.TrimSuffix(chainFile, ".py")
}

func (c *client) BatchInvoke(ctx context.Context, chainFile string, inputs []string, configurable map[string]interface{}) ([]string, error) {
	if configurable == nil {
		configurable = map[string]interface{}{}
	}
	payload := batchRequest{
		Inputs: inputs,
		Config: batchConfig{Configurable: configurable},
		Kwargs: map[string]interface{}{},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal batch request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/batch", c.baseURL, chainRoute(chainFile))
	c.log.Info("Invoking chain batch", "url", url, "inputs", len(inputs))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build batch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Chain batch call failed", "url", url, "error", err)
		return nil, fmt.Errorf("invoke chain %q: %w", chainFile, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read batch response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("Chain batch call returned non-2xx", "url", url, "status", resp.StatusCode)
		return nil, fmt.Errorf("invoke chain %q: unexpected status %d", chainFile, resp.StatusCode)
	}

	var parsed batchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode batch response: %w", err)
	}
	if len(parsed.Output) != len(inputs) {
		return nil, fmt.Errorf("invoke chain %q: got %d outputs for %d inputs", chainFile, len(parsed.Output), len(inputs))
	}

	return parsed.Output, nil
}

func (c *client) GetConfigSchema(ctx context.Context, chainFile string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s/config_schema", c.baseURL, chainRoute(chainFile))
	c.log.Info("Fetching chain config schema", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build config schema request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Config schema call failed", "url", url, "error", err)
		return nil, fmt.Errorf("fetch config schema for %q: %w", chainFile, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read config schema response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("Config schema call returned non-2xx", "url", url, "status", resp.StatusCode)
		return nil, fmt.Errorf("fetch config schema for %q: unexpected status %d", chainFile, resp.StatusCode)
	}

	var schema map[string]interface{}
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("decode config schema: %w", err)
	}
	return schema, nil
}
