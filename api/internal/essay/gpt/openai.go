package gpt

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"essay-feedback/api/internal/prompt"
)

const (
	defaultModel    = "gpt-4o-mini"
	temperature     = 0.3
	maxOutputTokens = 2000
)

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	PromptDir  string
	HTTPClient *http.Client // optional (tests)
}

// Engine is the OpenAI chat-completions critique engine.
type Engine struct {
	Model   string
	client  openai.Client
	prompts prompt.Loader
	log     *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Engine {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 120 * time.Second,
				IdleConnTimeout:       90 * time.Second,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   100,
			},
		}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpc),
		// a failed critique is served as fallback, never retried
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Engine{
		Model:   cfg.Model,
		client:  openai.NewClient(opts...),
		prompts: prompt.Loader{Dir: cfg.PromptDir},
		log:     log,
	}
}

func (e *Engine) Name() string     { return "gpt" }
func (e *Engine) GetModel() string { return e.Model }

func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return fmt.Errorf("openai critique %d: %s", apiErr.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("openai critique %d", apiErr.StatusCode)
	}
	return err
}
