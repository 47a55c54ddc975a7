package importapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/mouxlas21/football-db/internal/platform/logging"
	"github.com/mouxlas21/football-db/internal/platform/resilience"
	"github.com/mouxlas21/football-db/internal/usecase"
)

const (
	importPath       = "/v1/import/csv"
	defaultTimeout   = 5 * time.Minute
	maxResponseBytes = 4 << 20
)

var errImportTransient = crerr.New("import endpoint transient failure")

type ClientConfig struct {
	Timeout        time.Duration
	MaxRetries     int
	Backoff        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client posts CSV files to the import endpoint as multipart uploads.
type Client struct {
	http       *fasthttp.Client
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("import circuit breaker state changed", "from", string(from), "to", string(to))
	})

	return &Client{
		http: &fasthttp.Client{
			Name:                "football-db-importer",
			MaxResponseBodySize: maxResponseBytes,
		},
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		backoff:    backoff,
		logger:     logger,
		breaker:    breaker,
	}
}

type envelope struct {
	Data  *usecase.ImportResult `json:"data"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Submit uploads item to baseURL and returns the importer's batch result.
func (c *Client) Submit(ctx context.Context, baseURL string, item usecase.PlanItem) (usecase.ImportResult, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "import circuit breaker rejected request", "state", c.breaker.State())
		return usecase.ImportResult{}, fmt.Errorf("%w: import endpoint is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	endpoint, err := importURL(baseURL, item.Entity.String())
	if err != nil {
		return usecase.ImportResult{}, err
	}

	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)
	contentType, err := writeMultipart(body, item.Path)
	if err != nil {
		return usecase.ImportResult{}, err
	}

	raw, err := c.post(ctx, endpoint, contentType, body.B)
	c.recordCircuitResult(err)
	if err != nil {
		return usecase.ImportResult{}, err
	}

	var out envelope
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return usecase.ImportResult{}, crerr.Wrap(err, "decode import response")
	}
	if out.Data == nil {
		return usecase.ImportResult{}, crerr.Newf("import response for %s has no data", filepath.Base(item.Path))
	}
	return *out.Data, nil
}

func (c *Client) post(ctx context.Context, endpoint, contentType string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, status, err := c.do(ctx, endpoint, contentType, body)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %v", errImportTransient, err)
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: import status=%d body=%s", errImportTransient, status, abbreviate(raw))
		default:
			return nil, fmt.Errorf("import status=%d: %s", status, errorMessage(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		c.logger.DebugContext(ctx, "retrying import request", "url", endpoint, "attempt", attempt+1, "error", lastErr)
		timer := time.NewTimer(time.Duration(attempt+1) * c.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "import request failed", "url", endpoint, "error", lastErr)
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, endpoint, contentType string, body []byte) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType(contentType)
	req.Header.Set("Accept", "application/json")
	req.SetBodyRaw(body)

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	raw := append([]byte(nil), resp.Body()...)
	return raw, resp.StatusCode(), nil
}

func (c *Client) recordCircuitResult(err error) {
	if err != nil && stderrors.Is(err, errImportTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func importURL(baseURL, entity string) (string, error) {
	candidate := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse base url %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("base url %q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", crerr.Newf("base url %q has empty host", candidate)
	}
	return candidate + importPath + "?entity=" + url.QueryEscape(entity), nil
}

func writeMultipart(w io.Writer, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", crerr.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	mw := multipart.NewWriter(w)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", crerr.Wrap(err, "create form file")
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", crerr.Wrapf(err, "copy %s", path)
	}
	if err := mw.Close(); err != nil {
		return "", crerr.Wrap(err, "close multipart body")
	}
	return mw.FormDataContentType(), nil
}

func errorMessage(raw []byte) string {
	var out envelope
	if err := sonic.Unmarshal(raw, &out); err == nil && out.Error != nil && out.Error.Message != "" {
		return out.Error.Message
	}
	return abbreviate(raw)
}

func abbreviate(raw []byte) string {
	const limit = 512
	text := strings.TrimSpace(string(raw))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "...(truncated)"
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
