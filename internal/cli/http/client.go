package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"time"

	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "kat-cli"
)

// ResponseInfo carries response details.
type ResponseInfo struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// IsSuccess reports a 2xx status.
func (r ResponseInfo) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Field is one text field of a multipart form.
type Field struct {
	Name  string
	Value string
}

// FilePart is one file attached to a multipart form.
type FilePart struct {
	Field    string
	FileName string
	Content  []byte
}

// Form is an ordered multipart form.
type Form struct {
	Fields []Field
	Files  []FilePart
}

// Client is the judge transport for one CLI invocation. It keeps a cookie
// jar so a session established by login is reused by later requests.
type Client struct {
	http      *http.Client
	userAgent string
}

// Options configures a Client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// New creates a client with its own cookie jar.
func New(opts Options) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.InternalError, "create cookie jar failed: %v", err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		http:      &http.Client{Timeout: timeout, Jar: jar},
		userAgent: userAgent,
	}, nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, url string) (ResponseInfo, error) {
	return c.Do(ctx, http.MethodGet, url, nil, nil)
}

// PostMultipart posts form as multipart/form-data. Fields are written in order
// before files.
func (c *Client) PostMultipart(ctx context.Context, url string, form Form) (ResponseInfo, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range form.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return ResponseInfo{}, appErr.Wrapf(err, appErr.InternalError, "write form field %s failed: %v", f.Name, err)
		}
	}
	for _, f := range form.Files {
		part, err := w.CreateFormFile(f.Field, f.FileName)
		if err != nil {
			return ResponseInfo{}, appErr.Wrapf(err, appErr.InternalError, "create form file %s failed: %v", f.FileName, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return ResponseInfo{}, appErr.Wrapf(err, appErr.InternalError, "write form file %s failed: %v", f.FileName, err)
		}
	}
	if err := w.Close(); err != nil {
		return ResponseInfo{}, appErr.Wrapf(err, appErr.InternalError, "close form failed: %v", err)
	}
	headers := map[string]string{"Content-Type": w.FormDataContentType()}
	return c.Do(ctx, http.MethodPost, url, headers, buf.Bytes())
}

// Do sends a request and reads the whole response body. Non-2xx statuses are
// returned in ResponseInfo, not as errors; callers decide what they mean.
func (c *Client) Do(ctx context.Context, method, url string, headers map[string]string, body []byte) (ResponseInfo, error) {
	var info ResponseInfo

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return info, appErr.Wrapf(err, appErr.RequestFailed, "build request failed: %v", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	info.Duration = time.Since(start)
	if err != nil {
		return info, appErr.Wrapf(err, appErr.RequestFailed, "%s %s failed: %v", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	info.StatusCode = resp.StatusCode
	info.Headers = resp.Header
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return info, appErr.Wrapf(err, appErr.RequestFailed, "read response body failed: %v", err)
	}
	info.Body = bodyBytes
	logger.Debug(ctx, "judge request finished",
		zap.String("method", method),
		zap.String("url", url),
		zap.Stringer("response", info),
		zap.Duration("duration", info.Duration))
	return info, nil
}

// String is used in log fields.
func (r ResponseInfo) String() string {
	return fmt.Sprintf("status=%d bytes=%d", r.StatusCode, len(r.Body))
}
