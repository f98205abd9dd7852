package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

const (
	AnalyzeMenuPath = "/api/v1/menu/analyze-menu"
	ProductsPath    = "/api/v1/recommendations/products"

	maxResponseBytes = 16 << 20
)

// Client talks to the menu-analysis and recommendation endpoints.
// It performs no retries and sends no credentials.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client rooted at baseURL. A nil httpClient gets a default with a generous timeout,
// since menu analysis waits on a vision model.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 3 * time.Minute}
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    httpClient,
	}
}

// BaseURL returns the configured origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AnalyzeMenu posts the upload as multipart form data.
func (c *Client) AnalyzeMenu(ctx context.Context, upload Upload) (Response, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(upload.Name)))
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return Response{}, fmt.Errorf("create multipart part: %w", err)
	}
	if upload.Body != nil {
		if _, err := io.Copy(part, upload.Body); err != nil {
			return Response{}, fmt.Errorf("read upload: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return Response{}, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+AnalyzeMenuPath, &body)
	if err != nil {
		return Response{}, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

// Products fetches the recommendation list. The request carries no parameters.
func (c *Client) Products(ctx context.Context) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+ProductsPath, nil)
	if err != nil {
		return Response{}, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Response{Status: resp.StatusCode}, fmt.Errorf("read response: %w", err)
	}
	return Response{Status: resp.StatusCode, Body: data}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
