// Package inference is the HTTP client of the point-cloud inference and mesh processing service.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the service location used when none is configured.
const DefaultBaseURL = "http://localhost:8000"

// Endpoint paths, relative to the base URL.
const (
	PathPointcloud    = "/api/inference/pointcloud"
	PathUpsampling    = "/api/inference/upsampling"
	PathMesh          = "/api/process/mesh"
	PathProxyDownload = "/api/process/proxy-download"
)

// Smoothing algorithms accepted by the mesh endpoint.
const (
	Laplacian = "laplacian"
	Taubin    = "taubin"
)

// ErrNoPointcloud is returned when a successful response carries no pointcloud_data.
var ErrNoPointcloud = errors.New("inference: no pointcloud data in response")

// StatusError is a non-2xx response from the service.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("inference: %s: %s: %s", e.Endpoint, e.Status, e.Body)
	}
	return fmt.Sprintf("inference: %s: %s", e.Endpoint, e.Status)
}

// AsStatus returns the StatusError err is or wraps.
func AsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// Client talks to the service at baseURL.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient returns a Client for baseURL (DefaultBaseURL when empty).
// timeout 0 means requests are never cut off by the client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	u := strings.TrimSuffix(baseURL, "/")
	if u == "" {
		u = DefaultBaseURL
	}
	hc := http.DefaultClient
	if timeout > 0 {
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: u, client: hc}
}

// BaseURL returns the service location.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Image is an image file submitted for inference.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// PointcloudResponse is the body returned by the pointcloud and upsampling endpoints.
type PointcloudResponse struct {
	PointcloudData Points `json:"pointcloud_data"`
	FilePath       string `json:"file_path"`
	DownloadURL    string `json:"download_url"`
	Message        string `json:"message,omitempty"`
}

// UpsampleRequest is the JSON body of the upsampling endpoint.
type UpsampleRequest struct {
	FilePath   string `json:"file_path"`
	FileFormat string `json:"file_format"`
	NPoints    int    `json:"n_points"`
}

// MeshRequest is the JSON body of the mesh endpoint. SmoothingIterations is only sent when set.
type MeshRequest struct {
	FilePath            string `json:"file_path"`
	SmoothingAlgorithm  string `json:"smoothing_algorithm"`
	SmoothingIterations int    `json:"smoothing_iterations,omitempty"`
}

// ParseSmoothing validates a smoothing algorithm name (case-insensitive).
func ParseSmoothing(s string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case Laplacian, Taubin:
		return v, nil
	}
	return "", fmt.Errorf("inference: unknown smoothing algorithm %q (use laplacian or taubin)", s)
}

// PredictPointcloud uploads img as multipart form data (file, file_format) and returns the generated point cloud.
func (c *Client) PredictPointcloud(ctx context.Context, img Image, fileFormat string) (*PointcloudResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(img.Name)))
	ct := img.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, err
	}
	if err := mw.WriteField("file_format", fileFormat); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	resp, err := c.post(ctx, PathPointcloud, mw.FormDataContentType(), &body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodePointcloud(resp, PathPointcloud)
}

// Upsample asks the service to upsample the point cloud stored at req.FilePath.
func (c *Client) Upsample(ctx context.Context, req UpsampleRequest) (*PointcloudResponse, error) {
	resp, err := c.postJSON(ctx, PathUpsampling, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodePointcloud(resp, PathUpsampling)
}

// GenerateMesh asks the service to mesh and smooth the point cloud at req.FilePath.
// It returns the serialized mesh (PLY).
func (c *Client) GenerateMesh(ctx context.Context, req MeshRequest) ([]byte, error) {
	resp, err := c.postJSON(ctx, PathMesh, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp, PathMesh); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("inference: %s: read body: %w", PathMesh, err)
	}
	return data, nil
}

// ProxyDownload fetches a remote artifact (e.g. a storage download URL) through the service.
func (c *Client) ProxyDownload(ctx context.Context, artifactURL string) ([]byte, error) {
	u := c.baseURL + PathProxyDownload + "?" + url.Values{"url": {artifactURL}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference: %s: %w", PathProxyDownload, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp, PathProxyDownload); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) postJSON(ctx context.Context, path string, v interface{}) (*http.Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return c.post(ctx, path, "application/json", bytes.NewReader(body))
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference: %s: %w", path, err)
	}
	return resp, nil
}

const maxErrorBody = 512

func checkStatus(resp *http.Response, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Endpoint:   path,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(b)),
	}
}

func decodePointcloud(resp *http.Response, path string) (*PointcloudResponse, error) {
	if err := checkStatus(resp, path); err != nil {
		return nil, err
	}
	var out PointcloudResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("inference: %s: decode response: %w", path, err)
	}
	if out.PointcloudData == nil {
		return &out, ErrNoPointcloud
	}
	return &out, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
