// Package diagnosis submits lawn photos to the remote vision endpoint and
// decodes the structured condition report it returns.
package diagnosis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/models"
)

var (
	ErrNotConfigured    = errors.New("diagnosis endpoint is not configured")
	ErrNotAuthenticated = errors.New("no diagnosis token available")
	ErrQuota            = errors.New("diagnosis quota exceeded, try again later")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image exceeds size limit")
)

// dateLayout matches the long US date the endpoint embeds in its prompt.
const dateLayout = "Monday, January 2, 2006"

var supportedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Client calls the diagnosis endpoint with a static bearer token.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

type request struct {
	Image    string `json:"image"`
	MimeType string `json:"mimeType"`
	DateStr  string `json:"dateStr"`
}

type errorBody struct {
	Error string `json:"error"`
}

// NewClient builds an authenticated client. The token is sent as a bearer
// credential and apiKey, when set, in the apikey header.
func NewClient(ctx context.Context, endpoint, token, apiKey string, timeout time.Duration) (*Client, error) {
	if endpoint == "" {
		return nil, ErrNotConfigured
	}
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	if timeout <= 0 {
		timeout = constants.DiagnosisTimeout
	}

	base := &http.Client{Timeout: timeout}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})

	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: oauth2.NewClient(ctx, ts),
	}, nil
}

// Diagnose submits image bytes and returns the decoded report.
func (c *Client) Diagnose(ctx context.Context, image []byte, mimeType string, date time.Time) (models.Diagnosis, error) {
	if !supportedTypes[mimeType] {
		return models.Diagnosis{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, mimeType)
	}
	if len(image) > constants.MaxScanImageBytes {
		return models.Diagnosis{}, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(image))
	}

	payload, err := json.Marshal(request{
		Image:    base64.StdEncoding.EncodeToString(image),
		MimeType: mimeType,
		DateStr:  date.Format(dateLayout),
	})
	if err != nil {
		return models.Diagnosis{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return models.Diagnosis{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Diagnosis{}, fmt.Errorf("failed to reach diagnosis service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return models.Diagnosis{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return models.Diagnosis{}, ErrQuota
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return models.Diagnosis{}, fmt.Errorf("%w: token rejected", ErrNotAuthenticated)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
			return models.Diagnosis{}, fmt.Errorf("diagnosis failed (%d): %s", resp.StatusCode, eb.Error)
		}
		return models.Diagnosis{}, fmt.Errorf("diagnosis failed (%d)", resp.StatusCode)
	}

	return Parse(body)
}

// DiagnoseFile reads an image from disk and submits it.
func (c *Client) DiagnoseFile(ctx context.Context, path string, date time.Time) (models.Diagnosis, error) {
	data, mimeType, err := ReadImage(path)
	if err != nil {
		return models.Diagnosis{}, err
	}
	return c.Diagnose(ctx, data, mimeType, date)
}

// ReadImage loads an image file and returns it downscaled and re-encoded as
// JPEG, ready for upload.
func ReadImage(path string) ([]byte, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if info.Size() > constants.MaxScanImageBytes {
		return nil, "", fmt.Errorf("%w: %s is %d bytes", ErrImageTooLarge, path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if _, err := DetectMimeType(data, path); err != nil {
		return nil, "", err
	}
	upload, err := PrepareUpload(data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to prepare %s: %w", path, err)
	}
	return upload, "image/jpeg", nil
}

// DetectMimeType sniffs the content and falls back to the file extension.
func DetectMimeType(data []byte, name string) (string, error) {
	sniffed := http.DetectContentType(data)
	if supportedTypes[sniffed] {
		return sniffed, nil
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		if mt, _, err := mime.ParseMediaType(byExt); err == nil && supportedTypes[mt] {
			return mt, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, sniffed)
}

// Parse decodes a diagnosis body, tolerating a surrounding markdown code fence.
func Parse(body []byte) (models.Diagnosis, error) {
	text := stripFences(string(body))

	var d models.Diagnosis
	if err := json.Unmarshal([]byte(text), &d); err != nil {
		return models.Diagnosis{}, fmt.Errorf("failed to decode diagnosis: %w", err)
	}
	if err := d.Validate(); err != nil {
		return models.Diagnosis{}, err
	}
	return d, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// drop the info string, e.g. "json"
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
