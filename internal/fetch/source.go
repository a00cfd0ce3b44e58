package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/instastory/internal/logger"
	"github.com/yildizm/instastory/internal/payload"
)

// DefaultEndpoint is where the analytics producer serves its document
const DefaultEndpoint = "http://localhost:8000/api/stats"

// RequestIDHeader carries the attempt id to the producer
const RequestIDHeader = "X-Request-Id"

// maxDocumentSize bounds how much of a response or export is read
const maxDocumentSize = 32 << 20

// Source obtains one analytics payload per call
type Source interface {
	Fetch(ctx context.Context) (*payload.Payload, error)
	Describe() string
}

// HTTPSource fetches the payload from a remote endpoint
type HTTPSource struct {
	endpoint *url.URL
	client   *http.Client
	log      *logger.Logger
}

// NewHTTPSource creates a source for endpoint with a per-request timeout
func NewHTTPSource(endpoint string, timeout time.Duration, log *logger.Logger) (*HTTPSource, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", endpoint)
	}
	if log == nil {
		log = logger.Discard()
	}
	return &HTTPSource{
		endpoint: u,
		client:   &http.Client{Timeout: timeout},
		log:      log.WithComponent("fetch"),
	}, nil
}

// Describe returns the endpoint URL
func (s *HTTPSource) Describe() string {
	return s.endpoint.String()
}

// Fetch performs a single GET request. Non-success statuses and documents
// carrying an error field are both reported as *Error.
func (s *HTTPSource) Fetch(ctx context.Context) (*payload.Payload, error) {
	source := s.endpoint.String()
	requestID := uuid.NewString()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, http.NoBody)
	if err != nil {
		return nil, newError(ErrTypeNetwork, source, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	s.log.DebugWithFields("requesting payload", []logger.Field{logger.F("request_id", requestID), logger.F("url", source)})

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.WarnWithFields("request failed", []logger.Field{logger.F("request_id", requestID), logger.Error(err)})
		return nil, newError(ErrTypeNetwork, source, "Failed to fetch data", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body := io.LimitReader(resp.Body, maxDocumentSize)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fe := newError(ErrTypeStatus, source, "Failed to fetch data", nil)
		fe.StatusCode = resp.StatusCode
		var errorResp struct {
			Error string `json:"error"`
		}
		if data, readErr := io.ReadAll(body); readErr == nil && json.Unmarshal(data, &errorResp) == nil && errorResp.Error != "" {
			fe.Message = errorResp.Error
		}
		s.log.WarnWithFields("producer returned non-success status", []logger.Field{
			logger.F("request_id", requestID), logger.F("status", resp.StatusCode),
		})
		return nil, fe
	}

	p, err := parse(body, source)
	if err != nil {
		return nil, err
	}

	s.log.InfoWithFields("payload loaded", []logger.Field{
		logger.F("request_id", requestID), logger.Duration(time.Since(start)), logger.Count(len(p.TopChatted)),
	})
	return p, nil
}

// FileSource reads the payload from a local export
type FileSource struct {
	path string
	log  *logger.Logger
}

// NewFileSource creates a source for a JSON export on disk
func NewFileSource(path string, log *logger.Logger) (*FileSource, error) {
	if err := validateExportPath(path); err != nil {
		return nil, fmt.Errorf("invalid payload file: %w", err)
	}
	if log == nil {
		log = logger.Discard()
	}
	return &FileSource{path: filepath.Clean(path), log: log.WithComponent("fetch")}, nil
}

// Describe returns the export path
func (s *FileSource) Describe() string {
	return s.path
}

// Path returns the export path
func (s *FileSource) Path() string {
	return s.path
}

// Fetch reads and decodes the export
func (s *FileSource) Fetch(ctx context.Context) (*payload.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, newError(ErrTypeIO, s.path, "Failed to read data", err)
	}

	// #nosec G304 - path is validated by validateExportPath() in NewFileSource
	f, err := os.Open(s.path)
	if err != nil {
		msg := "Failed to read data"
		if errors.Is(err, os.ErrNotExist) {
			msg = fmt.Sprintf("No analytics export found at %s", s.path)
		}
		return nil, newError(ErrTypeIO, s.path, msg, err)
	}
	defer func() { _ = f.Close() }()

	p, err := parse(io.LimitReader(f, maxDocumentSize), s.path)
	if err != nil {
		return nil, err
	}
	s.log.DebugWithFields("payload loaded", []logger.Field{logger.F("path", s.path)})
	return p, nil
}

// parse decodes and validates a document. The builder assumes valid input,
// so every shape problem is turned into a fetch failure here.
func parse(r io.Reader, source string) (*payload.Payload, error) {
	p, err := payload.Decode(r)
	if err != nil {
		return nil, newError(ErrTypeDecode, source, "Received malformed analytics data", err)
	}
	if p.Error != "" {
		return nil, newError(ErrTypeRemote, source, p.Error, nil)
	}
	if err := p.Validate(); err != nil {
		return nil, newError(ErrTypeValidation, source, "Received invalid analytics data", err)
	}
	return p, nil
}

// validateExportPath validates that a payload path is safe to read
func validateExportPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)
	for _, elem := range strings.Split(filepath.ToSlash(cleanPath), "/") {
		if elem == ".." {
			return fmt.Errorf("path traversal not allowed")
		}
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".json" {
		return fmt.Errorf("payload file must have .json extension")
	}
	return nil
}
