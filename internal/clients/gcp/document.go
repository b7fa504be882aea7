package gcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"

	"github.com/gradpath/gradpath-backend/internal/logger"
)

// ErrNotConfigured means the DOCAI_* env vars are absent. The OCR
// fallback is optional, so callers treat this as the feature being off
// rather than a fault.
var ErrNotConfigured = errors.New("Document AI is not configured")

// Document runs Google Document AI over raw uploads. It is the fallback
// for scanned advising sheets whose text layer the local extractors
// cannot read.
type Document interface {
	ProcessBytes(ctx context.Context, mimeType string, data []byte) (string, error)
	Close() error
}

type documentService struct {
	log       *logger.Logger
	docClient *documentai.DocumentProcessorClient
	processor string
}

func NewDocument(log *logger.Logger) (Document, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	slog := log.With("service", "gcp.Document")

	projectID := strings.TrimSpace(os.Getenv("DOCAI_PROJECT_ID"))
	processorID := strings.TrimSpace(os.Getenv("DOCAI_PROCESSOR_ID"))
	if projectID == "" || processorID == "" {
		return nil, ErrNotConfigured
	}

	location := strings.TrimSpace(os.Getenv("DOCAI_LOCATION"))
	if location == "" {
		location = "us"
	}
	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", location)

	ctx := context.Background()
	opts := append([]option.ClientOption{option.WithEndpoint(endpoint)}, ClientOptionsFromEnv()...)
	c, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("documentai client: %w", err)
	}

	version := strings.TrimSpace(os.Getenv("DOCAI_PROCESSOR_VERSION"))
	name := processorName(projectID, location, processorID, version)
	slog.Info("Document AI initialized", "endpoint", endpoint, "processor", name)

	return &documentService{
		log:       slog,
		docClient: c,
		processor: name,
	}, nil
}

func (s *documentService) Close() error {
	if s == nil || s.docClient == nil {
		return nil
	}
	return s.docClient.Close()
}

// ProcessBytes sends the document through the configured processor and
// returns the recognized text.
func (s *documentService) ProcessBytes(ctx context.Context, mimeType string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	if len(data) == 0 {
		return "", nil
	}
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	req := &documentaipb.ProcessRequest{
		Name: s.processor,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  data,
				MimeType: mimeType,
			},
		},
	}

	resp, err := s.docClient.ProcessDocument(ctx, req)
	if err != nil {
		return "", fmt.Errorf("documentai ProcessDocument: %w", err)
	}
	if resp == nil || resp.Document == nil {
		return "", nil
	}
	return strings.TrimSpace(resp.Document.Text), nil
}

func processorName(project, location, processorID, version string) string {
	base := fmt.Sprintf("projects/%s/locations/%s/processors/%s", project, location, processorID)
	if version != "" {
		return base + "/processorVersions/" + version
	}
	return base
}
