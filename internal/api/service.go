package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
)

// Service groups the backend operations the client consumes.
//
// Contract:
//   - Predict: submit an image (plus optional symptoms) as a multipart
//     upload and receive a prediction payload.
//   - Report: fetch a stored report by identifier. The report shape is not
//     modeled here; it is passed through as raw JSON.
//   - DownloadReport: fetch a report file and store it locally. No server
//     round trip beyond URL resolution.
//   - Ask: submit a chat question with optional context string.
//   - Health: probe service status/version.
//
// Every method returns the envelope for application-level outcomes; only
// transport failures surface as errors.
type Service interface {
	Predict(ctx context.Context, imagePath, symptoms string) (*Response[Prediction], error)
	Report(ctx context.Context, reportID string) (*Response[json.RawMessage], error)
	DownloadReport(ctx context.Context, reportPath, destDir string) (string, error)
	Ask(ctx context.Context, question, chatContext string) (*Response[ChatAnswer], error)
	Health(ctx context.Context) (*Response[Health], error)
}

// HTTPService is the Service implementation over the HTTP client wrapper.
type HTTPService struct {
	client *Client
}

func NewService(client *Client) *HTTPService {
	return &HTTPService{client: client}
}

// Predict uploads the image at imagePath as the multipart field "image";
// symptoms, when non-empty, is added as the field "symptoms".
func (s *HTTPService) Predict(ctx context.Context, imagePath, symptoms string) (*Response[Prediction], error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("image", filepath.Base(imagePath))
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	if symptoms != "" {
		if err := mw.WriteField("symptoms", symptoms); err != nil {
			return nil, fmt.Errorf("writing symptoms field: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	return Upload[Prediction](ctx, s.client, "/api/v1/xray/predict", &buf, mw.FormDataContentType())
}

func (s *HTTPService) Report(ctx context.Context, reportID string) (*Response[json.RawMessage], error) {
	return Get[json.RawMessage](ctx, s.client, "/api/v1/xray/report/"+reportID)
}

// DownloadReport resolves reportPath against the base URL, streams the file
// into destDir and returns the saved path. The file name is taken from the
// URL; "report.pdf" is used when it has none.
func (s *HTTPService) DownloadReport(ctx context.Context, reportPath, destDir string) (string, error) {
	url := s.client.FileURL(reportPath)

	body, err := s.client.fetch(ctx, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	name := path.Base(reportPath)
	if name == "." || name == "/" || name == "" {
		name = "report.pdf"
	}
	dest := filepath.Join(destDir, name)

	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, body); err != nil {
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	return dest, nil
}

type askRequest struct {
	Question string `json:"question"`
	Context  string `json:"context,omitempty"`
}

func (s *HTTPService) Ask(ctx context.Context, question, chatContext string) (*Response[ChatAnswer], error) {
	return Post[ChatAnswer](ctx, s.client, "/api/v1/chat/ask", askRequest{Question: question, Context: chatContext})
}

func (s *HTTPService) Health(ctx context.Context) (*Response[Health], error) {
	return Get[Health](ctx, s.client, "/api/v1/health")
}
