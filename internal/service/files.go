package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"connectdemo/internal/model"
)

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrFileUnavailable = errors.New("file URL not available")
	ErrFileDownload    = errors.New("failed to download file from Stripe")
)

// FileContent is an open download. Callers must close Body.
type FileContent struct {
	model.ProviderFile
	Body io.ReadCloser
}

// FileService streams files uploaded to Stripe (logos, icons) through
// this backend.
type FileService struct {
	files  FileProvider
	client *http.Client
}

// fileHeaderTimeout bounds the wait for the download to start. The body
// itself streams for as long as the request context allows.
const fileHeaderTimeout = 10 * time.Second

func NewFileService(files FileProvider) *FileService {
	return newFileService(files, fileHeaderTimeout)
}

func newFileService(files FileProvider, headerTimeout time.Duration) *FileService {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = headerTimeout
	return &FileService{
		files:  files,
		client: &http.Client{Transport: transport},
	}
}

func (s *FileService) Open(ctx context.Context, fileID string) (FileContent, error) {
	if fileID == "" {
		return FileContent{}, ErrFileNotFound
	}

	f, err := s.files.GetFile(ctx, fileID)
	if err != nil {
		if IsMissing(err) {
			return FileContent{}, fmt.Errorf("%w: %v", ErrFileNotFound, err)
		}
		return FileContent{}, fmt.Errorf("get file: %w", err)
	}
	if f.URL == "" {
		return FileContent{}, ErrFileUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return FileContent{}, fmt.Errorf("create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return FileContent{}, fmt.Errorf("%w: %v", ErrFileDownload, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return FileContent{}, fmt.Errorf("%w: unexpected status %d", ErrFileDownload, resp.StatusCode)
	}

	f.Type = contentType(f.Type)
	if f.Filename == "" {
		f.Filename = fileID
	}
	return FileContent{ProviderFile: f, Body: resp.Body}, nil
}

// contentType maps Stripe's file type ("png", "pdf") to a MIME type.
func contentType(fileType string) string {
	if fileType == "" {
		return "application/octet-stream"
	}
	if t := mime.TypeByExtension("." + fileType); t != "" {
		return t
	}
	return fileType
}
