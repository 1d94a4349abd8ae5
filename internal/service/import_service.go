package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/pkg/apperror"
	"prep-tool-be/internal/pkg/logger"
	"prep-tool-be/pkg/importer"
)

type IImportService interface {
	Scan(ctx context.Context, req *dto.ScanFolderRequest) (*dto.ScanFolderResponse, error)
	Preview(ctx context.Context, req *dto.ImportRequest) (*importer.Result, error)
	Create(ctx context.Context, req *dto.ImportRequest) (*dto.ImportCreateResponse, error)
}

type importService struct {
	sessions ISessionService
	root     string
	logger   logger.ILogger
}

// NewImportService restricts folder access to root when root is non-empty.
func NewImportService(sessions ISessionService, root string, log logger.ILogger) IImportService {
	if root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}
	return &importService{sessions: sessions, root: root, logger: log}
}

func (s *importService) Scan(ctx context.Context, req *dto.ScanFolderRequest) (*dto.ScanFolderResponse, error) {
	folder, err := s.checkFolder(req.Folder)
	if err != nil {
		return nil, err
	}

	files, err := importer.ScanFolder(folder)
	if err != nil {
		return nil, fmt.Errorf("%w: folder not found", apperror.ErrNotFound)
	}
	return &dto.ScanFolderResponse{Folder: folder, Files: files}, nil
}

func (s *importService) Preview(ctx context.Context, req *dto.ImportRequest) (*importer.Result, error) {
	return s.parse(req)
}

func (s *importService) Create(ctx context.Context, req *dto.ImportRequest) (*dto.ImportCreateResponse, error) {
	res, err := s.parse(req)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.CreateFromImport(ctx, res)
	if err != nil {
		return nil, err
	}

	s.logger.Info("IMPORT", "Session imported", map[string]interface{}{
		"session_id":  session.Id,
		"source_type": string(res.SourceType),
		"confidence":  res.Confidence,
		"filename":    req.Filename,
	})
	return &dto.ImportCreateResponse{Id: session.Id, Confidence: res.Confidence, Notes: res.Notes}, nil
}

func (s *importService) parse(req *dto.ImportRequest) (*importer.Result, error) {
	if req.Content != "" {
		return importer.Parse(req.Content, importer.Hints{Filename: req.Filename, Type: req.TypeHint}), nil
	}

	if req.Folder == "" || req.Filename == "" {
		return nil, fmt.Errorf("%w: folder and filename, or content, are required", apperror.ErrValidation)
	}
	folder, err := s.checkFolder(req.Folder)
	if err != nil {
		return nil, err
	}
	if strings.ContainsAny(req.Filename, `/\`) {
		return nil, fmt.Errorf("%w: filename must not contain a path", apperror.ErrValidation)
	}

	path, ok := importer.ResolveFile(folder, req.Filename)
	if !ok {
		return nil, fmt.Errorf("%w: file not found, check the folder path and filename", apperror.ErrNotFound)
	}

	res, err := importer.ImportFile(path, req.TypeHint)
	if err != nil {
		if errors.Is(err, importer.ErrUnsupportedFile) {
			return nil, fmt.Errorf("%w: %v", apperror.ErrUnsupportedFile, err)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrNotFound, err)
	}
	return res, nil
}

// checkFolder resolves folder and keeps it inside the configured import root.
func (s *importService) checkFolder(folder string) (string, error) {
	abs, err := filepath.Abs(strings.TrimSpace(folder))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}
	if s.root == "" {
		return abs, nil
	}
	rel, err := filepath.Rel(s.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: folder is outside the import root", apperror.ErrValidation)
	}
	return abs, nil
}
