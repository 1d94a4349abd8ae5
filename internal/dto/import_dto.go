package dto

import (
	"prep-tool-be/internal/entity"
	"prep-tool-be/pkg/importer"
)

type ScanFolderRequest struct {
	Folder string `json:"folder" validate:"required"`
}

type ScanFolderResponse struct {
	Folder string                    `json:"folder"`
	Files  []importer.ImportableFile `json:"files"`
}

// ImportRequest names a file inside a folder, or carries the content inline.
type ImportRequest struct {
	Folder   string             `json:"folder"`
	Filename string             `json:"filename"`
	Content  string             `json:"content"`
	TypeHint entity.SessionType `json:"type_hint" validate:"omitempty,oneof=interview presentation pitch"`
}

type ImportPreviewResponse struct {
	Result *importer.Result `json:"result"`
}

type ImportCreateResponse struct {
	Id         string   `json:"id"`
	Confidence float64  `json:"confidence"`
	Notes      []string `json:"notes"`
}
