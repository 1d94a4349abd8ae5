package dto

import "prep-tool-be/pkg/editor"

type SaveCollectionRequest struct {
	Rows []editor.Row `json:"rows"`
}

type EditorDraftResponse struct {
	Draft *editor.Draft `json:"draft"`
}

// Toast is the transient confirmation or error shown after a save.
type Toast struct {
	Kind           string `json:"kind"` // "success" or "error"
	Message        string `json:"message"`
	DismissAfterMs int    `json:"dismiss_after_ms,omitempty"`
}

type SaveCollectionResponse struct {
	Draft *editor.Draft `json:"draft"`
	Toast Toast         `json:"toast"`
}
