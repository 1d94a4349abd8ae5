package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/pkg/apperror"
	"prep-tool-be/internal/pkg/logger"
	"prep-tool-be/pkg/importer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const revealDeck = `<html><head><script src="reveal.js"></script></head><body>
<div class="reveal"><div class="slides">
<section><h1>Launch plan</h1><p>Q3 review</p></section>
<section><h2>Market</h2><p>Growing fast</p></section>
</div></div></body></html>`

func TestImportService(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "deck.html"), []byte(revealDeck), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("Notes\n# Point\ndetail"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "image.png"), []byte{0x89}, 0o644))

	sessions, pub := newTestSessionService(t)
	svc := NewImportService(sessions, root, logger.NewNopLogger())
	ctx := context.Background()

	t.Run("scan lists importable files by name", func(t *testing.T) {
		res, err := svc.Scan(ctx, &dto.ScanFolderRequest{Folder: root})
		require.NoError(t, err)
		require.Len(t, res.Files, 2)
		assert.Equal(t, "deck.html", res.Files[0].Name)
		assert.Equal(t, importer.SourceRevealJS, res.Files[0].Type)
		assert.Equal(t, importer.SourceText, res.Files[1].Type)
	})

	t.Run("folder outside the root is rejected", func(t *testing.T) {
		_, err := svc.Scan(ctx, &dto.ScanFolderRequest{Folder: filepath.Dir(root)})
		assert.True(t, errors.Is(err, apperror.ErrValidation))
	})

	t.Run("filename resolves without extension", func(t *testing.T) {
		res, err := svc.Preview(ctx, &dto.ImportRequest{Folder: root, Filename: "deck"})
		require.NoError(t, err)
		assert.Equal(t, importer.SourceRevealJS, res.SourceType)
		assert.Equal(t, "Launch plan", res.Session.Title)
	})

	tests := []struct {
		name    string
		req     dto.ImportRequest
		wantErr error
	}{
		{name: "missing file", req: dto.ImportRequest{Folder: root, Filename: "nope"}, wantErr: apperror.ErrNotFound},
		{name: "unsupported extension", req: dto.ImportRequest{Folder: root, Filename: "image.png"}, wantErr: apperror.ErrUnsupportedFile},
		{name: "path in filename", req: dto.ImportRequest{Folder: root, Filename: "../deck.html"}, wantErr: apperror.ErrValidation},
		{name: "nothing to import", req: dto.ImportRequest{}, wantErr: apperror.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Preview(ctx, &tt.req)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	t.Run("create stores the parsed session", func(t *testing.T) {
		res, err := svc.Create(ctx, &dto.ImportRequest{Content: "Talk\n# Hook\nA story", TypeHint: "pitch"})
		require.NoError(t, err)

		s, err := sessions.Get(ctx, res.Id)
		require.NoError(t, err)
		assert.Equal(t, "Talk", s.Title)
		assert.NotNil(t, s.PitchVariants)
		assert.Contains(t, pub.types(), EventSessionImported)
	})
}
