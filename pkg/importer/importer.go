// Package importer turns existing slide decks, HTML pages and text notes into
// session documents. Parsing is best effort: the result always carries a
// document, and Confidence/Notes say how much of it was actually recognised.
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"prep-tool-be/internal/entity"
)

type SourceType string

const (
	SourceRevealJS SourceType = "revealjs"
	SourceHTML     SourceType = "html"
	SourceText     SourceType = "text"
	SourceUnknown  SourceType = "unknown"
)

var ErrUnsupportedFile = errors.New("importer: unsupported file type")

// sniffBytes is how much of a file is inspected to tell reveal.js decks apart.
const sniffBytes = 5000

// Hints steer Parse when the caller knows more than the raw text shows.
type Hints struct {
	Filename   string
	SourceType SourceType
	Type       entity.SessionType
}

type Result struct {
	Session    *entity.Session `json:"session"`
	SourceType SourceType      `json:"source_type"`
	Confidence float64         `json:"confidence"`
	Notes      []string        `json:"notes"`
}

func (r *Result) note(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// DetectFileType classifies a file by extension and, for HTML, by a sniff of its head.
func DetectFileType(path string) (SourceType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return SourceUnknown, err
		}
		defer f.Close()

		head := make([]byte, sniffBytes)
		n, _ := f.Read(head)
		return sniffMarkup(string(head[:n])), nil
	case ".txt", ".md":
		return SourceText, nil
	}
	return SourceUnknown, nil
}

// DetectContent classifies in-memory content the same way DetectFileType does
// for files, falling back to a markup sniff when the filename says nothing.
func DetectContent(filename, content string) SourceType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		return sniffMarkup(head(content))
	case ".txt", ".md":
		return SourceText
	}

	lower := strings.ToLower(head(content))
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<body") || strings.Contains(lower, "<section") {
		return sniffMarkup(head(content))
	}
	return SourceText
}

func head(content string) string {
	if len(content) > sniffBytes {
		return content[:sniffBytes]
	}
	return content
}

func sniffMarkup(head string) SourceType {
	if strings.Contains(strings.ToLower(head), "reveal") || strings.Contains(head, `class="slides"`) {
		return SourceRevealJS
	}
	return SourceHTML
}

// ImportFile reads and parses one file. An empty sessionType lets the content decide.
func ImportFile(path string, sessionType entity.SessionType) (*Result, error) {
	source, err := DetectFileType(path)
	if err != nil {
		return nil, err
	}
	if source == SourceUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(path))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(strings.ToValidUTF8(string(raw), "�"), Hints{Filename: filepath.Base(path), SourceType: source, Type: sessionType}), nil
}

// Parse never fails: unrecognised input yields a document with metadata only.
func Parse(raw string, hints Hints) *Result {
	source := hints.SourceType
	if source == "" || source == SourceUnknown {
		source = DetectContent(hints.Filename, raw)
	}

	var res *Result
	switch source {
	case SourceRevealJS:
		res = parseRevealJS(raw)
	case SourceHTML:
		res = parseHTML(raw, hints.Filename)
	default:
		res = parseText(raw, hints.Filename)
	}

	if res.Session.Title == "" {
		res.Session.Title = fallbackTitle(hints.Filename)
	}
	if hints.Type.Valid() && hints.Type != res.Session.Type {
		res.note("type set to %s by caller (detected %s)", hints.Type, res.Session.Type)
		res.Session.Type = hints.Type
	}
	finish(res)
	return res
}

// finish shapes the document for its final type.
func finish(res *Result) {
	s := res.Session
	if s.Type == entity.SessionTypePitch {
		if s.PitchVariants == nil || *s.PitchVariants == (entity.PitchVariants{}) {
			s.PitchVariants = generatePitchVariants(s)
		}
	} else {
		s.PitchVariants = nil
		s.KeyMessages = nil
		s.Objections = nil
	}
	if s.Type != entity.SessionTypePresentation {
		s.Slides = nil
	}
	s.Normalize()

	if len(s.TalkingPoints) == 0 {
		res.note("no sections recognised; only metadata was imported")
		if res.Confidence > 0.2 {
			res.Confidence = 0.2
		}
	}
}

// ImportableFile is one scan hit.
type ImportableFile struct {
	Name string     `json:"name"`
	Type SourceType `json:"type"`
	Size string     `json:"size"`
	Path string     `json:"path"`
}

var importableExts = []string{"*.html", "*.htm", "*.txt", "*.md"}

// ScanFolder lists the importable files directly inside folder, sorted by name.
func ScanFolder(folder string) ([]ImportableFile, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", folder)
	}

	files := []ImportableFile{}
	for _, pattern := range importableExts {
		matches, err := filepath.Glob(filepath.Join(folder, pattern))
		if err != nil {
			return nil, err
		}
		for _, path := range matches {
			st, err := os.Stat(path)
			if err != nil || st.IsDir() {
				continue
			}
			ftype, err := DetectFileType(path)
			if err != nil {
				continue
			}
			files = append(files, ImportableFile{
				Name: filepath.Base(path),
				Type: ftype,
				Size: fmt.Sprintf("%.1f KB", float64(st.Size())/1024),
				Path: path,
			})
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// ResolveFile finds filename inside folder, trying it as given and then with
// the .html, .htm and .txt extensions.
func ResolveFile(folder, filename string) (string, bool) {
	for _, candidate := range []string{filename, filename + ".html", filename + ".htm", filename + ".txt"} {
		path := filepath.Join(folder, candidate)
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			return path, true
		}
	}
	return "", false
}
