package importer

import (
	"html"
	"strings"

	"prep-tool-be/internal/entity"
)

// parseText reads markdown-ish notes: the first line is the title, "#" lines
// and "===" / "---" underlines start sections.
func parseText(raw, filename string) *Result {
	res := &Result{SourceType: SourceText, Confidence: 0.5}
	s := entity.NewEmptySession(entity.SessionTypePresentation)
	s.Format = "Imported from text"
	res.Session = s

	lines := strings.Split(strings.ReplaceAll(strings.TrimSpace(raw), "\r\n", "\n"), "\n")
	s.Title = strings.TrimSpace(strings.TrimLeft(lines[0], "#"))
	if s.Title == "" {
		s.Title = fallbackTitle(filename)
	}

	type section struct {
		heading string
		content []string
	}
	var (
		sections []section
		heading  string
		content  []string
	)
	flush := func() {
		if heading != "" && len(content) > 0 {
			sections = append(sections, section{heading, content})
		}
	}

	for _, line := range lines[1:] {
		stripped := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(stripped, "#"):
			flush()
			heading = strings.TrimSpace(strings.TrimLeft(stripped, "#"))
			content = nil
		case isUnderline(stripped):
			// the previous line was the heading text
			next := ""
			if len(content) > 0 {
				next = content[len(content)-1]
				content = content[:len(content)-1]
			}
			flush()
			heading = next
			content = nil
		case stripped != "":
			content = append(content, stripped)
		}
	}
	flush()

	for _, sec := range sections {
		escaped := make([]string, len(sec.content))
		for i, c := range sec.content {
			escaped[i] = html.EscapeString(c)
		}
		s.TalkingPoints = append(s.TalkingPoints, sectionPoint(sec.heading, len(s.TalkingPoints)+1,
			"<p>"+strings.Join(escaped, "<br>")+"</p>"))
	}

	s.Tips = generateTips(s)
	s.PracticeQuestions = generatePracticeQuestions(s)
	return res
}

func isUnderline(s string) bool {
	if len(s) <= 3 {
		return false
	}
	return strings.Trim(s, "=-") == ""
}
