package editor

import (
	"strings"

	"prep-tool-be/internal/entity"
)

// ParseKeyPoints splits a textarea into one point per line, dropping blank lines.
func ParseKeyPoints(text string) []string {
	return entity.DropBlank(splitLines(text))
}

// ParseCardItems reads one "label | value" item per line. A line without a
// separator yields an empty value; anything after a second separator is ignored.
func ParseCardItems(text string) []entity.CardItem {
	items := []entity.CardItem{}
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "|")
		item := entity.CardItem{Label: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			item.Value = strings.TrimSpace(parts[1])
		}
		items = append(items, item)
	}
	return items
}

// FormatCardItems is the inverse of ParseCardItems, used to prefill the form.
func FormatCardItems(items []entity.CardItem) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		if it.Value == "" {
			lines = append(lines, it.Label)
			continue
		}
		lines = append(lines, it.Label+" | "+it.Value)
	}
	return strings.Join(lines, "\n")
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
