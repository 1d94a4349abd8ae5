package importer

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"prep-tool-be/internal/entity"
)

// parseHTML turns each h1-h3 heading with following content into a talking point.
func parseHTML(raw, filename string) *Result {
	res := &Result{SourceType: SourceHTML, Confidence: 0.6}
	s := entity.NewEmptySession(entity.SessionTypePresentation)
	s.Format = "Imported from HTML"
	res.Session = s

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		res.note("markup could not be read: %v", err)
		res.Confidence = 0.1
		s.Title = fallbackTitle(filename)
		return res
	}

	titleEl := doc.Find("title").First()
	if titleEl.Length() == 0 {
		titleEl = doc.Find("h1").First()
	}
	if titleEl.Length() > 0 {
		s.Title = textOf(titleEl)
	} else {
		s.Title = fallbackTitle(filename)
	}

	doc.Find("h1, h2, h3").Each(func(_ int, h *goquery.Selection) {
		heading := textOf(h)
		var content []string
		h.NextUntil("h1, h2, h3").Each(func(_ int, sib *goquery.Selection) {
			if t := textOf(sib); t != "" {
				content = append(content, html.EscapeString(t))
			}
		})
		if heading == "" || len(content) == 0 {
			return
		}
		if len(content) > 5 {
			content = content[:5]
		}
		s.TalkingPoints = append(s.TalkingPoints, sectionPoint(heading, len(s.TalkingPoints)+1,
			"<p>"+strings.Join(content, "</p><p>")+"</p>"))
	})

	s.Tips = generateTips(s)
	s.PracticeQuestions = generatePracticeQuestions(s)
	return res
}

func sectionPoint(heading string, n int, note string) entity.TalkingPoint {
	return entity.TalkingPoint{
		Id:       slugify(heading),
		Label:    heading,
		Number:   fmt.Sprintf("Section %d", n),
		Timing:   "~1-2 min",
		Question: "Tell me about: " + heading,
		Note:     note,
		Source:   "Imported",
		TipDo:    "Focus on the main takeaway.",
		TipDont:  "Don't go off-topic.",
	}
}
