package importer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"prep-tool-be/internal/entity"
)

func keyMessages(s *entity.Session) []string {
	msgs := []string{}
	for _, st := range s.StatsBanner {
		msgs = append(msgs, fmt.Sprintf("%s — %s", st.Value, st.Label))
	}
	for i, tp := range s.TalkingPoints {
		if i == 5 {
			break
		}
		if tp.Label != "" {
			msgs = append(msgs, tp.Label)
		}
	}
	return msgs
}

// generatePracticeQuestions drafts an overview question, a stats question, one
// question per talking point and a closing impact question. Questions that end
// up with no points are dropped.
func generatePracticeQuestions(s *entity.Session) []entity.PracticeQuestion {
	qs := []entity.PracticeQuestion{{
		Q:      "In one sentence, what is this presentation about?",
		Points: []string{s.Title, s.Subtitle},
	}}

	if len(s.StatsBanner) > 0 {
		var points []string
		for i, st := range s.StatsBanner {
			if i == 6 {
				break
			}
			points = append(points, fmt.Sprintf("%s — %s", st.Value, st.Label))
		}
		qs = append(qs, entity.PracticeQuestion{Q: "What are the key statistics that support your argument?", Points: points})
	}

	for _, tp := range s.TalkingPoints {
		if tp.Label == "" {
			continue
		}
		q := tp.Question
		if q == "" {
			q = "Explain the section on: " + tp.Label
		}
		qs = append(qs, entity.PracticeQuestion{Q: q, Points: pointsFromNote(tp.Note)})
	}

	var impact []string
	for i, msg := range s.KeyMessages {
		if i == 4 {
			break
		}
		impact = append(impact, "Key message: "+msg)
	}
	qs = append(qs, entity.PracticeQuestion{Q: "What is the broader impact or next step?", Points: impact})

	out := make([]entity.PracticeQuestion, 0, len(qs))
	for _, q := range qs {
		q.Points = entity.DropBlank(q.Points)
		if len(q.Points) > 0 {
			out = append(out, q)
		}
	}
	return out
}

// pointsFromNote pulls up to six bullet points out of a note: list items first,
// then key-stat spans, then long paragraphs.
func pointsFromNote(note string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(note))
	if err != nil {
		return nil
	}

	var points []string
	collect := func(selector string, accept func(string) (string, bool)) {
		doc.Find(selector).Each(func(_ int, el *goquery.Selection) {
			if t, ok := accept(textOf(el)); ok {
				points = append(points, t)
			}
		})
	}
	nonEmpty := func(t string) (string, bool) { return t, t != "" }

	collect("li", nonEmpty)
	if len(points) == 0 {
		collect(".key-stat", nonEmpty)
	}
	if len(points) == 0 {
		collect("p", func(t string) (string, bool) { return truncate(t, 120), len(t) > 15 })
	}
	if len(points) > 6 {
		points = points[:6]
	}
	return points
}

func generateTips(s *entity.Session) []string {
	tips := []string{
		"Open strong: lead with your most compelling stat or fact",
		fmt.Sprintf("Know your %d talking points cold — practice transitions between them", len(s.TalkingPoints)),
	}
	if len(s.StatsBanner) > 0 {
		top := s.StatsBanner[0]
		tips = append(tips, fmt.Sprintf("Memorize the key number: %s (%s)", top.Value, top.Label))
	}
	return append(tips,
		"Make eye contact with the panel — don't read your slides",
		"Keep answers concise. If they want more detail, they'll ask",
		"Have your elevator pitch ready (30-second version)",
		"Anticipate tough questions and prepare calm, evidence-based answers",
		"End with a clear call to action — what do you want them to do?",
	)
}

// generatePitchVariants drafts the three timed scripts from the headline
// stats and the first talking points.
func generatePitchVariants(s *entity.Session) *entity.PitchVariants {
	var facts []string
	for i, st := range s.StatsBanner {
		if i == 3 {
			break
		}
		facts = append(facts, st.Value+" "+st.Label)
	}
	var topics []string
	for i, tp := range s.TalkingPoints {
		if i == 3 {
			break
		}
		topics = append(topics, tp.Label)
	}

	factsStr := ""
	if len(facts) > 0 {
		factsStr = strings.Join(facts, ". ") + "."
	}
	topicsStr := strings.Join(topics, ", ")

	var thirty strings.Builder
	fmt.Fprintf(&thirty, "%s. %s. ", s.Title, s.Subtitle)
	if factsStr != "" {
		fmt.Fprintf(&thirty, "Key facts: %s ", factsStr)
	}
	thirty.WriteString("This presentation covers the problem, our solution, and the path forward.")

	var sixty strings.Builder
	fmt.Fprintf(&sixty, "%s: %s.\n\n", s.Title, s.Subtitle)
	if factsStr != "" {
		fmt.Fprintf(&sixty, "The data is clear — %s\n\n", factsStr)
	}
	if topicsStr != "" {
		fmt.Fprintf(&sixty, "We address this through: %s.\n\n", topicsStr)
	}
	sixty.WriteString("The result is an evidence-based approach that delivers actionable outcomes.")

	var two strings.Builder
	fmt.Fprintf(&two, "Let me walk you through %s.\n\n", s.Title)
	if s.Subtitle != "" {
		fmt.Fprintf(&two, "%s.\n\n", s.Subtitle)
	}
	if factsStr != "" {
		fmt.Fprintf(&two, "Here are the numbers that matter: %s\n\n", factsStr)
	}
	for i, tp := range s.TalkingPoints {
		if i == 5 {
			break
		}
		fmt.Fprintf(&two, "%s: %s\n\n", tp.Label, truncate(stripHTML(tp.Note), 200))
	}
	two.WriteString("That's what we're building. Thank you.")

	return &entity.PitchVariants{
		ThirtySec: thirty.String(),
		SixtySec:  sixty.String(),
		TwoMin:    two.String(),
	}
}
