package importer

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"prep-tool-be/internal/entity"
)

var (
	bigTextStyleRe = regexp.MustCompile(`font-size:\s*2\.\d+em|font-weight:\s*[789]00`)
	bareNumberRe   = regexp.MustCompile(`^\$?\d[\d,]*%?$`)
)

// Stats whose label names one of these are budget line items, not headline figures.
var budgetLineWords = []string{"personnel", "conference", "fringe", "panel event", "data ("}

var (
	pitchWords     = []string{"pitch", "proposal", "funding", "grant", "invest", "seed", "budget"}
	interviewWords = []string{"interview", "hiring", "candidate"}
)

type slideCard struct{ title, detail string }

type slideStep struct{ title, detail, timing string }

type teamMember struct{ name, role, badge string }

type budgetItem struct{ label, amount string }

type slide struct {
	index        int
	title        string
	subtitle     string
	heading      string
	sectionLabel string
	date         string
	content      string
	stats        []entity.Stat
	cards        []slideCard
	steps        []slideStep
	team         []teamMember
	budget       []budgetItem
}

func parseRevealJS(raw string) *Result {
	res := &Result{SourceType: SourceRevealJS, Confidence: 0.9}
	s := entity.NewEmptySession(entity.SessionTypePresentation)
	res.Session = s

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		res.note("markup could not be read: %v", err)
		res.Confidence = 0.1
		return res
	}

	sel := doc.Find("section")
	if sel.Length() == 0 {
		sel = doc.Find(".slides > *")
	}
	if sel.Length() == 0 {
		res.note("no slides found")
		res.Confidence = 0.2
	}

	slides := make([]slide, 0, sel.Length())
	sel.Each(func(i int, el *goquery.Selection) {
		slides = append(slides, parseSlide(el, i))
	})
	if len(slides) > 0 {
		s.Title = slides[0].title
		s.Subtitle = slides[0].subtitle
		s.Date = slides[0].date
	}

	s.Type = detectType(slides)
	if s.Type != entity.SessionTypePresentation {
		res.note("type detected from keywords: %s", s.Type)
	}

	skipped := 0
	for i, sl := range slides {
		for _, st := range sl.stats {
			if isBudgetLine(st) {
				skipped++
				continue
			}
			s.StatsBanner = append(s.StatsBanner, st)
		}

		if i > 0 && sl.heading != "" && sl.content != "" {
			if tp, ok := slideToTalkingPoint(sl); ok {
				s.TalkingPoints = append(s.TalkingPoints, tp)
			}
		}

		if len(sl.cards) > 0 {
			title := sl.heading
			if title == "" {
				title = fmt.Sprintf("Slide %d", i+1)
			}
			card := entity.CheatsheetCard{Icon: pickIcon(sl.heading), Title: title, Items: []entity.CardItem{}}
			for _, c := range sl.cards {
				card.Items = append(card.Items, entity.CardItem{Label: c.title, Value: c.detail})
			}
			s.CheatsheetCards = append(s.CheatsheetCards, card)
		}

		slideTitle := sl.heading
		if slideTitle == "" {
			slideTitle = sl.title
		}
		s.Slides = append(s.Slides, entity.Slide{Title: slideTitle, Body: sl.content})
	}
	if skipped > 0 {
		res.note("%d budget line items left out of the stats banner", skipped)
	}

	before := len(s.StatsBanner)
	s.StatsBanner = dedupStats(s.StatsBanner)
	if d := before - len(s.StatsBanner); d > 0 {
		res.note("%d duplicate stats dropped", d)
	}

	s.KeyMessages = keyMessages(s)
	s.PracticeQuestions = generatePracticeQuestions(s)
	s.Tips = generateTips(s)
	s.Format = fmt.Sprintf("Presentation (%d slides)", len(slides))
	return res
}

func detectType(slides []slide) entity.SessionType {
	var b strings.Builder
	for _, sl := range slides {
		b.WriteString(strings.Join([]string{sl.title, sl.subtitle, sl.sectionLabel, sl.content}, " "))
		b.WriteByte(' ')
	}
	all := strings.ToLower(b.String())
	switch {
	case containsAny(all, pitchWords...):
		return entity.SessionTypePitch
	case containsAny(all, interviewWords...):
		return entity.SessionTypeInterview
	}
	return entity.SessionTypePresentation
}

func isBudgetLine(st entity.Stat) bool {
	return strings.HasPrefix(strings.TrimSpace(st.Value), "$") &&
		containsAny(strings.ToLower(st.Label), budgetLineWords...)
}

// dedupStats keeps the first stat for each value.
func dedupStats(stats []entity.Stat) []entity.Stat {
	seen := map[string]bool{}
	out := make([]entity.Stat, 0, len(stats))
	for _, st := range stats {
		key := strings.TrimSpace(st.Value)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, st)
	}
	return out
}

func parseSlide(el *goquery.Selection, index int) slide {
	sl := slide{index: index}

	if label := el.Find(".section-label").First(); label.Length() > 0 {
		sl.sectionLabel = textOf(label)
		sl.heading = sl.sectionLabel
	}
	if h1 := el.Find("h1").First(); h1.Length() > 0 {
		sl.title = textOf(h1)
	}
	if h2 := el.Find("h2").First(); h2.Length() > 0 {
		if sl.heading == "" {
			sl.heading = textOf(h2)
		}
		if index == 0 && sl.title == "" {
			sl.title = textOf(h2)
		}
	}

	if index == 0 {
		el.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
			text := textOf(p)
			if len(text) > 10 && !looksLikeDate(text) && !looksLikeName(text) {
				sl.subtitle = text
				return false
			}
			return true
		})
		el.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
			if text := textOf(p); looksLikeDate(text) {
				sl.date = text
				return false
			}
			return true
		})
	}

	el.Find(".stat-box").Each(func(_ int, box *goquery.Selection) {
		num, lbl := box.Find(".stat-num").First(), box.Find(".stat-lbl").First()
		if num.Length() > 0 && lbl.Length() > 0 {
			sl.stats = append(sl.stats, entity.Stat{Value: textOf(num), Label: textOf(lbl)})
		}
	})
	if len(sl.stats) == 0 {
		sl.stats = inlineStats(el)
	}

	el.Find(".card").Each(func(_ int, card *goquery.Selection) {
		if h4 := card.Find("h4").First(); h4.Length() > 0 {
			sl.cards = append(sl.cards, slideCard{title: textOf(h4), detail: firstText(card, "p")})
		}
	})
	el.Find(".step").Each(func(_ int, step *goquery.Selection) {
		if h4 := step.Find("h4").First(); h4.Length() > 0 {
			sl.steps = append(sl.steps, slideStep{
				title:  textOf(h4),
				detail: firstText(step, "p"),
				timing: firstText(step, ".months"),
			})
		}
	})
	el.Find(".team-card").Each(func(_ int, tc *goquery.Selection) {
		if h4 := tc.Find("h4").First(); h4.Length() > 0 {
			sl.team = append(sl.team, teamMember{
				name:  textOf(h4),
				role:  firstText(tc, ".role"),
				badge: firstText(tc, ".badge"),
			})
		}
	})
	el.Find(".bar-row").Each(func(_ int, row *goquery.Selection) {
		spans := row.Find("span")
		if spans.Length() >= 2 {
			sl.budget = append(sl.budget, budgetItem{label: textOf(spans.First()), amount: textOf(spans.Last())})
		}
	})
	el.Find(".pw-badge").Each(func(_ int, badge *goquery.Selection) {
		if h4 := badge.Find("h4").First(); h4.Length() > 0 {
			sl.cards = append(sl.cards, slideCard{title: textOf(h4), detail: firstText(badge, "p")})
		}
	})

	var parts []string
	el.Find("p, li").Each(func(_ int, p *goquery.Selection) {
		if t := textOf(p); len(t) > 15 && len(parts) < 8 {
			parts = append(parts, t)
		}
	})
	sl.content = strings.Join(parts, " ")

	el.Find(".qa-tile").Each(func(_ int, tile *goquery.Selection) {
		if t := textOf(tile); t != "" {
			sl.cards = append(sl.cards, slideCard{title: t, detail: "Discussion topic"})
		}
	})
	return sl
}

// inlineStats finds big styled numbers and pairs each with the first sibling
// that reads like a description.
func inlineStats(el *goquery.Selection) []entity.Stat {
	var stats []entity.Stat
	el.Find("[style]").Each(func(_ int, styled *goquery.Selection) {
		style, _ := styled.Attr("style")
		if !bigTextStyleRe.MatchString(style) {
			return
		}
		text := textOf(styled)
		if !bareNumberRe.MatchString(text) {
			return
		}

		desc := ""
		styled.Siblings().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
			if t := textOf(sib); len(t) > 5 && t != text {
				desc = t
				return false
			}
			return true
		})
		if desc != "" {
			stats = append(stats, entity.Stat{Value: text, Label: desc})
		}
	})
	return stats
}

func slideToTalkingPoint(sl slide) (entity.TalkingPoint, bool) {
	heading := sl.heading
	if heading == "" {
		heading = sl.sectionLabel
	}
	if heading == "" {
		return entity.TalkingPoint{}, false
	}

	e := html.EscapeString
	var note []string
	if sl.sectionLabel != "" {
		note = append(note, fmt.Sprintf("<p><strong>%s</strong></p>", e(sl.sectionLabel)))
	}
	for _, st := range sl.stats {
		note = append(note, fmt.Sprintf(`<p><span class="key-stat">%s</span> — %s</p>`, e(st.Value), e(st.Label)))
	}
	for _, step := range sl.steps {
		line := fmt.Sprintf("<p><strong>%s</strong>: %s", e(step.title), e(step.detail))
		if step.timing != "" {
			line += fmt.Sprintf(" <em>(%s)</em>", e(step.timing))
		}
		note = append(note, line+"</p>")
	}
	if len(sl.cards) > 0 {
		var items strings.Builder
		for _, c := range sl.cards {
			fmt.Fprintf(&items, "<li><strong>%s</strong>: %s</li>", e(c.title), e(c.detail))
		}
		note = append(note, "<ul>"+items.String()+"</ul>")
	}
	for _, tm := range sl.team {
		line := fmt.Sprintf(`<p><span class="key-stat">%s</span> — %s`, e(tm.name), e(tm.role))
		if tm.badge != "" {
			line += fmt.Sprintf(" (%s)", e(tm.badge))
		}
		note = append(note, line+"</p>")
	}
	if len(sl.budget) > 0 {
		var items strings.Builder
		for _, b := range sl.budget {
			fmt.Fprintf(&items, "<li>%s: <strong>%s</strong></li>", e(b.label), e(b.amount))
		}
		note = append(note, "<p><strong>Budget Breakdown:</strong></p><ul>"+items.String()+"</ul>")
	}
	if len(note) == 0 && sl.content != "" {
		note = append(note, "<p>"+e(truncate(sl.content, 500))+"</p>")
	}
	if len(note) == 0 {
		return entity.TalkingPoint{}, false
	}

	return entity.TalkingPoint{
		Id:       slugify(heading),
		Label:    heading,
		Number:   fmt.Sprintf("Slide %d", sl.index+1),
		Timing:   "~1-2 min",
		Question: "Tell me about: " + heading,
		Note:     strings.Join(note, "\n"),
		Source:   "Imported from presentation",
		TipDo:    "Lead with the key insight from this section.",
		TipDont:  "Don't read slides verbatim — speak naturally.",
	}, true
}
