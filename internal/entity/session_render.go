package entity

import "html"

// RenderSafe returns a copy ready for HTML display: every text field is
// escaped except talking point notes, practice question points and slide
// bodies, which are trusted fragments.
func (s *Session) RenderSafe() *Session {
	c := s.Clone()
	esc := html.EscapeString

	c.Title = esc(c.Title)
	c.Subtitle = esc(c.Subtitle)
	c.Date = esc(c.Date)
	c.Format = esc(c.Format)

	for i := range c.StatsBanner {
		c.StatsBanner[i].Value = esc(c.StatsBanner[i].Value)
		c.StatsBanner[i].Label = esc(c.StatsBanner[i].Label)
	}
	for i := range c.TalkingPoints {
		tp := &c.TalkingPoints[i]
		tp.Id = esc(tp.Id)
		tp.Label = esc(tp.Label)
		tp.Number = esc(tp.Number)
		tp.Timing = esc(tp.Timing)
		tp.Question = esc(tp.Question)
		tp.TipDo = esc(tp.TipDo)
		tp.TipDont = esc(tp.TipDont)
		tp.Source = esc(tp.Source)
	}
	for i := range c.PracticeQuestions {
		c.PracticeQuestions[i].Q = esc(c.PracticeQuestions[i].Q)
	}
	for i := range c.CheatsheetCards {
		card := &c.CheatsheetCards[i]
		card.Icon = esc(card.Icon)
		card.Title = esc(card.Title)
		for j := range card.Items {
			card.Items[j].Label = esc(card.Items[j].Label)
			card.Items[j].Value = esc(card.Items[j].Value)
		}
	}
	for i := range c.Tips {
		c.Tips[i] = esc(c.Tips[i])
	}
	if c.PitchVariants != nil {
		c.PitchVariants.ThirtySec = esc(c.PitchVariants.ThirtySec)
		c.PitchVariants.SixtySec = esc(c.PitchVariants.SixtySec)
		c.PitchVariants.TwoMin = esc(c.PitchVariants.TwoMin)
	}
	for i := range c.KeyMessages {
		c.KeyMessages[i] = esc(c.KeyMessages[i])
	}
	for i := range c.Objections {
		c.Objections[i].Objection = esc(c.Objections[i].Objection)
		c.Objections[i].Response = esc(c.Objections[i].Response)
	}
	for i := range c.Slides {
		c.Slides[i].Title = esc(c.Slides[i].Title)
	}
	return c
}
