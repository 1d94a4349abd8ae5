package main

import "prep-tool-be/internal/entity"

func samples() []*entity.Session {
	interview := entity.NewEmptySession(entity.SessionTypeInterview)
	interview.Title = "Platform Engineer Interview"
	interview.Subtitle = "Panel with the infrastructure team"
	interview.Format = "45 min panel"
	interview.StatsBanner = []entity.Stat{{Value: "6 yrs", Label: "Go in production"}, {Value: "99.95%", Label: "Uptime owned"}}
	interview.TalkingPoints = []entity.TalkingPoint{
		{
			Id:       "migration",
			Label:    "Queue migration",
			Number:   "#1",
			Timing:   "3 min",
			Question: "Tell us about a migration you led.",
			Note:     "<p>Moved billing events from polling to <b>NATS JetStream</b> without downtime.</p>",
			TipDo:    "Lead with the outcome",
			TipDont:  "Don't list every tool",
		},
	}
	interview.PracticeQuestions = []entity.PracticeQuestion{
		{Q: "How do you decide between a queue and a stream?", Points: []string{"Replay needs", "Ordering guarantees", "Consumer fan-out"}},
		{Q: "Describe an incident you handled.", Points: []string{"Detection", "Mitigation", "Follow-up"}},
	}
	interview.CheatsheetCards = []entity.CheatsheetCard{
		{Icon: "📋", Title: "Numbers", Items: []entity.CardItem{{Label: "Events/day", Value: "40M"}, {Label: "p99", Value: "35ms"}}},
	}
	interview.Tips = []string{"Pause before answering", "Ask one question back"}

	deck := entity.NewEmptySession(entity.SessionTypePresentation)
	deck.Title = "Quarterly Engineering Review"
	deck.Format = "20 min + Q&A"
	deck.TalkingPoints = []entity.TalkingPoint{
		{Label: "Delivery", Number: "#1", Timing: "5 min", Note: "<p>Shipped 14 of 16 planned items.</p>"},
		{Label: "Reliability", Number: "#2", Timing: "5 min", Note: "<p>Two sev-2 incidents, both under 30 minutes.</p>"},
	}
	deck.Slides = []entity.Slide{
		{Title: "Where we are", Body: "Scope, team and timeline"},
		{Title: "Delivery", Body: "14 of 16 shipped"},
		{Title: "Next quarter", Body: "Three bets"},
	}
	deck.PracticeQuestions = []entity.PracticeQuestion{
		{Q: "Why did two items slip?", Points: []string{"Dependency on vendor API", "Re-planned for next sprint"}},
	}

	pitch := entity.NewEmptySession(entity.SessionTypePitch)
	pitch.Title = "Seed Round Pitch"
	pitch.Format = "Demo day"
	pitch.PitchVariants = &entity.PitchVariants{
		ThirtySec: "We help small teams rehearse the conversations that matter.",
		SixtySec:  "Interviews, talks and pitches are won in preparation. We turn notes into drills with timers and feedback.",
		TwoMin:    "Everyone has a big conversation coming up. Most prepare by re-reading notes. We import what you already have and build practice rounds, a teleprompter and pitch timers from it.",
	}
	pitch.KeyMessages = []string{"Preparation beats talent", "Import in one click"}
	pitch.Objections = []entity.Objection{{Objection: "Isn't this just flashcards?", Response: "Flashcards don't time you or track confidence."}}

	return []*entity.Session{interview, deck, pitch}
}
