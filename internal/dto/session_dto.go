package dto

import (
	"time"

	"prep-tool-be/internal/entity"
)

type CreateSessionRequest struct {
	Type     entity.SessionType `json:"type" validate:"required,oneof=interview presentation pitch"`
	Title    string             `json:"title"`
	Subtitle string             `json:"subtitle"`
	Date     string             `json:"date"`
	Format   string             `json:"format"`
}

type ListSessionsQuery struct {
	Type   string `query:"type" validate:"omitempty,oneof=interview presentation pitch"`
	Search string `query:"q"`
}

// SessionSummary is one dashboard row.
type SessionSummary struct {
	Id                string             `json:"id"`
	Type              entity.SessionType `json:"type"`
	Title             string             `json:"title"`
	Subtitle          string             `json:"subtitle"`
	Date              string             `json:"date"`
	TalkingPointCount int                `json:"talking_point_count"`
	QuestionCount     int                `json:"question_count"`
	Created           time.Time          `json:"created"`
	Modified          time.Time          `json:"modified"`
	TypeLabel         string             `json:"type_label"`
	TypeIcon          string             `json:"type_icon"`
	TypeColor         string             `json:"type_color"`
}

type UpdateSessionResponse struct {
	Ok      bool            `json:"ok"`
	Session *entity.Session `json:"session"`
}

type AckResponse struct {
	Ok bool `json:"ok"`
}

func NewSessionSummary(s *entity.Session) *SessionSummary {
	info := entity.SessionTypes[s.Type]
	return &SessionSummary{
		Id:                s.Id,
		Type:              s.Type,
		Title:             s.Title,
		Subtitle:          s.Subtitle,
		Date:              s.Date,
		TalkingPointCount: len(s.TalkingPoints),
		QuestionCount:     len(s.PracticeQuestions),
		Created:           s.Created,
		Modified:          s.Modified,
		TypeLabel:         info.Label,
		TypeIcon:          info.Icon,
		TypeColor:         info.Color,
	}
}
