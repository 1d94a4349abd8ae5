package mapper

import (
	"prep-tool-be/internal/entity"
	"prep-tool-be/internal/model"

	"gorm.io/datatypes"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}

	e := &entity.Session{
		Id:                s.Id,
		Type:              entity.SessionType(s.Type),
		Title:             s.Title,
		Subtitle:          s.Subtitle,
		Date:              s.Date,
		Format:            s.Format,
		StatsBanner:       []entity.Stat(s.StatsBanner),
		TalkingPoints:     []entity.TalkingPoint(s.TalkingPoints),
		PracticeQuestions: []entity.PracticeQuestion(s.PracticeQuestions),
		CheatsheetCards:   []entity.CheatsheetCard(s.CheatsheetCards),
		Tips:              []string(s.Tips),
		PitchVariants:     s.PitchVariants.Data(),
		KeyMessages:       []string(s.KeyMessages),
		Objections:        []entity.Objection(s.Objections),
		Slides:            []entity.Slide(s.Slides),
		Created:           s.CreatedAt,
		Modified:          s.UpdatedAt,
	}
	e.Normalize()
	return e
}

func (m *SessionMapper) ToModel(e *entity.Session) *model.Session {
	if e == nil {
		return nil
	}

	return &model.Session{
		Id:                e.Id,
		Type:              string(e.Type),
		Title:             e.Title,
		Subtitle:          e.Subtitle,
		Date:              e.Date,
		Format:            e.Format,
		StatsBanner:       datatypes.JSONSlice[entity.Stat](e.StatsBanner),
		TalkingPoints:     datatypes.JSONSlice[entity.TalkingPoint](e.TalkingPoints),
		PracticeQuestions: datatypes.JSONSlice[entity.PracticeQuestion](e.PracticeQuestions),
		CheatsheetCards:   datatypes.JSONSlice[entity.CheatsheetCard](e.CheatsheetCards),
		Tips:              datatypes.JSONSlice[string](e.Tips),
		PitchVariants:     datatypes.NewJSONType(e.PitchVariants),
		KeyMessages:       datatypes.JSONSlice[string](e.KeyMessages),
		Objections:        datatypes.JSONSlice[entity.Objection](e.Objections),
		Slides:            datatypes.JSONSlice[entity.Slide](e.Slides),
		CreatedAt:         e.Created,
		UpdatedAt:         e.Modified,
	}
}

func (m *SessionMapper) ToEntities(sessions []*model.Session) []*entity.Session {
	entities := make([]*entity.Session, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
