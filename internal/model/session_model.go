package model

import (
	"time"

	"prep-tool-be/internal/entity"

	"gorm.io/datatypes"
)

type Session struct {
	Id       string `gorm:"type:varchar(32);primaryKey"`
	Type     string `gorm:"type:varchar(20);not null;index"`
	Title    string `gorm:"type:varchar(255)"`
	Subtitle string `gorm:"type:text"`
	Date     string `gorm:"type:varchar(100)"`
	Format   string `gorm:"type:varchar(255)"`

	StatsBanner       datatypes.JSONSlice[entity.Stat]
	TalkingPoints     datatypes.JSONSlice[entity.TalkingPoint]
	PracticeQuestions datatypes.JSONSlice[entity.PracticeQuestion]
	CheatsheetCards   datatypes.JSONSlice[entity.CheatsheetCard]
	Tips              datatypes.JSONSlice[string]

	PitchVariants datatypes.JSONType[*entity.PitchVariants]
	KeyMessages   datatypes.JSONSlice[string]
	Objections    datatypes.JSONSlice[entity.Objection]
	Slides        datatypes.JSONSlice[entity.Slide]

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index"`
}

func (Session) TableName() string {
	return "prep_sessions"
}
