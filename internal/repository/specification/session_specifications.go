package specification

import "gorm.io/gorm"

// ByID filters by the session slug.
type ByID struct {
	ID string
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// RecentlyModified orders newest first, falling back to creation time.
type RecentlyModified struct{}

func (s RecentlyModified) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("updated_at DESC").Order("created_at DESC")
}
