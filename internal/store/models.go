package store

import "time"

// IST is the fixed UTC+5:30 offset all stored timestamps are recorded in.
var IST = time.FixedZone("IST", 5*3600+30*60)

// Review is a persisted feedback record. Records are created on submission
// and never updated afterwards.
type Review struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	Rating             int       `gorm:"index" json:"rating"`
	UserReview         string    `gorm:"type:text" json:"user_review"`
	AIResponse         string    `gorm:"column:ai_response;type:text" json:"ai_response"`
	AISummary          string    `gorm:"column:ai_summary;type:text" json:"ai_summary"`
	RecommendedActions string    `gorm:"type:text" json:"recommended_actions"`
	CreatedAt          time.Time `gorm:"index" json:"created_at"`
}
