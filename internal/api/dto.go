package api

import (
	"time"

	"review-insight/backend/internal/store"
)

// SubmitReviewRequest is the POST /api/reviews body. Validation runs before
// any LLM call is attempted.
type SubmitReviewRequest struct {
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	UserReview string `json:"user_review" binding:"required,max=1000"`
}

// ReviewDTO is the API representation of a persisted review.
type ReviewDTO struct {
	ID                 string `json:"id"`
	Rating             int    `json:"rating"`
	UserReview         string `json:"user_review"`
	AIResponse         string `json:"ai_response"`
	AISummary          string `json:"ai_summary"`
	RecommendedActions string `json:"recommended_actions"`
	CreatedAt          string `json:"created_at"`
}

// ReviewsPageResponse is the paginated list envelope.
type ReviewsPageResponse struct {
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Data  []ReviewDTO `json:"data"`
}

// AdminStatsResponse aggregates the stored reviews for the admin dashboard.
type AdminStatsResponse struct {
	TotalReviews       int64         `json:"total_reviews"`
	AvgRating          float64       `json:"avg_rating"`
	RatingDistribution map[int]int64 `json:"rating_distribution"`
	RecentReviews      []ReviewDTO   `json:"recent_reviews"`
}

// ReviewFromModel converts a stored record, serializing the timestamp with
// its fixed UTC+5:30 offset.
func ReviewFromModel(review store.Review) ReviewDTO {
	return ReviewDTO{
		ID:                 review.ID,
		Rating:             review.Rating,
		UserReview:         review.UserReview,
		AIResponse:         review.AIResponse,
		AISummary:          review.AISummary,
		RecommendedActions: review.RecommendedActions,
		CreatedAt:          review.CreatedAt.In(store.IST).Format(time.RFC3339),
	}
}

func reviewsFromModels(reviews []store.Review) []ReviewDTO {
	dtos := make([]ReviewDTO, 0, len(reviews))
	for _, review := range reviews {
		dtos = append(dtos, ReviewFromModel(review))
	}
	return dtos
}
