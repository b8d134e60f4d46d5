package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"review-insight/backend/internal/feedback"
	"review-insight/backend/internal/llm"
	"review-insight/backend/internal/store"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
	recentStatsLimit = 20
)

// Config defines server dependencies.
type Config struct {
	DBPath         string
	AllowedOrigins []string
	SilentDB       bool
	LLMConfig      llm.Config
	// SecondaryLLMConfig, when it carries an API key, becomes a fallback
	// backend behind the primary.
	SecondaryLLMConfig llm.Config
	DisableAI          bool
}

// Server wires HTTP handlers with persistence and feedback generation.
type Server struct {
	db             *store.Database
	generator      *feedback.Generator
	allowedOrigins []string
}

// NewServer constructs the API server. A missing or disabled LLM client is
// not fatal: the generator then serves the static fallback texts.
func NewServer(cfg Config) (*Server, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("db path required")
	}
	db, err := store.Open(cfg.DBPath, cfg.SilentDB)
	if err != nil {
		return nil, err
	}

	var completer llm.Completer
	if cfg.DisableAI {
		logrus.Info("AI generation disabled via configuration; serving fallback texts")
	} else {
		primary, err := llm.NewClient(cfg.LLMConfig)
		if err != nil && !errors.Is(err, llm.ErrDisabled) {
			return nil, err
		}
		var secondary *llm.Client
		if strings.TrimSpace(cfg.SecondaryLLMConfig.APIKey) != "" {
			secondary, err = llm.NewClient(cfg.SecondaryLLMConfig)
			if err != nil {
				return nil, err
			}
		}
		switch {
		case primary != nil && secondary != nil:
			completer = llm.WithFallback(primary, secondary)
		case primary != nil:
			completer = primary
		case secondary != nil:
			completer = secondary
		default:
			logrus.Warn("no LLM credentials configured; serving fallback texts")
		}
	}

	return &Server{
		db:             db,
		generator:      feedback.NewGenerator(completer),
		allowedOrigins: cfg.AllowedOrigins,
	}, nil
}

// Close releases server resources.
func (s *Server) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// Router builds the gin engine with CORS and all routes attached.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/reviews", s.handleSubmitReview)
		api.GET("/reviews", s.handleListReviews)
		api.GET("/admin/stats", s.handleAdminStats)
	}

	return r, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "review-insight"})
}

func (s *Server) handleSubmitReview(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	reviewText := strings.TrimSpace(req.UserReview)
	if reviewText == "" {
		s.renderError(c, http.StatusBadRequest, errors.New("review cannot be empty"))
		return
	}

	content := s.generator.Generate(c.Request.Context(), req.Rating, reviewText)

	review := &store.Review{
		Rating:             req.Rating,
		UserReview:         reviewText,
		AIResponse:         content.Response,
		AISummary:          content.Summary,
		RecommendedActions: content.Actions,
	}
	if err := s.db.CreateReview(review); err != nil {
		logrus.WithError(err).Error("save review")
		s.renderError(c, http.StatusInternalServerError, errors.New("failed to save review"))
		return
	}

	c.JSON(http.StatusCreated, ReviewFromModel(*review))
}

func (s *Server) handleListReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	reviews, total, err := s.db.ListReviews((page-1)*limit, limit)
	if err != nil {
		logrus.WithError(err).Error("list reviews")
		s.renderError(c, http.StatusInternalServerError, errors.New("error fetching reviews"))
		return
	}

	c.JSON(http.StatusOK, ReviewsPageResponse{
		Total: total,
		Page:  page,
		Limit: limit,
		Data:  reviewsFromModels(reviews),
	})
}

func (s *Server) handleAdminStats(c *gin.Context) {
	stats, err := s.db.Stats(recentStatsLimit)
	if err != nil {
		logrus.WithError(err).Error("compute stats")
		s.renderError(c, http.StatusInternalServerError, errors.New("error fetching stats"))
		return
	}

	c.JSON(http.StatusOK, AdminStatsResponse{
		TotalReviews:       stats.TotalReviews,
		AvgRating:          stats.AverageRating,
		RatingDistribution: stats.Distribution,
		RecentReviews:      reviewsFromModels(stats.Recent),
	})
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}
