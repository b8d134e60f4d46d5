package store

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the GORM DB handle and exposes repository helpers.
type Database struct {
	gorm *gorm.DB
	mu   sync.Mutex
}

// Open initializes the SQLite-backed database at the provided path.
func Open(path string, silent bool) (*Database, error) {
	cfg := &gorm.Config{}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&Review{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		logrus.WithError(err).Warn("enable WAL mode")
	}
	if err := db.Exec("PRAGMA synchronous=NORMAL").Error; err != nil {
		logrus.WithError(err).Warn("set synchronous pragma")
	}
	return &Database{gorm: db}, nil
}

// GORM exposes the raw gorm.DB handle.
func (d *Database) GORM() *gorm.DB {
	return d.gorm
}

// Close closes the underlying database connection.
func (d *Database) Close() error {
	if d == nil {
		return nil
	}
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateReview inserts a new review record, assigning its ID and the IST
// creation timestamp.
func (d *Database) CreateReview(review *Review) error {
	if review == nil {
		return errors.New("review is nil")
	}
	if strings.TrimSpace(review.ID) == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().In(IST)
	} else {
		review.CreatedAt = review.CreatedAt.In(IST)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Create(review).Error
}

// GetReview fetches a single review by ID.
func (d *Database) GetReview(id string) (*Review, error) {
	var review Review
	if err := d.gorm.First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListReviews returns a page of reviews ordered most-recent first along with
// the total record count.
func (d *Database) ListReviews(offset, limit int) ([]Review, int64, error) {
	var total int64
	if err := d.gorm.Model(&Review{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query := d.gorm.Model(&Review{}).Order("created_at DESC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	reviews := []Review{}
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// CountReviews returns the number of stored reviews.
func (d *Database) CountReviews() (int64, error) {
	var count int64
	if err := d.gorm.Model(&Review{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RatingStats aggregates the stored reviews for the admin dashboard.
type RatingStats struct {
	TotalReviews  int64
	AverageRating float64
	Distribution  map[int]int64
	Recent        []Review
}

// Stats computes count, average rating (rounded to two decimals), per-star
// distribution, and the most recent records.
func (d *Database) Stats(recentLimit int) (*RatingStats, error) {
	stats := &RatingStats{Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}

	if err := d.gorm.Model(&Review{}).Count(&stats.TotalReviews).Error; err != nil {
		return nil, err
	}
	if stats.TotalReviews == 0 {
		stats.Recent = []Review{}
		return stats, nil
	}

	var avg float64
	if err := d.gorm.Model(&Review{}).Select("COALESCE(AVG(rating), 0)").Scan(&avg).Error; err != nil {
		return nil, err
	}
	stats.AverageRating = math.Round(avg*100) / 100

	var buckets []struct {
		Rating int
		Total  int64
	}
	if err := d.gorm.Model(&Review{}).
		Select("rating, COUNT(*) AS total").
		Group("rating").
		Scan(&buckets).Error; err != nil {
		return nil, err
	}
	for _, bucket := range buckets {
		if bucket.Rating >= 1 && bucket.Rating <= 5 {
			stats.Distribution[bucket.Rating] = bucket.Total
		}
	}

	if recentLimit <= 0 {
		recentLimit = 20
	}
	recent := []Review{}
	if err := d.gorm.Model(&Review{}).
		Order("created_at DESC").
		Limit(recentLimit).
		Find(&recent).Error; err != nil {
		return nil, err
	}
	stats.Recent = recent
	return stats, nil
}
