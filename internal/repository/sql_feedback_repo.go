package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"reviewdesk/internal/logger"
	"reviewdesk/internal/model"
)

// reviewRow mirrors the reviews table used by the relational backends
type reviewRow struct {
	ID                uint      `gorm:"primaryKey;autoIncrement"`
	Rating            int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Review            string    `gorm:"type:text;not null"`
	AIResponse        string    `gorm:"column:ai_response;type:text;not null"`
	Summary           string    `gorm:"type:text;not null"`
	RecommendedAction string    `gorm:"type:text;not null"`
	Category          string    `gorm:"type:text"`
	CreatedAt         time.Time `gorm:"not null"`
}

func (reviewRow) TableName() string { return "reviews" }

type sqlFeedbackRepo struct {
	db *gorm.DB
}

// NewSQLFeedbackRepo creates a GORM-backed store and migrates the reviews table
func NewSQLFeedbackRepo(db *gorm.DB) (FeedbackRepo, error) {
	if err := db.AutoMigrate(&reviewRow{}); err != nil {
		return nil, fmt.Errorf("migrate reviews: %w", err)
	}
	return &sqlFeedbackRepo{db: db}, nil
}

// OpenSQLite opens an embedded database file (":memory:" for a throwaway one)
func OpenSQLite(path string, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: newGormLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite %s: %w", path, err)
	}
	return db, nil
}

// OpenPostgres connects to a hosted Postgres database
func OpenPostgres(dsn string, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: newGormLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return db, nil
}

// gormWriter feeds gorm's formatted lines into the service logger
type gormWriter struct {
	log *logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	line := strings.TrimSpace(fmt.Sprintf(format, args...))
	if isGormError(format, args) {
		w.log.Error("gorm", "detail", line)
		return
	}
	w.log.Warn("gorm", "detail", line)
}

// failed-query traces carry the error as an argument rather than an "[error]" tag
func isGormError(format string, args []interface{}) bool {
	if strings.Contains(format, "[error]") {
		return true
	}
	for _, arg := range args {
		if _, ok := arg.(error); ok {
			return true
		}
	}
	return false
}

func newGormLogger(log *logger.Logger) gormLogger.Interface {
	return gormLogger.New(
		gormWriter{log: log.With("component", "gorm")},
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func (r *sqlFeedbackRepo) Append(ctx context.Context, record *model.FeedbackRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	row := reviewRow{
		Rating:            record.Rating,
		Review:            record.ReviewText,
		AIResponse:        record.UserReply,
		Summary:           record.Summary,
		RecommendedAction: record.RecommendedAction,
		Category:          record.Category,
		CreatedAt:         record.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	record.ID = strconv.FormatUint(uint64(row.ID), 10)
	return nil
}

func (r *sqlFeedbackRepo) ListAll(ctx context.Context) ([]model.FeedbackRecord, error) {
	var rows []reviewRow
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]model.FeedbackRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.FeedbackRecord{
			ID:                strconv.FormatUint(uint64(row.ID), 10),
			Rating:            row.Rating,
			ReviewText:        row.Review,
			UserReply:         row.AIResponse,
			Summary:           row.Summary,
			RecommendedAction: row.RecommendedAction,
			Category:          row.Category,
			CreatedAt:         row.CreatedAt,
		})
	}
	return records, nil
}
