package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/badges"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/dto"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/models"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/repository"
)

// ErrStudentNotFound indicates the student record does not exist.
var ErrStudentNotFound = errors.New("student not found")

// ProgressService recomputes a student's progress metrics from their
// stored attempt history.
//
// Compute is the authoritative path: a pure recomputation over the full
// history, used for every award decision. GetProgress is the display
// path and may serve a cached snapshot; the cache is invalidated on any
// new activity and is never consulted when deciding awards.
type ProgressService interface {
	Compute(ctx context.Context, studentID uint) (badges.Metrics, error)
	GetProgress(ctx context.Context, studentID uint) (dto.ProgressResponse, error)
	InvalidateCache(ctx context.Context, studentID uint)
}

type progressService struct {
	students repository.StudentRepository
	attempts repository.AttemptRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewProgressService builds the progress aggregator.
func NewProgressService(students repository.StudentRepository, attempts repository.AttemptRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ProgressService {
	return &progressService{
		students: students,
		attempts: attempts,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "progress_service").Logger(),
		now:      time.Now,
	}
}

func progressCacheKey(studentID uint) string {
	return fmt.Sprintf("progress:student:%d", studentID)
}

// Compute reads the complete history and derives the metrics. It is
// deterministic: the same history and clock reading always produce the
// same metrics. A student with no activity yet gets zeroed metrics, not
// an error; only a missing student row is ErrStudentNotFound.
func (s *progressService) Compute(ctx context.Context, studentID uint) (badges.Metrics, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return badges.Metrics{}, ErrStudentNotFound
		}
		return badges.Metrics{}, fmt.Errorf("read student: %w", err)
	}

	attempts, err := s.attempts.ListByStudent(ctx, studentID)
	if err != nil {
		return badges.Metrics{}, fmt.Errorf("read attempt history: %w", err)
	}

	return computeMetrics(attempts, s.now()), nil
}

func (s *progressService) GetProgress(ctx context.Context, studentID uint) (dto.ProgressResponse, error) {
	cacheKey := progressCacheKey(studentID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.ProgressResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", studentID).Msg("progress cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read progress cache")
		}
	}

	metrics, err := s.Compute(ctx, studentID)
	if err != nil {
		return dto.ProgressResponse{}, err
	}

	response := dto.NewProgressResponse(studentID, metrics)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store progress cache")
			}
		}
	}

	return response, nil
}

// InvalidateCache drops the cached snapshot after new activity. Failures
// are logged and swallowed: the cache entry expires on its own and is
// never used for award decisions anyway.
func (s *progressService) InvalidateCache(ctx context.Context, studentID uint) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Del(ctx, progressCacheKey(studentID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("failed to invalidate progress cache")
	}
}

// computeMetrics derives the full metric set from the history.
//
// Streak policy: days are UTC calendar days; a day is active when at
// least one attempt was completed on it. The streak is the run of
// consecutive active days ending on the most recent one, and it counts
// as current only while that day is today or yesterday. One idle day
// pauses the streak and a second one resets it to zero.
func computeMetrics(attempts []models.Attempt, now time.Time) badges.Metrics {
	m := badges.Metrics{TotalAttempts: len(attempts)}

	activeDays := map[time.Time]struct{}{}
	for _, attempt := range attempts {
		for _, response := range attempt.Responses {
			m.TotalResponses++
			if response.Correct {
				m.CorrectResponses++
			}
		}

		if !attempt.IsCompleted() {
			continue
		}
		m.CompletedAttempts++

		if accuracy, ok := attemptAccuracy(attempt); ok && accuracy > m.BestAttemptAccuracy {
			m.BestAttemptAccuracy = accuracy
		}

		day := attempt.CompletedAt.UTC().Truncate(24 * time.Hour)
		activeDays[day] = struct{}{}
	}

	if m.TotalResponses > 0 {
		m.Accuracy = float64(m.CorrectResponses) / float64(m.TotalResponses)
	}

	m.ActiveDays = len(activeDays)
	m.CurrentStreak, m.LastActiveDay = currentStreak(activeDays, now)

	return m
}

func attemptAccuracy(attempt models.Attempt) (float64, bool) {
	if len(attempt.Responses) == 0 {
		return 0, false
	}

	correct := 0
	for _, response := range attempt.Responses {
		if response.Correct {
			correct++
		}
	}

	return float64(correct) / float64(len(attempt.Responses)), true
}

func currentStreak(activeDays map[time.Time]struct{}, now time.Time) (int, time.Time) {
	if len(activeDays) == 0 {
		return 0, time.Time{}
	}

	var latest time.Time
	for day := range activeDays {
		if day.After(latest) {
			latest = day
		}
	}

	today := now.UTC().Truncate(24 * time.Hour)
	if today.Sub(latest) > 24*time.Hour {
		return 0, latest
	}

	streak := 0
	for day := latest; ; day = day.AddDate(0, 0, -1) {
		if _, active := activeDays[day]; !active {
			break
		}
		streak++
	}

	return streak, latest
}
