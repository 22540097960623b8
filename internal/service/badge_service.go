package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/badges"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/dto"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/observability"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/repository"
)

// BadgeService runs the achievement pipeline: recompute metrics, find
// the catalog entries newly satisfied, persist each one at most once,
// and report only what this invocation actually created.
//
// The whole pipeline is idempotent and safe to invoke concurrently for
// the same student: the conditional create in the repository is the
// only coordination point, so overlapping checks never double-award and
// a repeated check with no new activity returns an empty result.
type BadgeService interface {
	Check(ctx context.Context, studentID uint) ([]dto.BadgeResponse, error)
	ListEarned(ctx context.Context, studentID uint) ([]dto.EarnedBadgeResponse, error)
}

// BadgeEarnedEvent is the payload published when a badge is persisted.
type BadgeEarnedEvent struct {
	StudentID uint      `json:"student_id"`
	BadgeID   string    `json:"badge_id"`
	Name      string    `json:"name"`
	EarnedAt  time.Time `json:"earned_at"`
}

type badgeService struct {
	catalog     badges.Catalog
	progress    ProgressService
	earned      repository.BadgeRepository
	nats        *nats.Conn
	natsSubject string
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewBadgeService constructs the badge pipeline. A nil NATS connection
// disables event publishing.
func NewBadgeService(catalog badges.Catalog, progress ProgressService, earned repository.BadgeRepository, natsConn *nats.Conn, natsSubject string, logger zerolog.Logger) BadgeService {
	return &badgeService{
		catalog:     catalog,
		progress:    progress,
		earned:      earned,
		nats:        natsConn,
		natsSubject: natsSubject,
		logger:      logger.With().Str("component", "badge_service").Logger(),
		tracer:      otel.Tracer("github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/service/badges"),
		now:         time.Now,
	}
}

func (s *badgeService) Check(ctx context.Context, studentID uint) ([]dto.BadgeResponse, error) {
	start := s.now()

	spanCtx, span := s.tracer.Start(ctx, "badges.check", trace.WithAttributes(
		attribute.Int64("student.id", int64(studentID)),
	))
	defer span.End()

	newlyAwarded, err := s.check(spanCtx, studentID)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	observability.BadgeChecks().WithLabelValues(outcome).Inc()
	observability.BadgeCheckLatency().Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("badges.awarded", len(newlyAwarded)))

	return dto.NewBadgeResponseSlice(newlyAwarded), nil
}

func (s *badgeService) check(ctx context.Context, studentID uint) ([]badges.Definition, error) {
	// Award decisions always run against a fresh recomputation, never a
	// cached snapshot, so a badge is awarded exactly when its criteria
	// are first met on durable history.
	metrics, err := s.progress.Compute(ctx, studentID)
	if err != nil {
		return nil, err
	}

	records, err := s.earned.ListEarned(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("read earned badges: %w", err)
	}

	earnedIDs := make(map[string]bool, len(records))
	for _, record := range records {
		earnedIDs[record.BadgeID] = true
	}

	candidates := s.catalog.Eligible(metrics, earnedIDs)

	return s.awardAll(ctx, studentID, candidates)
}

// awardAll attempts a conditional create per candidate, in catalog
// order. Each create is independently durable: a storage error aborts
// the remaining candidates but whatever was already created stands, and
// the next check will pick up the rest. Losing the create race to a
// concurrent check is not an error; the candidate is just not ours to
// report.
func (s *badgeService) awardAll(ctx context.Context, studentID uint, candidates []badges.Definition) ([]badges.Definition, error) {
	awarded := make([]badges.Definition, 0, len(candidates))

	for _, candidate := range candidates {
		earnedAt := s.now().UTC()

		created, err := s.earned.CreateIfAbsent(ctx, studentID, candidate.ID, earnedAt)
		if err != nil {
			return awarded, fmt.Errorf("persist badge %q: %w", candidate.ID, err)
		}
		if !created {
			continue
		}

		awarded = append(awarded, candidate)
		observability.BadgesAwarded().WithLabelValues(candidate.ID).Inc()
		s.logger.Info().Uint("student_id", studentID).Str("badge_id", candidate.ID).Msg("badge awarded")

		s.publishEarned(BadgeEarnedEvent{
			StudentID: studentID,
			BadgeID:   candidate.ID,
			Name:      candidate.Name,
			EarnedAt:  earnedAt,
		})
	}

	return awarded, nil
}

// publishEarned is fire-and-forget: a broken broker never affects the
// award result, which is already durable by the time we publish.
func (s *badgeService) publishEarned(event BadgeEarnedEvent) {
	if s.nats == nil || s.natsSubject == "" {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode badge event")
		return
	}

	if err := s.nats.Publish(s.natsSubject, payload); err != nil {
		s.logger.Warn().Err(err).Str("badge_id", event.BadgeID).Msg("failed to publish badge event")
	}
}

func (s *badgeService) ListEarned(ctx context.Context, studentID uint) ([]dto.EarnedBadgeResponse, error) {
	records, err := s.earned.ListEarned(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("read earned badges: %w", err)
	}

	responses := make([]dto.EarnedBadgeResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, dto.NewEarnedBadgeResponse(record, s.catalog))
	}

	return responses, nil
}
