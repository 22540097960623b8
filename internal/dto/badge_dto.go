package dto

import (
	"time"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/badges"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/models"
)

// BadgeResponse is the display shape of a badge definition.
type BadgeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// NewBadgeResponse maps a catalog definition onto the API shape.
func NewBadgeResponse(def badges.Definition) BadgeResponse {
	return BadgeResponse{
		ID:          def.ID,
		Name:        def.Name,
		Icon:        def.Icon,
		Description: def.Description,
	}
}

// NewBadgeResponseSlice maps a candidate sequence, preserving order.
func NewBadgeResponseSlice(defs []badges.Definition) []BadgeResponse {
	out := make([]BadgeResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, NewBadgeResponse(def))
	}
	return out
}

// EarnedBadgeResponse is an earned badge together with when it was won.
type EarnedBadgeResponse struct {
	BadgeResponse
	EarnedAt time.Time `json:"earned_at"`
}

// NewEarnedBadgeResponse joins a stored record with its catalog entry.
// Records whose badge no longer exists in the catalog keep their
// identifier so the history stays complete.
func NewEarnedBadgeResponse(record models.EarnedBadge, catalog badges.Catalog) EarnedBadgeResponse {
	response := EarnedBadgeResponse{
		BadgeResponse: BadgeResponse{ID: record.BadgeID},
		EarnedAt:      record.EarnedAt,
	}

	if def, ok := catalog.Get(record.BadgeID); ok {
		response.BadgeResponse = NewBadgeResponse(def)
	}

	return response
}

// BadgeCheckResponse is returned by the explicit badge check endpoint.
// NewBadges contains only badges this invocation created.
type BadgeCheckResponse struct {
	NewBadges []BadgeResponse `json:"new_badges"`
}
