package packets

import (
	"time"

	"github.com/google/uuid"

	"github.com/pathsapp/backend/internal/model"
)

// PathResponse is the external view of a path: the raw composite columns
// are decoded into structured coordinate pairs and timestamps normalized to
// RFC 3339.
type PathResponse struct {
	ID            uuid.UUID      `json:"id"`
	OwnerID       int            `json:"owner_id"`
	Title         string         `json:"title"`
	Description   *string        `json:"description"`
	StartDate     string         `json:"start_date"`
	LocationStart model.Location `json:"location_start"`
	LocationEnd   model.Location `json:"location_end"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
}

// PathView projects a stored path into its response shape.
func PathView(p *model.Path) PathResponse {
	return PathResponse{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Title:         p.Title,
		Description:   p.Description,
		StartDate:     p.StartDate.Format(time.RFC3339),
		LocationStart: model.ParseLocation(p.LocationStart),
		LocationEnd:   model.ParseLocation(p.LocationEnd),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}
