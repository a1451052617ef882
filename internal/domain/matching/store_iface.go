package matching

import (
	"context"

	"carelink/internal/domain/core"
)

// DirectoryStore is the client/caregiver lookup the matcher needs.
// core.Store satisfies it.
type DirectoryStore interface {
	GetClient(ctx context.Context, agencyID, clientID string) (*core.Client, error)
	ListActiveCaregivers(ctx context.Context, agencyID string) ([]core.Caregiver, error)
	ListClientAssignments(ctx context.Context, agencyID, clientID string) ([]core.Assignment, error)
}
