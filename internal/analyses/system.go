package analyses

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/JaimeStill/spiral/pkg/pagination"
)

// System defines the public contract for analysis domain operations.
// Every operation is scoped to the calling user.
type System interface {
	Handler() *Handler

	Create(ctx context.Context, userID string, cmd CreateCommand) (*Analysis, error)

	List(
		ctx context.Context,
		userID string,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Analysis], error)

	Find(ctx context.Context, userID string, id uuid.UUID) (*Analysis, error)
	Transcript(ctx context.Context, userID string, id uuid.UUID) (io.ReadCloser, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	Evolution(ctx context.Context, userID string, limit int) (*Evolution, error)
}
