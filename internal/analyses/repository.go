package analyses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/spiral/internal/scoring"
	"github.com/JaimeStill/spiral/pkg/pagination"
	"github.com/JaimeStill/spiral/pkg/query"
	"github.com/JaimeStill/spiral/pkg/repository"
	"github.com/JaimeStill/spiral/pkg/storage"
)

var codes = repository.Codes{
	repository.UniqueViolation: ErrDuplicate,
}

type repo struct {
	db         *sql.DB
	modes      scoring.Modes
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
	observer   scoring.Observer
}

// New creates an analysis repository implementing the System interface.
// A nil observer discards scoring observations.
func New(
	db *sql.DB,
	modes scoring.Modes,
	storage storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
	observer scoring.Observer,
) System {
	if observer == nil {
		observer = scoring.NopObserver()
	}
	return &repo{
		db:         db,
		modes:      modes,
		storage:    storage,
		logger:     logger.With("system", "analyses"),
		pagination: pagination,
		observer:   observer,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination, r.observer)
}

// TranscriptKey returns the blob key holding the raw text of an analysis.
func TranscriptKey(userID string, id uuid.UUID) string {
	return storage.Key("transcripts", url.PathEscape(userID), id.String()+".txt")
}

func (r *repo) Create(ctx context.Context, userID string, cmd CreateCommand) (*Analysis, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	result, err := r.modes.Select(cmd.Strict).Score(cmd.Text)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	key := TranscriptKey(userID, id)

	if err := r.storage.Upload(ctx, key, strings.NewReader(result.RawText), "text/plain; charset=utf-8"); err != nil {
		return nil, fmt.Errorf("archive transcript: %w", err)
	}

	args := insertArgs(id, userID, key, result)

	insertQ := `
		INSERT INTO analyses(
			id, user_id, dominant_category, color_name, color_hex, summary,
			scores, counts, feedback, transcript_key, text_length, analyzed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + projection.Unqualified()

	a, err := repository.QueryOne(ctx, r.db, insertQ, args, scanAnalysis)
	if err != nil {
		r.discard(key)
		return nil, repository.MapError(err, ErrNotFound, codes)
	}

	r.logger.Info("analysis created",
		"id", a.ID,
		"user_id", userID,
		"dominant", a.DominantCategory,
		"matches", result.Counts.Total(),
	)
	return &a, nil
}

func insertArgs(id uuid.UUID, userID, key string, result *scoring.Result) []any {
	return []any{
		id,
		userID,
		string(result.Dominant),
		result.Name,
		result.Hex,
		result.Summary,
		repository.JSON[scoring.ScoreVector]{V: result.Scores},
		repository.JSON[scoring.Counts]{V: result.Counts},
		repository.JSON[scoring.Feedback]{V: result.Feedback},
		key,
		utf8.RuneCountInString(strings.TrimSpace(result.RawText)),
		result.Timestamp,
	}
}

// discard removes an archived transcript whose row was never written.
func (r *repo) discard(key string) {
	if err := r.storage.Delete(context.Background(), key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		r.logger.Error("transcript cleanup failed", "key", key, "error", err)
	}
}

func (r *repo) List(
	ctx context.Context,
	userID string,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Analysis], error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("UserID", userID).
		WhereSearch(page.Search, "Summary", "ColorName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.Count(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAnalysis)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, userID string, id uuid.UUID) (*Analysis, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	q, args := query.
		NewBuilder(projection).
		WhereEquals("UserID", userID).
		BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, codes)
	}
	return &a, nil
}

func (r *repo) Transcript(ctx context.Context, userID string, id uuid.UUID) (io.ReadCloser, error) {
	a, err := r.Find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	rc, err := r.storage.Download(ctx, a.TranscriptKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download transcript %s: %w", id, err)
	}
	return rc, nil
}

func (r *repo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if userID == "" {
		return ErrUnauthorized
	}

	key, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (string, error) {
		var key string
		err := tx.QueryRowContext(ctx,
			"DELETE FROM analyses WHERE id = $1 AND user_id = $2 RETURNING transcript_key",
			id, userID,
		).Scan(&key)
		return key, err
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, codes)
	}

	if err := r.storage.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		r.logger.Error("transcript delete failed", "id", id, "key", key, "error", err)
	}

	r.logger.Info("analysis deleted", "id", id, "user_id", userID)
	return nil
}

func (r *repo) Evolution(ctx context.Context, userID string, limit int) (*Evolution, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	limit = min(max(limit, 1), MaxEvolutionLimit)

	var (
		items []Analysis
		total int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		q, args := query.
			NewBuilder(projection, defaultSort).
			WhereEquals("UserID", userID).
			BuildLimit(limit)

		rows, err := repository.QueryMany(gctx, r.db, q, args, scanAnalysis)
		if err != nil {
			return fmt.Errorf("query evolution window: %w", err)
		}
		items = rows
		return nil
	})

	g.Go(func() error {
		q, args := query.
			NewBuilder(projection).
			WhereEquals("UserID", userID).
			BuildCount()

		n, err := repository.Count(gctx, r.db, q, args)
		if err != nil {
			return fmt.Errorf("count analyses: %w", err)
		}
		total = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.Reverse(items)

	evo := NewEvolution(r.modes.Quick.Ontology(), items, total)
	return &evo, nil
}
