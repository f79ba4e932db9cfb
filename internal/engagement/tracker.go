package engagement

import (
	"context"

	"github.com/saurabhkjha/studymaterial-backend/internal/repositories"
)

// ViewResult reports the outcome of recording a view.
type ViewResult struct {
	Views   int64 `json:"views"`
	Counted bool  `json:"counted"`
}

// Tracker owns the engagement counters. Downloads count every call; views
// are deduplicated per (slug, visitor) over the view log's 24-hour window.
// It holds no state of its own: atomicity comes from the store operations
// underneath, so concurrent calls need no locking here.
type Tracker struct {
	materials repositories.MaterialRepository
	posts     repositories.PostRepository
	viewLogs  repositories.ViewLogRepository
}

// NewTracker creates a Tracker over the given repositories.
func NewTracker(materials repositories.MaterialRepository, posts repositories.PostRepository, viewLogs repositories.ViewLogRepository) *Tracker {
	return &Tracker{
		materials: materials,
		posts:     posts,
		viewLogs:  viewLogs,
	}
}

// RecordDownload increments the material's download counter and returns the
// new value. Every call counts.
func (t *Tracker) RecordDownload(ctx context.Context, materialID string) (int64, error) {
	downloads, err := t.materials.IncrementDownloads(ctx, materialID)
	if err != nil {
		return 0, err
	}
	downloadsRecorded.Inc()
	return downloads, nil
}

// RecordView counts a view of a published post unless the same visitor was
// already counted inside the dedup window. The log insert itself decides:
// when it reports the pair as new the counter is incremented and returned,
// when it reports it as already present the current counter is returned
// unchanged with Counted false.
func (t *Tracker) RecordView(ctx context.Context, slug, visitor string) (*ViewResult, error) {
	// Verify the slug resolves to a published post before touching the log,
	// so views of drafts and deleted posts never leave dedup entries behind.
	if _, err := t.posts.GetPublishedPostBySlug(ctx, slug); err != nil {
		return nil, err
	}

	inserted, err := t.viewLogs.InsertEntry(ctx, slug, visitor)
	if err != nil {
		return nil, err
	}
	if !inserted {
		views, err := t.posts.GetViewCount(ctx, slug)
		if err != nil {
			return nil, err
		}
		viewsDeduplicated.Inc()
		return &ViewResult{Views: views, Counted: false}, nil
	}

	views, err := t.posts.IncrementViews(ctx, slug)
	if err != nil {
		return nil, err
	}
	viewsCounted.Inc()
	return &ViewResult{Views: views, Counted: true}, nil
}
