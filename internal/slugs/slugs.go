package slugs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/saurabhkjha/studymaterial-backend/internal/models"
	"github.com/saurabhkjha/studymaterial-backend/internal/repositories"
)

const (
	// maxLen caps stored slugs at the length the site's URLs were built for.
	maxLen = 80

	// maxAttempts bounds the numeric-suffix search before the conflict
	// propagates to the caller.
	maxAttempts = 100
)

// Make derives a URL slug from a title: lowercase, hyphen-separated, at most
// 80 characters, no trailing hyphen. Underscores count as separators, like
// the slugs the site already carries. Deterministic and pure; uniqueness is
// the Assigner's job.
func Make(title string) string {
	s := slug.Make(strings.ReplaceAll(title, "_", "-"))
	if len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	return s
}

// Assigner assigns unique slugs at post creation by letting the store's
// unique index decide.
type Assigner struct {
	posts repositories.PostRepository
}

// NewAssigner creates an Assigner on top of a post repository.
func NewAssigner(posts repositories.PostRepository) *Assigner {
	return &Assigner{posts: posts}
}

// CreateWithUniqueSlug inserts the post under the base slug, then base-1,
// base-2 and so on until an insert succeeds. Two concurrent creations with
// the same title can both observe the same candidate as free; only the
// insert against the unique index settles it, so a duplicate-slug result is
// control flow here, not a failure. The base is derived from the title when
// the caller did not supply one.
func (a *Assigner) CreateWithUniqueSlug(ctx context.Context, post *models.Post, base string) error {
	if base == "" {
		base = Make(post.Title)
	}
	if base == "" {
		base = "post"
	}

	for i := 0; i < maxAttempts; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		post.Slug = candidate

		err := a.posts.CreatePost(ctx, post)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrDuplicateSlug) {
			return err
		}
	}
	return repositories.ErrDuplicateSlug
}
