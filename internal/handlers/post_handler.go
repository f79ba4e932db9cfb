package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/saurabhkjha/studymaterial-backend/internal/models"
	"github.com/saurabhkjha/studymaterial-backend/internal/repositories"
	"github.com/saurabhkjha/studymaterial-backend/internal/slugs"
)

// PostHandler handles HTTP requests related to blog posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	viewLogRepository repositories.ViewLogRepository
	slugAssigner      *slugs.Assigner
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, viewLogRepo repositories.ViewLogRepository, assigner *slugs.Assigner) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		viewLogRepository: viewLogRepo,
		slugAssigner:      assigner,
	}
}

// RegisterPublicRoutes registers the post routes that need no auth
func (h *PostHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPublishedPosts)
	g.GET("/posts/:slug", h.GetPublishedPost)
}

// RegisterAdminRoutes registers the post routes behind the admin gate
func (h *PostHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/admin/posts", h.GetAllPosts)
	g.GET("/admin/posts/:id", h.GetPost)
}

// GetPublishedPosts returns published posts newest-first with pagination
func (h *PostHandler) GetPublishedPosts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	skip := int64((page - 1) * limit)
	posts, total, err := h.postRepository.GetPublishedPosts(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, paginated("posts", posts, page, limit, total))
}

// GetAllPosts returns posts of every status newest-first with pagination
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}

	skip := int64((page - 1) * limit)
	posts, total, err := h.postRepository.GetAllPosts(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, paginated("posts", posts, page, limit, total))
}

// paginated wraps a listing in the envelope the site and the publishing bot
// consume: the items under their own key plus a pagination block.
func paginated(key string, items interface{}, page, limit int, total int64) echo.Map {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return echo.Map{
		key: items,
		"pagination": echo.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	}
}

// GetPublishedPost returns a published post by slug. Drafts are not
// distinguishable from missing posts.
func (h *PostHandler) GetPublishedPost(c echo.Context) error {
	post, err := h.postRepository.GetPublishedPostBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"post": post})
}

// GetPost returns a post of any status by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"post": post})
}

// CreatePost creates a new post. The slug is assigned server-side from the
// supplied slug hint or the title, suffixed until unique; the view counter
// always starts at zero.
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Status:        req.Status,
		Author:        req.Author,
		Tags:          models.NormalizeTags(req.Tags),
		Views:         0,
	}
	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}
	if post.Author == "" {
		post.Author = models.DefaultPostAuthor
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	var base string
	if req.Slug != "" {
		base = slugs.Make(req.Slug)
	}

	if err := h.slugAssigner.CreateWithUniqueSlug(c.Request().Context(), post, base); err != nil {
		if errors.Is(err, repositories.ErrDuplicateSlug) {
			return echo.NewHTTPError(http.StatusConflict, "Slug already exists")
		}
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"post": post})
}

// UpdatePost applies partial updates to a post. The slug and the view
// counter stay as they are even when the raw request carries them.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.UpdatePost(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"post": post})
}

// DeletePost deletes a post and its view log entries. The cascade is
// best-effort: a failure after the post is gone only leaves entries that
// expire on their own.
func (h *PostHandler) DeletePost(c echo.Context) error {
	post, err := h.postRepository.DeletePost(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return err
	}

	if err := h.viewLogRepository.DeleteBySlug(c.Request().Context(), post.Slug); err != nil {
		c.Logger().Errorf("failed to delete view logs for slug %q: %v", post.Slug, err)
	}

	return c.NoContent(http.StatusNoContent)
}
