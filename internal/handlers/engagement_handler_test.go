package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/saurabhkjha/studymaterial-backend/internal/engagement"
	"github.com/saurabhkjha/studymaterial-backend/internal/handlers"
	"github.com/saurabhkjha/studymaterial-backend/internal/models"
)

func newEngagementTestEnv() (*echo.Echo, *postStore, *materialStore) {
	e := echo.New()
	posts := newPostStore()
	materials := newMaterialStore()
	logs := newViewLogStore()
	tracker := engagement.NewTracker(materials, posts, logs)
	handlers.NewEngagementHandler(tracker).RegisterEngagementRoutes(e.Group(""))
	return e, posts, materials
}

func postFrom(e *echo.Echo, ip, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRecordDownloadCountsEveryRequest(t *testing.T) {
	e, _, materials := newEngagementTestEnv()
	material := seedMaterial(t, materials, "Aptitude Set 1")

	var body struct {
		Downloads int64 `json:"downloads"`
	}
	for i := int64(1); i <= 3; i++ {
		rec := postFrom(e, "203.0.113.1", "/materials/"+material.ID.Hex()+"/download")
		require.Equal(t, http.StatusOK, rec.Code)
		decodeJSON(t, rec, &body)
		assert.Equal(t, i, body.Downloads)
	}
}

func TestRecordDownloadNotFound(t *testing.T) {
	e, _, _ := newEngagementTestEnv()

	rec := postFrom(e, "203.0.113.1", "/materials/"+primitive.NewObjectID().Hex()+"/download")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Material not found")
}

func TestRecordViewDedupsByClientIP(t *testing.T) {
	e, posts, _ := newEngagementTestEnv()
	seedPosts(t, posts, 1, models.PostStatusPublished)

	var body engagement.ViewResult

	rec := postFrom(e, "203.0.113.1", "/posts/published-post-1/view")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &body)
	assert.True(t, body.Counted)
	assert.Equal(t, int64(1), body.Views)

	rec = postFrom(e, "203.0.113.1", "/posts/published-post-1/view")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &body)
	assert.False(t, body.Counted)
	assert.Equal(t, int64(1), body.Views)

	rec = postFrom(e, "203.0.113.2", "/posts/published-post-1/view")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &body)
	assert.True(t, body.Counted)
	assert.Equal(t, int64(2), body.Views)
}

func TestRecordViewNotFound(t *testing.T) {
	e, posts, _ := newEngagementTestEnv()
	seedPosts(t, posts, 1, models.PostStatusDraft)

	for _, slug := range []string{"no-such-post", "draft-post-1"} {
		rec := postFrom(e, "203.0.113.1", "/posts/"+slug+"/view")
		assert.Equal(t, http.StatusNotFound, rec.Code, slug)
		assert.Contains(t, rec.Body.String(), "Post not found", slug)
	}
}
