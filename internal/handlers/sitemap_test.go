package handlers_test

import (
	"encoding/xml"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saurabhkjha/studymaterial-backend/internal/handlers"
	"github.com/saurabhkjha/studymaterial-backend/internal/models"
)

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []struct {
		Loc     string `xml:"loc"`
		LastMod string `xml:"lastmod"`
	} `xml:"url"`
}

func newSitemapTestEnv(siteURL string) (*echo.Echo, *postStore) {
	e := echo.New()
	posts := newPostStore()
	handlers.NewSitemapHandler(posts, siteURL).RegisterSitemapRoutes(e.Group(""))
	return e, posts
}

func TestSitemapListsPublishedPosts(t *testing.T) {
	e, posts := newSitemapTestEnv("https://saurabhjha.co.in")
	seedPosts(t, posts, 2, models.PostStatusPublished)
	seedPosts(t, posts, 1, models.PostStatusDraft)

	rec := doJSON(e, http.MethodGet, "/sitemap.xml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/xml")
	assert.True(t, strings.HasPrefix(rec.Body.String(), xml.Header), "response must start with the XML declaration")

	var set urlSet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &set))
	assert.Equal(t, "http://www.sitemaps.org/schemas/sitemap/0.9", set.XMLNS)

	locs := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		locs = append(locs, u.Loc)
	}
	assert.Equal(t, "https://saurabhjha.co.in/", locs[0], "site root comes first")
	assert.Contains(t, locs, "https://saurabhjha.co.in/blog/published-post-1")
	assert.Contains(t, locs, "https://saurabhjha.co.in/blog/published-post-2")
	assert.Len(t, locs, 3, "drafts stay out of the sitemap")

	for _, u := range set.URLs[1:] {
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, u.LastMod)
	}
}

func TestSitemapTrimsTrailingSlash(t *testing.T) {
	e, _ := newSitemapTestEnv("https://saurabhjha.co.in/")

	rec := doJSON(e, http.MethodGet, "/sitemap.xml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<loc>https://saurabhjha.co.in/</loc>")
	assert.NotContains(t, rec.Body.String(), "co.in//")
}
