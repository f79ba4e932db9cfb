package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/saurabhkjha/studymaterial-backend/internal/repositories"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// SitemapHandler serves the sitemap built from published posts
type SitemapHandler struct {
	postRepository repositories.PostRepository
	siteURL        string
}

// NewSitemapHandler creates a new SitemapHandler
func NewSitemapHandler(postRepo repositories.PostRepository, siteURL string) *SitemapHandler {
	return &SitemapHandler{
		postRepository: postRepo,
		siteURL:        strings.TrimRight(siteURL, "/"),
	}
}

// RegisterSitemapRoutes registers the sitemap route
func (h *SitemapHandler) RegisterSitemapRoutes(g *echo.Group) {
	g.GET("/sitemap.xml", h.GetSitemap)
}

// GetSitemap renders the XML sitemap: the site root plus one entry per
// published post under /blog, with lastmod from the post's update time.
func (h *SitemapHandler) GetSitemap(c echo.Context) error {
	posts, err := h.postRepository.GetAllPublishedPosts(c.Request().Context())
	if err != nil {
		return err
	}

	urls := []sitemapURL{
		{Loc: h.siteURL + "/"},
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     h.siteURL + "/blog/" + p.Slug,
			LastMod: p.UpdatedAt.Format("2006-01-02"),
		})
	}

	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
