package site_test

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirtansukhadiya/logified-prod/internal/domain"
	"github.com/kirtansukhadiya/logified-prod/internal/site"
	"github.com/kirtansukhadiya/logified-prod/web"
)

func TestLoadCatalog(t *testing.T) {
	fsys := fstest.MapFS{
		"content/b.md": &fstest.MapFile{Data: []byte("---\npath: /b\ntitle: B\norder: 2\nnav: Bee\n---\n# Bee **bold**\n")},
		"content/a.md": &fstest.MapFile{Data: []byte("---\nslug: alpha\npath: /\ntitle: A\norder: 1\npriority: 1.0\nchangefreq: weekly\n---\nHello\n")},
		"content/hidden.md": &fstest.MapFile{Data: []byte("---\ntitle: Hidden\norder: 3\n---\nNo route\n")},
	}

	c, err := site.LoadCatalog(fsys, "content")
	require.NoError(t, err)

	routable := c.Routable()
	require.Len(t, routable, 2)
	assert.Equal(t, "alpha", routable[0].Slug)
	assert.Equal(t, "b", routable[1].Slug, "slug falls back to the file name")
	assert.Equal(t, 1.0, routable[0].Priority)
	assert.Equal(t, "weekly", routable[0].ChangeFreq)

	nav := c.Nav()
	require.Len(t, nav, 1)
	assert.Equal(t, "Bee", nav[0].NavLabel)

	b, ok := c.Page("b")
	require.True(t, ok)
	assert.Contains(t, string(b.Body), "<strong>bold</strong>")

	hidden, ok := c.Page("hidden")
	require.True(t, ok)
	assert.False(t, hidden.Routable())
}

func TestFrontmatterDashesInValues(t *testing.T) {
	fsys := fstest.MapFS{
		"content/x.md": &fstest.MapFile{Data: []byte("---\npath: /x\ntitle: Cranes --- Hoists\ndescription: a---b\n---\nBody text\n\n---\n\nAfter rule\n")},
	}

	c, err := site.LoadCatalog(fsys, "content")
	require.NoError(t, err)

	x, ok := c.Page("x")
	require.True(t, ok)
	assert.Equal(t, "Cranes --- Hoists", x.Title)
	assert.Equal(t, "a---b", x.Description)
	assert.Contains(t, string(x.Body), "Body text")
	assert.Contains(t, string(x.Body), "<hr>")
	assert.Contains(t, string(x.Body), "After rule")
}

func TestLoadCatalogErrors(t *testing.T) {
	t.Run("no pages", func(t *testing.T) {
		_, err := site.LoadCatalog(fstest.MapFS{}, "content")
		assert.Error(t, err)
	})

	t.Run("unterminated frontmatter", func(t *testing.T) {
		fsys := fstest.MapFS{"content/x.md": &fstest.MapFile{Data: []byte("---\ntitle: X\n")}}
		_, err := site.LoadCatalog(fsys, "content")
		assert.ErrorIs(t, err, site.ErrInvalidFrontmatter)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		fsys := fstest.MapFS{
			"content/x.md": &fstest.MapFile{Data: []byte("---\nslug: same\n---\n")},
			"content/y.md": &fstest.MapFile{Data: []byte("---\nslug: same\n---\n")},
		}
		_, err := site.LoadCatalog(fsys, "content")
		assert.Error(t, err)
	})
}

func TestEmbeddedSite(t *testing.T) {
	s, err := site.New("LOGIFIED SOLUTIONS", "https://logified.in", web.FS)
	require.NoError(t, err)

	var paths []string
	for _, p := range s.Catalog.Routable() {
		paths = append(paths, p.Path)
	}
	assert.Equal(t, []string{"/", "/about", "/products", "/why-choose", "/contact"}, paths)

	t.Run("contact page renders the shared form rules", func(t *testing.T) {
		page, ok := s.Catalog.Page(site.SlugContact)
		require.True(t, ok)

		var buf bytes.Buffer
		require.NoError(t, s.Templates.ExecuteTemplate(&buf, site.LayoutTemplate, s.View(page)))
		out := buf.String()
		assert.Contains(t, out, `id="contactForm"`)
		assert.Contains(t, out, `minlength="10"`)
		assert.Contains(t, out, `minlength="2"`)
		assert.Contains(t, out, `class="active" href="/contact"`)
		assert.Contains(t, out, `<link rel="canonical" href="https://logified.in/contact">`)
	})

	t.Run("other pages have no form", func(t *testing.T) {
		page, ok := s.Catalog.Page("about")
		require.True(t, ok)

		var buf bytes.Buffer
		require.NoError(t, s.Templates.ExecuteTemplate(&buf, site.LayoutTemplate, s.View(page)))
		assert.NotContains(t, buf.String(), `id="contactForm"`)
		assert.Contains(t, buf.String(), "<title>About Us - LOGIFIED SOLUTIONS</title>")
	})

	t.Run("contact view keeps values after a rejection", func(t *testing.T) {
		v := s.ContactView(domain.ContactSubmission{Name: "A", Email: "bad-email"}, false, "Please enter a valid email address.")

		var buf bytes.Buffer
		require.NoError(t, s.Templates.ExecuteTemplate(&buf, site.LayoutTemplate, v))
		assert.Contains(t, buf.String(), `value="bad-email"`)
		assert.Contains(t, buf.String(), "Please enter a valid email address.")
	})

	t.Run("contact view clears values after success", func(t *testing.T) {
		v := s.ContactView(domain.ContactSubmission{Name: "Jo"}, true, "Thanks")
		assert.Empty(t, v.Form.Values.Name)
		assert.True(t, v.Form.Success)
	})
}
