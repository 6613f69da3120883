package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Catalog holds every page of the site, ordered for navigation.
type Catalog struct {
	pages  []*Page
	bySlug map[string]*Page
}

// LoadCatalog reads dir/*.md from fsys. A page without a slug takes the
// file name as its slug.
func LoadCatalog(fsys fs.FS, dir string) (*Catalog, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no pages found in %s", dir)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	c := &Catalog{bySlug: make(map[string]*Page, len(files))}

	for _, name := range files {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		meta, body, err := splitFrontmatter(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		page, err := parsePageMeta(meta)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if page.Slug == "" {
			page.Slug = strings.TrimSuffix(path.Base(name), ".md")
		}

		var html bytes.Buffer
		if err := md.Convert(body, &html); err != nil {
			return nil, fmt.Errorf("%s: render markdown: %w", name, err)
		}
		// Content is authored in the repository, not by visitors.
		page.Body = template.HTML(html.String())

		if _, dup := c.bySlug[page.Slug]; dup {
			return nil, fmt.Errorf("duplicate page slug %q", page.Slug)
		}
		c.bySlug[page.Slug] = page
		c.pages = append(c.pages, page)
	}

	sort.SliceStable(c.pages, func(i, j int) bool {
		return c.pages[i].Order < c.pages[j].Order
	})
	return c, nil
}

func (c *Catalog) Page(slug string) (*Page, bool) {
	p, ok := c.bySlug[slug]
	return p, ok
}

// Routable returns the pages served at their own path, in order.
func (c *Catalog) Routable() []*Page {
	out := make([]*Page, 0, len(c.pages))
	for _, p := range c.pages {
		if p.Routable() {
			out = append(out, p)
		}
	}
	return out
}

// Nav returns the routable pages that have a navigation label.
func (c *Catalog) Nav() []*Page {
	out := make([]*Page, 0, len(c.pages))
	for _, p := range c.Routable() {
		if p.NavLabel != "" {
			out = append(out, p)
		}
	}
	return out
}
