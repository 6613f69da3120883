// Package sitemap renders the search-engine files for the public site:
// sitemap.xml, its gzip copy, a human-readable sitemap.html and robots.txt.
package sitemap

import (
	"bytes"
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/natefinch/atomic"
)

// Output file names, relative to the target directory.
const (
	FileXML    = "sitemap.xml"
	FileXMLGz  = "sitemap.xml.gz"
	FileHTML   = "sitemap.html"
	FileRobots = "robots.txt"
)

const (
	nsSitemap = "http://www.sitemaps.org/schemas/sitemap/0.9"
	nsXHTML   = "http://www.w3.org/1999/xhtml"

	lastModLayout = "2006-01-02T15:04:05.000Z07:00"
	humanLayout   = "Monday, 2 January 2006"
)

// Page is one public URL of the site.
type Page struct {
	Path        string
	Title       string
	Description string
	ChangeFreq  string
	Priority    float64
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	XHTML   string     `xml:"xmlns:xhtml,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type Generator struct {
	siteName string
	baseURL  string
	loc      *time.Location
	now      func() time.Time
}

// New creates a generator for baseURL. Human-readable dates are shown in loc.
func New(siteName, baseURL string, loc *time.Location) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{
		siteName: siteName,
		baseURL:  strings.TrimRight(baseURL, "/"),
		loc:      loc,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for lastmod and generation dates.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// URL returns the absolute location of path.
func (g *Generator) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return g.baseURL + path
}

// XML renders the urlset. Every page gets the generation time as lastmod.
func (g *Generator) XML(pages []Page) ([]byte, error) {
	lastMod := g.now().UTC().Format(lastModLayout)

	set := urlSet{Xmlns: nsSitemap, XHTML: nsXHTML}
	for _, p := range pages {
		entry := urlEntry{
			Loc:        g.URL(p.Path),
			LastMod:    lastMod,
			ChangeFreq: p.ChangeFreq,
		}
		if p.Priority > 0 {
			entry.Priority = strconv.FormatFloat(p.Priority, 'f', 1, 64)
		}
		set.URLs = append(set.URLs, entry)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(set); err != nil {
		return nil, fmt.Errorf("encode urlset: %w", err)
	}
	return buf.Bytes(), nil
}

// Gzip compresses data at the default level.
func Gzip(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type htmlCard struct {
	Title       string
	Description string
	Path        string
}

type htmlData struct {
	SiteName  string
	BaseURL   string
	Count     int
	Generated string
	Cards     []htmlCard
}

// HTML renders the human-readable sitemap.
func (g *Generator) HTML(pages []Page) ([]byte, error) {
	data := htmlData{
		SiteName:  g.siteName,
		BaseURL:   g.baseURL,
		Count:     len(pages),
		Generated: g.now().In(g.loc).Format(humanLayout),
	}
	for _, p := range pages {
		data.Cards = append(data.Cards, htmlCard{Title: p.Title, Description: p.Description, Path: p.Path})
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render html sitemap: %w", err)
	}
	return buf.Bytes(), nil
}

// Robots renders robots.txt allowing everything and pointing at both sitemaps.
func (g *Generator) Robots() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s - robots.txt\n", g.siteName)
	fmt.Fprintf(&b, "# Generated on %s\n\n", g.now().UTC().Format(lastModLayout))
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n\n")
	b.WriteString("# Sitemaps\n")
	fmt.Fprintf(&b, "Sitemap: %s\n", g.URL(FileXML))
	fmt.Fprintf(&b, "Sitemap: %s\n", g.URL(FileHTML))
	return []byte(b.String())
}

// WriteAll renders every file into dir, creating it if needed. Each file is
// replaced atomically so a server reading dir never sees a partial write.
// It returns the paths written.
func (g *Generator) WriteAll(dir string, pages []Page) ([]string, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to index")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	xmlData, err := g.XML(pages)
	if err != nil {
		return nil, err
	}
	gz, err := Gzip(xmlData)
	if err != nil {
		return nil, fmt.Errorf("compress sitemap: %w", err)
	}
	htmlPage, err := g.HTML(pages)
	if err != nil {
		return nil, err
	}

	files := []struct {
		name string
		data []byte
	}{
		{FileXML, xmlData},
		{FileXMLGz, gz},
		{FileHTML, htmlPage},
		{FileRobots, g.Robots()},
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := atomic.WriteFile(path, bytes.NewReader(f.data)); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

var htmlTemplate = template.Must(template.New(FileHTML).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Sitemap - {{.SiteName}}</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: 'Inter', Arial, sans-serif; line-height: 1.6; color: #333; background: #f8f9fa; }
    .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #007bff, #0056b3); color: #fff; padding: 40px 20px; text-align: center; margin-bottom: 40px; border-radius: 10px; }
    .header h1 { font-size: 2.5rem; margin-bottom: 10px; font-weight: 600; }
    .meta-info { background: #e9ecef; padding: 20px; border-radius: 8px; margin-bottom: 30px; }
    .meta-info ul { list-style: none; }
    .meta-info li { padding: 8px 0; border-bottom: 1px solid #dee2e6; color: #6c757d; }
    .meta-info li:last-child { border-bottom: none; }
    .sitemap-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(300px, 1fr)); gap: 30px; margin-bottom: 40px; }
    .sitemap-card { background: #fff; border-radius: 10px; padding: 25px; box-shadow: 0 4px 6px rgba(0,0,0,0.1); }
    .sitemap-card h3 { color: #007bff; margin-bottom: 15px; font-size: 1.3rem; }
    .sitemap-card p { color: #666; margin-bottom: 20px; }
    .sitemap-card a { display: inline-block; background: #007bff; color: #fff; text-decoration: none; padding: 10px 20px; border-radius: 5px; }
    .footer { text-align: center; padding: 30px 20px; background: #fff; border-radius: 10px; color: #666; }
    .footer a { color: #007bff; }
    @media (max-width: 768px) { .header h1 { font-size: 2rem; } .sitemap-grid { grid-template-columns: 1fr; gap: 20px; } }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>{{.SiteName}}</h1>
      <p>Complete Lifting Solutions - Website Sitemap</p>
    </div>

    <div class="meta-info">
      <h3>Sitemap Information</h3>
      <ul>
        <li><strong>Total Pages:</strong> {{.Count}}</li>
        <li><strong>Last Updated:</strong> {{.Generated}}</li>
        <li><strong>Base URL:</strong> <a href="{{.BaseURL}}" target="_blank">{{.BaseURL}}</a></li>
        <li><strong>XML Sitemap:</strong> <a href="/sitemap.xml" target="_blank">/sitemap.xml</a></li>
      </ul>
    </div>

    <div class="sitemap-grid">
      {{- range .Cards}}
      <div class="sitemap-card">
        <h3>{{.Title}}</h3>
        <p>{{.Description}}</p>
        <a href="{{.Path}}" target="_blank">Visit Page</a>
      </div>
      {{- end}}
    </div>

    <div class="footer">
      <p>This sitemap was automatically generated for {{.SiteName}}</p>
      <p>For more information, visit <a href="{{.BaseURL}}">{{.BaseURL}}</a></p>
      <p>Generated on {{.Generated}}</p>
    </div>
  </div>
</body>
</html>
`))
