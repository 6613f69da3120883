package sitemap_test

import (
	"bytes"
	"compress/gzip"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirtansukhadiya/logified-prod/pkg/sitemap"
)

var fixedNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

var pages = []sitemap.Page{
	{Path: "/", Title: "Home", Description: "Lifting solutions", ChangeFreq: "weekly", Priority: 1.0},
	{Path: "/about", Title: "About Us", Description: "Who we are", ChangeFreq: "monthly", Priority: 0.8},
	{Path: "/products", Title: "Products & Services", Description: "Cranes <and> hoists", ChangeFreq: "weekly", Priority: 0.9},
}

func newGenerator() *sitemap.Generator {
	return sitemap.New("LOGIFIED SOLUTIONS", "https://logified.in/", time.UTC).
		WithClock(func() time.Time { return fixedNow })
}

type parsedURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []struct {
		Loc        string `xml:"loc"`
		LastMod    string `xml:"lastmod"`
		ChangeFreq string `xml:"changefreq"`
		Priority   string `xml:"priority"`
	} `xml:"url"`
}

func TestXML(t *testing.T) {
	data, err := newGenerator().XML(pages)
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.HasPrefix(s, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, s, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, s, `xmlns:xhtml="http://www.w3.org/1999/xhtml"`)

	var set parsedURLSet
	require.NoError(t, xml.Unmarshal(data, &set))
	require.Len(t, set.URLs, 3)

	assert.Equal(t, "https://logified.in/", set.URLs[0].Loc)
	assert.Equal(t, "1.0", set.URLs[0].Priority)
	assert.Equal(t, "weekly", set.URLs[0].ChangeFreq)
	assert.Equal(t, "2026-10-17T09:30:00.000Z", set.URLs[0].LastMod)
	assert.Equal(t, "https://logified.in/about", set.URLs[1].Loc)
	assert.Equal(t, "0.8", set.URLs[1].Priority)
}

func TestGzip(t *testing.T) {
	data, err := newGenerator().XML(pages)
	require.NoError(t, err)

	gz, err := sitemap.Gzip(data)
	require.NoError(t, err)

	zr, err := gzip.NewReader(bytes.NewReader(gz))
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, data, plain)
}

func TestHTML(t *testing.T) {
	data, err := newGenerator().HTML(pages)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, "<title>Sitemap - LOGIFIED SOLUTIONS</title>")
	assert.Contains(t, s, "<strong>Total Pages:</strong> 3")
	assert.Contains(t, s, "Saturday, 17 October 2026")
	assert.Contains(t, s, `href="https://logified.in"`)
	assert.Contains(t, s, `<a href="/about" target="_blank">Visit Page</a>`)
	assert.Contains(t, s, "Products &amp; Services")
	assert.Contains(t, s, "Cranes &lt;and&gt; hoists")
}

func TestHTMLOperatorZone(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	late := time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC)
	g := sitemap.New("LOGIFIED SOLUTIONS", "https://logified.in", ist).WithClock(func() time.Time { return late })

	data, err := g.HTML(pages)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Sunday, 18 October 2026")
}

func TestRobots(t *testing.T) {
	robots := string(newGenerator().Robots())

	assert.Contains(t, robots, "User-agent: *\nAllow: /\n")
	assert.Contains(t, robots, "Sitemap: https://logified.in/sitemap.xml\n")
	assert.Contains(t, robots, "Sitemap: https://logified.in/sitemap.html\n")
	assert.Contains(t, robots, "# Generated on 2026-10-17T09:30:00.000Z")
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public")

	written, err := newGenerator().WriteAll(dir, pages)
	require.NoError(t, err)
	require.Len(t, written, 4)

	for _, name := range []string{sitemap.FileXML, sitemap.FileXMLGz, sitemap.FileHTML, sitemap.FileRobots} {
		path := filepath.Join(dir, name)
		assert.Contains(t, written, path)
		info, err := os.Stat(path)
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}

	t.Run("overwrites previous output", func(t *testing.T) {
		_, err := newGenerator().WriteAll(dir, pages[:1])
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, sitemap.FileXML))
		require.NoError(t, err)
		var set parsedURLSet
		require.NoError(t, xml.Unmarshal(data, &set))
		assert.Len(t, set.URLs, 1)
	})

	t.Run("no pages", func(t *testing.T) {
		_, err := newGenerator().WriteAll(dir, nil)
		assert.Error(t, err)
	})
}
