package site

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"gopkg.in/yaml.v3"
)

var ErrInvalidFrontmatter = errors.New("invalid frontmatter")

// Page is one entry of the site: its metadata comes from the YAML
// frontmatter of a markdown file, Body is the rendered markdown.
type Page struct {
	Slug        string  `yaml:"slug"`
	Path        string  `yaml:"path"` // empty for pages without a route (404, error)
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	ChangeFreq  string  `yaml:"changefreq"`
	Priority    float64 `yaml:"priority"`
	Order       int     `yaml:"order"`
	NavLabel    string  `yaml:"nav"`

	Body template.HTML `yaml:"-"`
}

// Routable reports whether the page is served at its own URL.
func (p *Page) Routable() bool {
	return p.Path != ""
}

// splitFrontmatter separates the YAML block delimited by "---" lines from
// the markdown body.
func splitFrontmatter(content []byte) (meta, body []byte, err error) {
	delimiter := []byte("---")

	if !bytes.HasPrefix(content, delimiter) {
		return nil, content, nil
	}

	afterFirst := bytes.TrimPrefix(content, delimiter)
	afterFirst = bytes.TrimLeft(afterFirst, "\r\n")
	if len(afterFirst) == 0 {
		return nil, nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	endIdx := closingDelimiter(afterFirst, delimiter)
	if endIdx == -1 {
		return nil, nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	meta = afterFirst[:endIdx]
	body = bytes.TrimLeft(afterFirst[endIdx+len(delimiter):], "\r\n")
	return meta, body, nil
}

// closingDelimiter returns the offset of the first line consisting of
// delimiter alone, or -1.
func closingDelimiter(content, delimiter []byte) int {
	offset := 0
	for offset <= len(content) {
		line := content[offset:]
		if nl := bytes.IndexByte(line, '\n'); nl >= 0 {
			line = line[:nl+1]
		}
		if bytes.Equal(bytes.TrimRight(line, "\r\n"), delimiter) {
			return offset
		}
		if len(line) == 0 || line[len(line)-1] != '\n' {
			return -1
		}
		offset += len(line)
	}
	return -1
}

func parsePageMeta(meta []byte) (*Page, error) {
	p := &Page{}
	if len(bytes.TrimSpace(meta)) == 0 {
		return p, nil
	}
	if err := yaml.Unmarshal(meta, p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
	}
	return p, nil
}
