package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirtansukhadiya/logified-prod/pkg/sitemap"
)

func TestRootCmd(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	out := t.TempDir()

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--base-url", "https://staging.logified.in", "--out", out})
	require.NoError(t, cmd.Execute())

	for _, name := range []string{sitemap.FileXML, sitemap.FileXMLGz, sitemap.FileHTML, sitemap.FileRobots} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}

	xmlData, err := os.ReadFile(filepath.Join(out, sitemap.FileXML))
	require.NoError(t, err)
	s := string(xmlData)
	for _, loc := range []string{"/", "/about", "/products", "/why-choose", "/contact"} {
		assert.Contains(t, s, "<loc>https://staging.logified.in"+loc+"</loc>")
	}
	assert.Equal(t, 5, strings.Count(s, "<url>"), "404 and error pages are not indexed")

	robots, err := os.ReadFile(filepath.Join(out, sitemap.FileRobots))
	require.NoError(t, err)
	assert.Contains(t, string(robots), "Sitemap: https://staging.logified.in/sitemap.xml")
}

func TestRootCmdRejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SetErr(new(strings.Builder))
	assert.Error(t, cmd.Execute())
}
