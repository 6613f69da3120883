// Command sitemap writes sitemap.xml, sitemap.xml.gz, sitemap.html and
// robots.txt for every routable page into the public directory.
package main

import (
	"fmt"
	"log/slog"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/kirtansukhadiya/logified-prod/config"
	"github.com/kirtansukhadiya/logified-prod/internal/site"
	"github.com/kirtansukhadiya/logified-prod/pkg/logger"
	"github.com/kirtansukhadiya/logified-prod/pkg/sitemap"
	"github.com/kirtansukhadiya/logified-prod/web"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var baseURL, outDir string

	cmd := &cobra.Command{
		Use:          "sitemap",
		Short:        "Generate sitemap and robots.txt files",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := logger.New(cfg.LogLevel, "text")

			if !cmd.Flags().Changed("base-url") {
				baseURL = cfg.BaseURL
			}
			if !cmd.Flags().Changed("out") {
				outDir = cfg.PublicDir
			}

			s, err := site.New(cfg.SiteName, baseURL, web.FS)
			if err != nil {
				return fmt.Errorf("load site: %w", err)
			}

			gen := sitemap.New(cfg.SiteName, baseURL, cfg.Location())
			written, err := gen.WriteAll(outDir, sitemapPages(s.Catalog))
			if err != nil {
				return err
			}

			log.Info("sitemap generated", slog.String("base_url", baseURL), slog.Int("pages", len(s.Catalog.Routable())))
			for _, path := range written {
				log.Info("wrote file", slog.String("path", path))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "absolute site URL (default BASE_URL)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default PUBLIC_DIR)")
	return cmd
}

func sitemapPages(c *site.Catalog) []sitemap.Page {
	routable := c.Routable()
	pages := make([]sitemap.Page, 0, len(routable))
	for _, p := range routable {
		pages = append(pages, sitemap.Page{
			Path:        p.Path,
			Title:       p.Title,
			Description: p.Description,
			ChangeFreq:  p.ChangeFreq,
			Priority:    p.Priority,
		})
	}
	return pages
}
