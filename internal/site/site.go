package site

import (
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"github.com/kirtansukhadiya/logified-prod/internal/domain"
	"github.com/kirtansukhadiya/logified-prod/pkg/validation"
)

// Well-known pages and the template every page is rendered with.
const (
	LayoutTemplate = "layout"
	SlugContact    = "contact"
	SlugNotFound   = "404"
	SlugError      = "error"
)

// Site bundles the page catalog with the parsed layout templates.
type Site struct {
	Name      string
	BaseURL   string
	Catalog   *Catalog
	Templates *template.Template

	now func() time.Time
}

// New loads content/*.md and templates/*.tmpl from fsys.
func New(name, baseURL string, fsys fs.FS) (*Site, error) {
	catalog, err := LoadCatalog(fsys, "content")
	if err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}
	for _, slug := range []string{SlugContact, SlugNotFound, SlugError} {
		if _, ok := catalog.Page(slug); !ok {
			return nil, fmt.Errorf("missing required page %q", slug)
		}
	}

	tmpl, err := template.New("").Funcs(FuncMap()).ParseFS(fsys, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if tmpl.Lookup(LayoutTemplate) == nil {
		return nil, fmt.Errorf("template %q not defined", LayoutTemplate)
	}

	return &Site{
		Name:      name,
		BaseURL:   baseURL,
		Catalog:   catalog,
		Templates: tmpl,
		now:       time.Now,
	}, nil
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"isActive": func(slug, current string) string {
			if slug == current {
				return "active"
			}
			return ""
		},
	}
}

// FormRules are the contact form constraints rendered as HTML attributes.
// They come from pkg/validation so the browser and the server agree.
type FormRules struct {
	NameMin      int
	NameMax      int
	EmailMax     int
	EmailPattern string
	PhoneMax     int
	MessageMin   int
	MessageMax   int
}

func ContactFormRules() FormRules {
	return FormRules{
		NameMin:      validation.NameMinLength,
		NameMax:      validation.NameMaxLength,
		EmailMax:     validation.EmailMaxLength,
		EmailPattern: validation.EmailPattern,
		PhoneMax:     validation.PhoneMaxLength,
		MessageMin:   validation.MessageMinLength,
		MessageMax:   validation.MessageMaxLength,
	}
}

// ContactForm is the state of the contact form on the contact page.
type ContactForm struct {
	Rules   FormRules
	Values  domain.ContactSubmission
	Success bool
	Message string // outcome shown above the form; empty on first render
}

// View is the data passed to the layout template.
type View struct {
	SiteName    string
	BaseURL     string
	Page        *Page
	CurrentPage string
	Nav         []*Page
	Year        int
	Form        *ContactForm
}

func (s *Site) View(page *Page) View {
	v := View{
		SiteName:    s.Name,
		BaseURL:     s.BaseURL,
		Page:        page,
		CurrentPage: page.Slug,
		Nav:         s.Catalog.Nav(),
		Year:        s.now().Year(),
	}
	if page.Slug == SlugContact {
		v.Form = &ContactForm{Rules: ContactFormRules()}
	}
	return v
}

// ContactView renders the contact page with a submission outcome.
func (s *Site) ContactView(values domain.ContactSubmission, success bool, message string) View {
	page, _ := s.Catalog.Page(SlugContact)
	v := s.View(page)
	v.Form.Values = values
	v.Form.Success = success
	v.Form.Message = message
	if success {
		v.Form.Values = domain.ContactSubmission{}
	}
	return v
}

// Special returns one of the always-present pages (404, error).
func (s *Site) Special(slug string) *Page {
	page, _ := s.Catalog.Page(slug)
	return page
}
