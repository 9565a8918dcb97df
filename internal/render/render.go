// Package render writes a portfolio as an HTML page or as terminal text.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/folio/internal/client/models"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templates = template.Must(
	template.New("").Funcs(template.FuncMap{"footer": Footer}).ParseFS(templatesFS, "templates/*.tmpl"),
)

type Options struct {
	// Editable shows the edit affordance in the header.
	Editable bool
	// Year printed in the footer; zero means the current year.
	Year int
}

// Footer is the copyright line at the bottom of the page.
func Footer(year int, name string) string {
	return fmt.Sprintf("© %d %s. All rights reserved.", year, name)
}

func HTML(w io.Writer, p *models.Portfolio, opts Options) error {
	if opts.Year == 0 {
		opts.Year = time.Now().Year()
	}
	return templates.ExecuteTemplate(w, "page.html.tmpl", struct {
		P    *models.Portfolio
		Opts Options
		Year int
	}{p, opts, opts.Year})
}

// ErrorPage writes the load error page; retryURL defaults to the current page.
func ErrorPage(w io.Writer, message, retryURL string) error {
	if retryURL == "" {
		retryURL = "."
	}
	return templates.ExecuteTemplate(w, "error.html.tmpl", struct {
		Message  string
		RetryURL string
	}{message, retryURL})
}

// Text writes the terminal rendering of p.
func Text(w io.Writer, p *models.Portfolio, year int) error {
	if year == 0 {
		year = time.Now().Year()
	}

	var b strings.Builder
	line := func(format string, args ...any) { fmt.Fprintf(&b, format+"\n", args...) }
	heading := func(s string) { line("\n== %s ==", s) }

	line("%s", p.Name)
	if p.ProfilePic != "" {
		line("[picture] %s", p.ProfilePic)
	}
	if len(p.ExpertiseRoles) > 0 {
		line("%s", strings.Join(p.ExpertiseRoles, " | "))
	}

	heading("About Me")
	line("%s", p.AboutMe)

	heading("My Expertise")
	for i, e := range p.Expertise {
		line("%d. %s%s", i+1, e.Name, suffix(" [img] ", e.Img))
	}

	heading("My Projects")
	for i, pr := range p.Projects {
		line("%d. %s%s", i+1, pr.Name, suffix(" -> ", pr.Link))
		if pr.Description != "" {
			line("   %s", pr.Description)
		}
		if pr.Img != "" {
			line("   [img] %s", pr.Img)
		}
	}

	heading("Connect With Me")
	for i, s := range p.SocialLinks {
		line("%d. %s%s", i+1, s.Name, suffix(" -> ", s.Link))
	}

	heading("Get In Touch")
	if p.Contact.Email != "" {
		line("email:   %s", p.Contact.Email)
	}
	if p.Contact.Phone != "" {
		line("phone:   %s", p.Contact.Phone)
	}
	if p.Contact.Address != "" {
		line("address: %s", p.Contact.Address)
	}

	line("\n%s", Footer(year, p.Name))

	_, err := io.WriteString(w, b.String())
	return err
}

func suffix(sep, v string) string {
	if v == "" {
		return ""
	}
	return sep + v
}
