// Package plotpage renders traffic report pages: themed HTML with embedded
// go-echarts charts, stat strips and tables.
package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
)

const styleTagLen = 8 // len("</style>").

// Renderable is the interface for chart and component content.
type Renderable interface {
	Render(w io.Writer) error
}

// Section represents one titled block of the report page.
type Section struct {
	Title    string
	Subtitle string
	Content  Renderable
}

// Page represents a complete report page.
type Page struct {
	Title       string
	Description string
	ProjectName string
	GeneratedAt string
	Theme       Theme
	Sections    []Section
}

// NewPage creates a report page with project branding defaults.
func NewPage(title, description string) *Page {
	return &Page{
		Title:       title,
		Description: description,
		ProjectName: "github-repo-stats",
		Theme:       ThemeLight,
	}
}

// Add appends sections to the page.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

// Render writes the page as standalone HTML.
func (p *Page) Render(w io.Writer) error {
	themeConfig := GetThemeConfig(p.Theme)

	header, err := renderTemplate("header.html", headerData{
		ProjectName: p.ProjectName,
		Title:       p.Title,
		Description: p.Description,
		GeneratedAt: p.GeneratedAt,
	})
	if err != nil {
		return fmt.Errorf("render header: %w", err)
	}

	var sectionsHTML bytes.Buffer

	for _, section := range p.Sections {
		sectionHTML, sectionErr := renderSection(section)
		if sectionErr != nil {
			return fmt.Errorf("render section %q: %w", section.Title, sectionErr)
		}

		sectionsHTML.WriteString(string(sectionHTML))
	}

	darkClass := ""
	if p.Theme == ThemeDark {
		darkClass = "dark"
	}

	html, err := renderTemplate("page.html", pageData{
		Title:       p.Title,
		ProjectName: p.ProjectName,
		DarkClass:   darkClass,
		Theme:       themeConfig,
		Header:      header,
		Content:     template.HTML(sectionsHTML.String()),
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	_, err = w.Write([]byte(html))
	if err != nil {
		return fmt.Errorf("writing page: %w", err)
	}

	return nil
}

func renderSection(section Section) (template.HTML, error) {
	var content string

	if section.Content != nil {
		var buf bytes.Buffer

		err := section.Content.Render(&buf)
		if err != nil {
			return "", fmt.Errorf("rendering content: %w", err)
		}

		content = extractChartContent(buf.String())
	}

	return renderTemplate("section.html", sectionData{
		Title:    section.Title,
		Subtitle: section.Subtitle,
		Content:  template.HTML(content),
	})
}

// extractChartContent strips the full HTML page wrapper that echarts chart
// rendering emits, keeping only the chart element and its init script.
// Component fragments that are not full pages pass through unchanged.
func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}

	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="echart-box"`)

	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, `<style>`)
		if i == -1 {
			break
		}

		j := strings.Index(content[i:], `</style>`)
		if j == -1 {
			break
		}

		content = content[:i] + content[i+j+styleTagLen:]
	}

	return content
}
