package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"ptc/config"
	"ptc/pptx"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	Creator    string
	Date       string
	SourceFile string
	Slides     int
	Tables     int
}

func countTables(prs *pptx.Presentation) int {
	count := 0
	for i := range prs.Slides {
		for j := range prs.Slides[i].Shapes {
			if prs.Slides[i].Shapes[j].HasTable() {
				count++
			}
		}
	}
	return count
}

func expandTemplate(prs *pptx.Presentation, name config.TemplateFieldName, field, src string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		Title:      prs.Props.Title,
		Creator:    prs.Props.Creator,
		Date:       prs.Props.Created,
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		Slides:     len(prs.Slides),
		Tables:     countTables(prs),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
