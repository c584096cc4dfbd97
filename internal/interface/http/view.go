package http

import (
	"embed"
	"html/template"

	"github.com/yanqian/tennis-playability/internal/domain/playability"
)

const formTemplate = "form.html"

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

type formView struct {
	Title       string
	Fields      []fieldView
	Notice      *notice
	Preview     []playability.Row
	Celebrate   bool
	Placeholder string
}

type fieldView struct {
	Name     string
	Header   string
	Label    string
	Selected string
	Options  []optionView
}

// Echo is the "You selected" text under each selector.
func (f fieldView) Echo() string {
	if f.Selected == "" {
		return "None"
	}
	return f.Selected
}

type optionView struct {
	Value    string
	Selected bool
}

type notice struct {
	Kind string
	Text string
}

func successNotice(text string) *notice {
	return &notice{Kind: "success", Text: text}
}

func errorNotice(text string) *notice {
	return &notice{Kind: "error", Text: text}
}

func newFormView(sel playability.Selection, n *notice) formView {
	fields := playability.Fields()
	views := make([]fieldView, 0, len(fields))
	for _, f := range fields {
		current, _ := sel.Value(f.Name)
		opts := make([]optionView, 0, len(f.Options))
		for _, o := range f.Options {
			opts = append(opts, optionView{Value: o, Selected: o == current})
		}
		views = append(views, fieldView{
			Name:     string(f.Name),
			Header:   f.Header,
			Label:    f.Label(),
			Selected: current,
			Options:  opts,
		})
	}
	return formView{
		Title:       "Tennis Playability",
		Fields:      views,
		Notice:      n,
		Placeholder: playability.Placeholder,
	}
}
