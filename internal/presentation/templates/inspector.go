// Package templates renders the inspector as htmx HTML fragments
package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/AtRiskMedia/tractstack-inspector/internal/application/services"
	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/inspector"
)

var inspectorTemplates = template.Must(template.New("inspector").Parse(
	`{{define "inspector"}}<aside id="inspector-{{.SessionID}}" class="inspector" data-component-id="{{.ComponentID}}">` +
		`<header class="inspector-header"><h2>{{.ComponentName}}</h2><span class="inspector-type">{{.ComponentType}}</span>` +
		`<button type="button" class="inspector-export" hx-get="{{.Base}}/export" hx-target="#inspector-toast-{{.SessionID}}">Export JSON</button>` +
		`<button type="button" class="inspector-delete" hx-delete="{{.Base}}/component" hx-target="#inspector-{{.SessionID}}" hx-swap="outerHTML">Delete</button>` +
		`</header>` +
		`<nav class="inspector-tabs">{{range .Tabs}}{{template "tab" .}}{{end}}</nav>` +
		`<section class="inspector-panel">{{if .Empty}}{{template "empty" .Empty}}{{else}}{{range .Groups}}{{template "group" .}}{{end}}{{end}}</section>` +
		`<div id="inspector-toast-{{.SessionID}}" class="inspector-toast"></div>` +
		`</aside>{{end}}` +
		`{{define "tab"}}<button type="button" class="inspector-tab{{if .Active}} active{{end}}" hx-put="{{.Endpoint}}" hx-vals="{{.Vals}}" hx-target="#inspector-{{.SessionID}}" hx-swap="outerHTML">{{.Label}}</button>{{end}}` +
		`{{define "empty"}}<div class="inspector-empty"><i class="icon icon-{{.Icon}}"></i><h3>{{.Title}}</h3><p>{{.Message}}</p></div>{{end}}` +
		`{{define "group"}}{{if .Name}}<fieldset class="inspector-group"><legend>{{.Name}}</legend>{{range .Fields}}{{template "field" .}}{{end}}</fieldset>{{else}}{{range .Fields}}{{template "field" .}}{{end}}{{end}}{{end}}` +
		`{{define "field"}}<label class="inspector-field inspector-{{.Control}}" for="{{.InputID}}"><span>{{.Label}}</span>` +
		`{{if eq .Control "textarea"}}<textarea id="{{.InputID}}" name="value" placeholder="{{.Placeholder}}" {{template "hx" .}}>{{.Text}}</textarea>` +
		`{{else if eq .Control "checkbox"}}<input id="{{.InputID}}" type="checkbox" name="value" value="true"{{if .Checked}} checked{{end}} {{template "hx" .}}>` +
		`{{else if eq .Control "select"}}<select id="{{.InputID}}" name="value" {{template "hx" .}}>{{$current := .Text}}{{range .Options}}<option value="{{.Value}}"{{if eq .Value $current}} selected{{end}}>{{.Label}}</option>{{end}}</select>` +
		`{{else if eq .Control "number"}}<input id="{{.InputID}}" type="number" name="value" value="{{.Text}}" {{template "hx" .}}>` +
		`{{else}}<input id="{{.InputID}}" type="text" name="value" value="{{.Text}}" placeholder="{{.Placeholder}}" {{template "hx" .}}>{{end}}` +
		`</label>{{end}}` +
		`{{define "hx"}}hx-post="{{.Endpoint}}" hx-trigger="change" hx-vals="{{.Vals}}" hx-target="#inspector-{{.SessionID}}" hx-swap="outerHTML"{{end}}` +
		`{{define "toast"}}<div class="toast {{if .Success}}toast-success{{else}}toast-error{{end}}" role="status">{{.Message}}</div>{{end}}`,
))

type inspectorData struct {
	SessionID     string
	ComponentID   string
	ComponentName string
	ComponentType string
	Base          string
	Tabs          []tabData
	Groups        []groupData
	Empty         *inspector.EmptyState
}

type tabData struct {
	SessionID string
	Label     string
	Active    bool
	Endpoint  string
	Vals      string
}

type groupData struct {
	Name   string
	Fields []fieldData
}

type fieldData struct {
	SessionID   string
	InputID     string
	Label       string
	Control     string
	Placeholder string
	Options     []inspector.Option
	Text        string
	Checked     bool
	Endpoint    string
	Vals        string
}

type toastData struct {
	Success bool
	Message string
}

// InspectorRenderer renders inspector views under a sessions base path such
// as /api/v1/inspector/sessions.
type InspectorRenderer struct {
	basePath string
}

// NewInspectorRenderer creates a renderer whose htmx requests target basePath.
func NewInspectorRenderer(basePath string) *InspectorRenderer {
	return &InspectorRenderer{basePath: basePath}
}

// RenderInspector renders the full inspector fragment for view.
func (r *InspectorRenderer) RenderInspector(view *services.InspectorView) (string, error) {
	base := r.basePath + "/" + view.SessionID
	data := inspectorData{
		SessionID:     view.SessionID,
		ComponentID:   view.Component.ID,
		ComponentName: view.Component.Name,
		ComponentType: string(view.Component.Type),
		Base:          base,
		Empty:         view.Panel.Empty,
	}

	for _, tab := range view.Tabs {
		data.Tabs = append(data.Tabs, tabData{
			SessionID: view.SessionID,
			Label:     tab.Label(),
			Active:    tab == view.ActiveTab,
			Endpoint:  base + "/tab",
			Vals:      mustVals(map[string]string{"tab": string(tab)}),
		})
	}

	for _, fv := range view.Panel.Fields {
		fd := fieldData{
			SessionID:   view.SessionID,
			InputID:     fmt.Sprintf("%s-%s-%s", view.SessionID, view.Panel.Tab, fv.ID),
			Label:       fv.Label,
			Control:     string(fv.Control),
			Placeholder: fv.Placeholder,
			Options:     fv.Options,
			Text:        displayValue(fv.Value),
			Endpoint:    base + "/fields",
			Vals:        mustVals(map[string]string{"tab": string(view.Panel.Tab), "field": fv.ID}),
		}
		if b, ok := fv.Value.(bool); ok {
			fd.Checked = b
		}
		if n := len(data.Groups); n > 0 && data.Groups[n-1].Name == fv.Group {
			data.Groups[n-1].Fields = append(data.Groups[n-1].Fields, fd)
			continue
		}
		data.Groups = append(data.Groups, groupData{Name: fv.Group, Fields: []fieldData{fd}})
	}

	return execute("inspector", data)
}

// RenderToast renders the export notice.
func (r *InspectorRenderer) RenderToast(success bool, message string) (string, error) {
	return execute("toast", toastData{Success: success, Message: message})
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := inspectorTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

func mustVals(v map[string]string) string {
	raw, _ := json.Marshal(v)
	return string(raw)
}

func displayValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(t)
	}
}
