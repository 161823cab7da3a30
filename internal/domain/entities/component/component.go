// Package component defines the page-builder component entity and the typed
// updaters that produce patches against its attribute trees.
package component

import "time"

// Type tags the component variant and selects its property field set.
type Type string

const (
	TypeHero        Type = "hero"
	TypeHeading     Type = "heading"
	TypeParagraph   Type = "paragraph"
	TypeButton      Type = "button"
	TypeImage       Type = "image"
	TypeForm        Type = "form"
	TypeTestimonial Type = "testimonial"
	TypeGrid        Type = "grid"
)

// KnownTypes lists the closed set of component variants in palette order.
var KnownTypes = []Type{
	TypeHero, TypeHeading, TypeParagraph, TypeButton,
	TypeImage, TypeForm, TypeTestimonial, TypeGrid,
}

// Known reports whether t belongs to the closed variant set.
func (t Type) Known() bool {
	for _, k := range KnownTypes {
		if k == t {
			return true
		}
	}
	return false
}

// Breakpoint is one of the fixed responsive keys.
type Breakpoint string

const (
	BreakpointMobile  Breakpoint = "mobile"
	BreakpointTablet  Breakpoint = "tablet"
	BreakpointDesktop Breakpoint = "desktop"
)

// Breakpoints in display order.
var Breakpoints = []Breakpoint{BreakpointMobile, BreakpointTablet, BreakpointDesktop}

// Valid reports whether bp is one of the fixed breakpoints.
func (bp Breakpoint) Valid() bool {
	return bp == BreakpointMobile || bp == BreakpointTablet || bp == BreakpointDesktop
}

// Attributes is a partial attribute map. An absent key means the editor
// falls back to the field's default; it is not the same as a zero value.
type Attributes map[string]any

// Component is a single editable block on a page-builder canvas.
type Component struct {
	ID               string                    `json:"id" yaml:"id"`
	Type             Type                      `json:"type" yaml:"type"`
	Name             string                    `json:"name" yaml:"name"`
	Props            Attributes                `json:"props" yaml:"props"`
	Styles           Attributes                `json:"styles" yaml:"styles"`
	Responsive       map[Breakpoint]Attributes `json:"responsive" yaml:"responsive"`
	CSSClasses       string                    `json:"cssClasses" yaml:"cssClasses"`
	CustomCSS        string                    `json:"customCSS" yaml:"customCSS"`
	HTMLID           string                    `json:"htmlId" yaml:"htmlId"`
	CustomAttributes string                    `json:"customAttributes" yaml:"customAttributes"`

	// Store metadata, owned by the page-builder store.
	PageID   string     `json:"pageId,omitempty" yaml:"pageId"`
	Position int        `json:"position" yaml:"position"`
	Created  time.Time  `json:"created" yaml:"-"`
	Changed  *time.Time `json:"changed,omitempty" yaml:"-"`
}

// Clone returns a deep copy of c so callers never share nested maps.
func Clone(c *Component) *Component {
	if c == nil {
		return nil
	}
	out := *c
	out.Props = cloneAttributes(c.Props)
	out.Styles = cloneAttributes(c.Styles)
	out.Responsive = cloneResponsive(c.Responsive)
	if c.Changed != nil {
		changed := *c.Changed
		out.Changed = &changed
	}
	return &out
}

func cloneAttributes(a Attributes) Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneResponsive(r map[Breakpoint]Attributes) map[Breakpoint]Attributes {
	if r == nil {
		return nil
	}
	out := make(map[Breakpoint]Attributes, len(r))
	for bp, attrs := range r {
		out[bp] = cloneAttributes(attrs)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(cloneAttributes(Attributes(t)))
	case Attributes:
		return cloneAttributes(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
