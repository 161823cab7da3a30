package component

// Patch is a partial component emitted by the inspector. Each present bucket
// carries the complete new bucket and replaces the stored one wholesale, so
// applying it is a shallow merge of top-level keys.
type Patch struct {
	Name             *string                   `json:"name,omitempty"`
	Props            Attributes                `json:"props,omitempty"`
	Styles           Attributes                `json:"styles,omitempty"`
	Responsive       map[Breakpoint]Attributes `json:"responsive,omitempty"`
	CSSClasses       *string                   `json:"cssClasses,omitempty"`
	CustomCSS        *string                   `json:"customCSS,omitempty"`
	HTMLID           *string                   `json:"htmlId,omitempty"`
	CustomAttributes *string                   `json:"customAttributes,omitempty"`
}

// IsEmpty reports whether the patch carries no bucket at all.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Props == nil && p.Styles == nil && p.Responsive == nil &&
		p.CSSClasses == nil && p.CustomCSS == nil && p.HTMLID == nil && p.CustomAttributes == nil
}

// Buckets returns the names of the top-level keys present in the patch.
func (p Patch) Buckets() []string {
	var out []string
	if p.Name != nil {
		out = append(out, "name")
	}
	if p.Props != nil {
		out = append(out, "props")
	}
	if p.Styles != nil {
		out = append(out, "styles")
	}
	if p.Responsive != nil {
		out = append(out, "responsive")
	}
	if p.CSSClasses != nil {
		out = append(out, string(AdvancedCSSClasses))
	}
	if p.CustomCSS != nil {
		out = append(out, string(AdvancedCustomCSS))
	}
	if p.HTMLID != nil {
		out = append(out, string(AdvancedHTMLID))
	}
	if p.CustomAttributes != nil {
		out = append(out, string(AdvancedCustomAttributes))
	}
	return out
}

// Apply shallow-merges the patch onto a copy of c. The input is not mutated
// and applying the same patch twice yields the same component.
func (p Patch) Apply(c *Component) *Component {
	out := Clone(c)
	if out == nil {
		out = &Component{}
	}
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Props != nil {
		out.Props = cloneAttributes(p.Props)
	}
	if p.Styles != nil {
		out.Styles = cloneAttributes(p.Styles)
	}
	if p.Responsive != nil {
		out.Responsive = cloneResponsive(p.Responsive)
	}
	if p.CSSClasses != nil {
		out.CSSClasses = *p.CSSClasses
	}
	if p.CustomCSS != nil {
		out.CustomCSS = *p.CustomCSS
	}
	if p.HTMLID != nil {
		out.HTMLID = *p.HTMLID
	}
	if p.CustomAttributes != nil {
		out.CustomAttributes = *p.CustomAttributes
	}
	return out
}

// Advanced returns the current raw string stored under key.
func (c *Component) Advanced(key AdvancedKey) string {
	switch key {
	case AdvancedCSSClasses:
		return c.CSSClasses
	case AdvancedCustomCSS:
		return c.CustomCSS
	case AdvancedHTMLID:
		return c.HTMLID
	case AdvancedCustomAttributes:
		return c.CustomAttributes
	}
	return ""
}
