package component

// The Set* functions build the patch for exactly one leaf. Every level on the
// path is copied from the current component before the leaf is written, so
// sibling keys survive at each depth and c itself is never modified.

// SetProp patches props[key].
func SetProp(c *Component, key PropKey, value any) Patch {
	props := cloneAttributes(c.Props)
	if props == nil {
		props = Attributes{}
	}
	props[string(key)] = value
	return Patch{Props: props}
}

// SetStyle patches styles[key].
func SetStyle(c *Component, key StyleKey, value any) Patch {
	styles := cloneAttributes(c.Styles)
	if styles == nil {
		styles = Attributes{}
	}
	styles[string(key)] = value
	return Patch{Styles: styles}
}

// SetSpacing patches styles[box][edge].
func SetSpacing(c *Component, box SpacingBox, edge Edge, value int) Patch {
	styles := cloneAttributes(c.Styles)
	if styles == nil {
		styles = Attributes{}
	}
	sub := map[string]any{}
	if existing, ok := asMap(styles[string(box)]); ok {
		for k, v := range existing {
			sub[k] = v
		}
	}
	sub[string(edge)] = value
	styles[string(box)] = sub
	return Patch{Styles: styles}
}

// SetResponsive patches responsive[bp][key]. Other breakpoints are carried
// over untouched.
func SetResponsive(c *Component, bp Breakpoint, key ResponsiveKey, value any) Patch {
	responsive := cloneResponsive(c.Responsive)
	if responsive == nil {
		responsive = map[Breakpoint]Attributes{}
	}
	override := responsive[bp]
	if override == nil {
		override = Attributes{}
	}
	override[string(key)] = value
	responsive[bp] = override
	return Patch{Responsive: responsive}
}

// SetAdvanced patches one of the raw-string advanced overrides.
func SetAdvanced(c *Component, key AdvancedKey, value string) Patch {
	v := value
	switch key {
	case AdvancedCSSClasses:
		return Patch{CSSClasses: &v}
	case AdvancedCustomCSS:
		return Patch{CustomCSS: &v}
	case AdvancedHTMLID:
		return Patch{HTMLID: &v}
	case AdvancedCustomAttributes:
		return Patch{CustomAttributes: &v}
	}
	return Patch{}
}

// Rename patches the display label.
func Rename(c *Component, name string) Patch {
	return Patch{Name: &name}
}

// Prop returns props[key] and whether it is set.
func (c *Component) Prop(key PropKey) (any, bool) {
	v, ok := c.Props[string(key)]
	return v, ok
}

// Style returns styles[key] and whether it is set.
func (c *Component) Style(key StyleKey) (any, bool) {
	v, ok := c.Styles[string(key)]
	return v, ok
}

// ResponsiveValue returns responsive[bp][key] and whether it is set.
func (c *Component) ResponsiveValue(bp Breakpoint, key ResponsiveKey) (any, bool) {
	override, ok := c.Responsive[bp]
	if !ok {
		return nil, false
	}
	v, ok := override[string(key)]
	return v, ok
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Attributes:
		return map[string]any(t), true
	}
	return nil, false
}
