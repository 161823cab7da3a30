package inspector

import "github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"

// Tab is one of the four mutually exclusive inspector panels.
type Tab string

const (
	TabProperties Tab = "properties"
	TabStyles     Tab = "styles"
	TabResponsive Tab = "responsive"
	TabAdvanced   Tab = "advanced"
)

// Tabs in display order. TabProperties is the initial tab.
var Tabs = []Tab{TabProperties, TabStyles, TabResponsive, TabAdvanced}

// Valid reports whether t is one of the four tabs.
func (t Tab) Valid() bool {
	switch t {
	case TabProperties, TabStyles, TabResponsive, TabAdvanced:
		return true
	}
	return false
}

// Label is the tab caption.
func (t Tab) Label() string {
	return capitalize(string(t))
}

// StyleFields is the type-independent styles field set.
func StyleFields() []Field {
	fields := []Field{
		textStyle(component.StyleBackgroundColor, "Background Color", "#ffffff"),
		textStyle(component.StyleTextColor, "Text Color", "#000000"),
		textStyle(component.StyleFontSize, "Font Size", "16px"),
		selectStyle(component.StyleFontWeight, "Font Weight", fontWeights, "normal"),
		textStyle(component.StyleBorderRadius, "Border Radius", "0px"),
		selectStyle(component.StyleBoxShadow, "Box Shadow", boxShadows, "none"),
	}
	for _, edge := range component.Edges {
		fields = append(fields, spacingField(component.SpacingPadding, edge, "Padding"))
	}
	for _, edge := range component.Edges {
		fields = append(fields, spacingField(component.SpacingMargin, edge, "Margin"))
	}
	return fields
}

// ResponsiveFields lists the override fields for every breakpoint. Overrides
// are free text, unlike the numeric spacing in styles.
func ResponsiveFields() []Field {
	var fields []Field
	for _, bp := range component.Breakpoints {
		fields = append(fields,
			responsiveHidden(bp),
			responsiveText(bp, component.ResponsiveFontSize, "Font Size", "inherit"),
			responsiveText(bp, component.ResponsivePadding, "Padding", "e.g. 8px 16px"),
			responsiveText(bp, component.ResponsiveMargin, "Margin", "e.g. 0 auto"),
		)
	}
	return fields
}

// AdvancedFields lists the raw-string overrides.
func AdvancedFields() []Field {
	return []Field{
		advancedField(component.AdvancedCSSClasses, "CSS Classes", "class-one class-two", ControlText),
		advancedField(component.AdvancedCustomCSS, "Custom CSS", "color: red;", ControlTextarea),
		advancedField(component.AdvancedHTMLID, "HTML ID", "my-component", ControlText),
		advancedField(component.AdvancedCustomAttributes, "Custom Attributes", `data-foo="bar"`, ControlText),
	}
}

// FieldsFor returns the fields of tab for c. ok is false when the tab has no
// field set, which only happens on the properties tab for an unknown type.
func FieldsFor(tab Tab, c *component.Component) ([]Field, bool) {
	switch tab {
	case TabProperties:
		return PropertyFields(c.Type)
	case TabStyles:
		return StyleFields(), true
	case TabResponsive:
		return ResponsiveFields(), true
	case TabAdvanced:
		return AdvancedFields(), true
	}
	return nil, false
}

// FindField looks a field up by ID within tab.
func FindField(tab Tab, c *component.Component, id string) (Field, bool) {
	fields, ok := FieldsFor(tab, c)
	if !ok {
		return Field{}, false
	}
	for _, f := range fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}
