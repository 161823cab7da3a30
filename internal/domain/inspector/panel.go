package inspector

import "github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"

// EmptyState is shown in place of the property fields for a component whose
// type has no field set.
type EmptyState struct {
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// NoPropertiesState is the neutral panel for unknown or missing types.
var NoPropertiesState = EmptyState{
	Icon:    "settings",
	Title:   "No properties available",
	Message: "This component type has no editable properties. Use the Styles, Responsive or Advanced tabs instead.",
}

// Panel is the rendered content of one tab. Exactly one of Fields or Empty is
// populated.
type Panel struct {
	Tab           Tab            `json:"tab"`
	ComponentID   string         `json:"componentId"`
	ComponentType component.Type `json:"componentType"`
	ComponentName string         `json:"componentName"`
	Fields        []FieldValue   `json:"fields,omitempty"`
	Empty         *EmptyState    `json:"empty,omitempty"`
}

// IsEmpty reports whether the panel renders the empty state.
func (p Panel) IsEmpty() bool {
	return p.Empty != nil
}

// RenderPanel renders the properties tab for c.
func RenderPanel(c *component.Component) Panel {
	return RenderTab(TabProperties, c)
}

// RenderTab renders tab for c. It reads the component only and never
// produces a patch.
func RenderTab(tab Tab, c *component.Component) Panel {
	p := Panel{
		Tab:           tab,
		ComponentID:   c.ID,
		ComponentType: c.Type,
		ComponentName: c.Name,
	}
	fields, ok := FieldsFor(tab, c)
	if !ok {
		empty := NoPropertiesState
		p.Empty = &empty
		return p
	}
	p.Fields = make([]FieldValue, len(fields))
	for i, f := range fields {
		p.Fields[i] = snapshot(f, c)
	}
	return p
}
