package inspector

import (
	"encoding/json"
	"fmt"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
)

// Clipboard receives exported component JSON.
type Clipboard interface {
	WriteAll(text string) error
}

// ExportResult reports the outcome of an export so the caller can show a
// success or failure notice.
type ExportResult struct {
	Success bool   `json:"success"`
	Payload string `json:"payload,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Shell coordinates one editing session for a single component. It holds
// only navigation state; content always comes from the component it was
// given, and edits leave through onUpdate for the store to apply.
type Shell struct {
	component *component.Component
	activeTab Tab
	onUpdate  func(component.Patch)
	onDelete  func()
}

// NewShell opens a shell on c with the properties tab active.
func NewShell(c *component.Component, onUpdate func(component.Patch), onDelete func()) *Shell {
	if onUpdate == nil {
		onUpdate = func(component.Patch) {}
	}
	if onDelete == nil {
		onDelete = func() {}
	}
	return &Shell{
		component: c,
		activeTab: TabProperties,
		onUpdate:  onUpdate,
		onDelete:  onDelete,
	}
}

// Component returns the component the shell currently renders.
func (s *Shell) Component() *component.Component {
	return s.component
}

// Sync swaps in the store's latest copy of the component after a patch was
// applied.
func (s *Shell) Sync(c *component.Component) {
	s.component = c
}

// ActiveTab returns the selected tab.
func (s *Shell) ActiveTab() Tab {
	return s.activeTab
}

// SelectTab switches the active tab.
func (s *Shell) SelectTab(tab Tab) error {
	if !tab.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}
	s.activeTab = tab
	return nil
}

// Panel renders the active tab.
func (s *Shell) Panel() Panel {
	return RenderTab(s.activeTab, s.component)
}

// Fields renders tab without changing the active tab.
func (s *Shell) Fields(tab Tab) (Panel, error) {
	if !tab.Valid() {
		return Panel{}, fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}
	return RenderTab(tab, s.component), nil
}

// Edit decodes raw for the field identified by fieldID on tab, emits the
// resulting patch through onUpdate and returns it. Nothing is emitted on
// error.
func (s *Shell) Edit(tab Tab, fieldID, raw string) (component.Patch, error) {
	if !tab.Valid() {
		return component.Patch{}, fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}
	f, ok := FindField(tab, s.component, fieldID)
	if !ok {
		return component.Patch{}, fmt.Errorf("%w: %s/%s on %s component", ErrUnknownField, tab, fieldID, s.component.Type)
	}
	v, err := Decode(f, raw)
	if err != nil {
		return component.Patch{}, err
	}
	patch := f.Write(s.component, v)
	s.onUpdate(patch)
	return patch, nil
}

// Rename emits a patch for the component's display label.
func (s *Shell) Rename(name string) component.Patch {
	patch := component.Rename(s.component, name)
	s.onUpdate(patch)
	return patch
}

// Delete forwards a delete request without confirmation.
func (s *Shell) Delete() {
	s.onDelete()
}

// Export serialises the full component and writes it to cb.
func (s *Shell) Export(cb Clipboard) ExportResult {
	payload, err := ExportJSON(s.component)
	if err != nil {
		return ExportResult{
			Success: false,
			Message: "Could not serialise component",
			Err:     err,
		}
	}
	if cb == nil {
		return ExportResult{Success: true, Payload: payload, Message: "Component JSON ready to copy"}
	}
	if err := cb.WriteAll(payload); err != nil {
		return ExportResult{
			Success: false,
			Payload: payload,
			Message: "Failed to copy component JSON to clipboard",
			Err:     fmt.Errorf("clipboard write failed: %w", err),
		}
	}
	return ExportResult{Success: true, Payload: payload, Message: "Component JSON copied to clipboard"}
}

// ExportJSON renders c as indented JSON text.
func ExportJSON(c *component.Component) (string, error) {
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal component %s: %w", c.ID, err)
	}
	return string(raw), nil
}
