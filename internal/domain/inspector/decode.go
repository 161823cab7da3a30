package inspector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
)

var (
	ErrUnknownTab       = errors.New("unknown inspector tab")
	ErrUnknownField     = errors.New("unknown field")
	ErrOptionNotAllowed = errors.New("value is not one of the field options")
	ErrInvalidCheckbox  = errors.New("invalid checkbox value")
)

// Decode turns the raw form value for f into the typed value its writer
// expects. Numbers never fail: anything unparsable becomes 0. Select values
// outside the option list can only come from a hand-built request, so they
// are refused rather than stored.
func Decode(f Field, raw string) (any, error) {
	switch f.Control {
	case ControlText, ControlTextarea:
		return raw, nil
	case ControlNumber:
		return component.ParseSpacing(raw), nil
	case ControlCheckbox:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "on", "1", "checked":
			return true, nil
		case "false", "off", "0", "":
			return false, nil
		}
		return nil, fmt.Errorf("%w %q for %s", ErrInvalidCheckbox, raw, f.ID)
	case ControlSelect:
		if !f.HasOption(raw) {
			return nil, fmt.Errorf("%w: %q for %s", ErrOptionNotAllowed, raw, f.ID)
		}
		return raw, nil
	}
	return raw, nil
}
