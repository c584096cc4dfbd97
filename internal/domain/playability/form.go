package playability

import (
	"fmt"
	"strings"

	apperrors "github.com/yanqian/tennis-playability/pkg/errors"
)

// Validate checks that every field holds a value from its domain.
func Validate(sel Selection) error {
	var missing []FieldName
	for _, f := range fields {
		v, ok := sel.Value(f.Name)
		if !ok || !f.Allows(v) {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// BuildPayload zips the field names with their selections in field order.
func BuildPayload(sel Selection) Payload {
	return Payload{
		Outlook:     sel[Outlook],
		Temperature: sel[Temperature],
		Humidity:    sel[Humidity],
		Wind:        sel[Wind],
	}
}

// Collect validates the selection and returns the payload to submit.
func Collect(sel Selection) (Payload, error) {
	if err := Validate(sel); err != nil {
		return Payload{}, err
	}
	return BuildPayload(sel), nil
}

// Apply sets or clears one field on a copy of sel. Values are matched case-insensitively
// against the field domain; an empty value clears the field.
func Apply(sel Selection, name, value string) (Selection, error) {
	field, ok := LookupField(name)
	if !ok {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown weather condition %q", name), nil)
	}
	clean := strings.ToLower(strings.TrimSpace(value))
	next := sel.Clone()
	if clean == "" {
		delete(next, field.Name)
		return next, nil
	}
	if !field.Allows(clean) {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("%q is not a valid %s", value, field.Name), nil)
	}
	next[field.Name] = clean
	return next, nil
}

// SelectionFromPayload maps a payload back onto a selection, leaving empty keys unset.
func SelectionFromPayload(p Payload) (Selection, error) {
	sel := Selection{}
	var err error
	for _, row := range p.Rows() {
		if sel, err = Apply(sel, row.Field, row.Value); err != nil {
			return nil, err
		}
	}
	return sel, nil
}
