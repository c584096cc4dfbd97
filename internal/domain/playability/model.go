package playability

import "strings"

// FieldName identifies one of the weather attributes sent to the inference endpoint.
type FieldName string

const (
	Outlook     FieldName = "outlook"
	Temperature FieldName = "temperature"
	Humidity    FieldName = "humidity"
	Wind        FieldName = "wind"
)

// Field describes a categorical attribute and its allowed values.
type Field struct {
	Name    FieldName `json:"name"`
	Header  string    `json:"header"`
	Options []string  `json:"options"`
}

// Label is the prompt shown above the selector, e.g. "Select Outlook".
func (f Field) Label() string {
	name := strings.ToLower(f.Header)
	if name == "" {
		return "Select"
	}
	return "Select " + strings.ToUpper(name[:1]) + name[1:]
}

// Allows reports whether value belongs to the field domain.
func (f Field) Allows(value string) bool {
	for _, opt := range f.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// Placeholder is displayed while a field has no selection.
const Placeholder = "Choose an option"

var fields = []Field{
	{Name: Outlook, Header: "OUTLOOK", Options: []string{"overcast", "rain", "sunny"}},
	{Name: Temperature, Header: "TEMPERATURE", Options: []string{"cool", "hot", "mild"}},
	{Name: Humidity, Header: "HUMIDITY", Options: []string{"high", "normal"}},
	{Name: Wind, Header: "WIND", Options: []string{"strong", "weak"}},
}

// Fields returns the field domains in submission order.
func Fields() []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		opts := make([]string, len(f.Options))
		copy(opts, f.Options)
		out[i] = Field{Name: f.Name, Header: f.Header, Options: opts}
	}
	return out
}

// LookupField resolves a field by name, ignoring case.
func LookupField(name string) (Field, bool) {
	key := FieldName(strings.ToLower(strings.TrimSpace(name)))
	for _, f := range fields {
		if f.Name == key {
			return f, true
		}
	}
	return Field{}, false
}

// Selection maps a field to its chosen value. Absent or empty entries are unset.
type Selection map[FieldName]string

// Value returns the selected value and whether the field is set.
func (s Selection) Value(name FieldName) (string, bool) {
	v, ok := s[name]
	return v, ok && v != ""
}

// Clone copies the selection so callers cannot mutate stored state.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Payload is the request body understood by the inference endpoint.
type Payload struct {
	Outlook     string `json:"outlook"`
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
	Wind        string `json:"wind"`
}

// Row is a single field/value pair of a payload preview.
type Row struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Rows lists the payload entries in field order.
func (p Payload) Rows() []Row {
	return []Row{
		{Field: string(Outlook), Value: p.Outlook},
		{Field: string(Temperature), Value: p.Temperature},
		{Field: string(Humidity), Value: p.Humidity},
		{Field: string(Wind), Value: p.Wind},
	}
}

// Prediction is the successful answer of the inference endpoint.
type Prediction struct {
	Description string `json:"description"`
	CanPlay     bool   `json:"canPlay"`
}

// Outcome is what a submit action renders back to the user.
type Outcome struct {
	Payload    Payload    `json:"payload"`
	Prediction Prediction `json:"prediction"`
}

// Celebrate reports whether the positive-outcome cue should fire.
func (o Outcome) Celebrate() bool {
	return o.Prediction.CanPlay
}
