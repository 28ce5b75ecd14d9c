package wizard

// Record is the single mutable aggregate the wizard manipulates: a flat
// name-to-value map covering every field in the form model. Values persist
// across step transitions; moving between steps never discards data.
type Record struct {
	values map[string]string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Get returns the stored value for the named field, or "" when unset.
func (r *Record) Get(name string) string {
	if r == nil {
		return ""
	}
	return r.values[name]
}

// Set stores a raw value without any formatting. Callers wanting the phone
// mask applied should go through Wizard.Set.
func (r *Record) Set(name, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	r.values[name] = value
}

// Values returns a copy of the record contents.
func (r *Record) Values() map[string]string {
	out := make(map[string]string, len(r.values))
	for name, value := range r.values {
		out[name] = value
	}
	return out
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	clone := NewRecord()
	for name, value := range r.values {
		clone.values[name] = value
	}
	return clone
}
