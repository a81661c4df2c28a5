package logging

// Detail is a logging detail that enrich the logging message with additional contextual detail.
type Detail interface {
	addTo(Fields)
}

// Field creates a single key value pair based logging detail.
// It will enrich the log entry with a value in the key you gave.
func Field(key string, value any) Detail {
	return field{Key: key, Value: value}
}

type field struct {
	Key   string
	Value any
}

func (f field) addTo(fs Fields) {
	if d, ok := f.Value.(Detail); ok {
		var sub = make(Fields)
		d.addTo(sub)
		fs[f.Key] = sub
		return
	}
	fs[f.Key] = f.Value
}

// Fields is a collection of field that you can add to your loggig record.
// It is also a Detail, so it can be passed directly to a log call.
type Fields map[string]any

func (fs Fields) addTo(oth Fields) {
	for k, v := range fs {
		Field(k, v).addTo(oth)
	}
}

// ErrField adds the error message and its type to the log entry under the "error" key.
func ErrField(err error) Detail {
	if err == nil {
		return nullDetail{}
	}
	return Field("error", Fields{"message": err.Error()})
}

// LazyDetail lets you add logging details that aren't evaluated until the log is actually created.
// This is useful when you want to add fields to a debug log that take effort to calculate,
// but would be skipped in a production environment because of the logging level.
type LazyDetail func() Detail

func (fn LazyDetail) addTo(fs Fields) {
	if fn == nil {
		return
	}
	if d := fn(); d != nil {
		d.addTo(fs)
	}
}

type nullDetail struct{}

func (nullDetail) addTo(Fields) {}
