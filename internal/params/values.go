package params

// Values holds coerced parameters keyed by their declared name.
// Optional parameters that were absent are stored as nil.
type Values map[string]any

// Get returns the raw coerced value.
func (v Values) Get(name string) any { return v[name] }

// Has reports whether the parameter carries a non-nil value.
func (v Values) Has(name string) bool { return v[name] != nil }

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// OptString returns the value and whether it was supplied.
func (v Values) OptString(name string) (string, bool) {
	s, ok := v[name].(string)
	return s, ok
}

func (v Values) Int(name string) int {
	n, _ := v[name].(int)
	return n
}

func (v Values) Float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

func (v Values) Strings(name string) []string {
	s, _ := v[name].([]string)
	return s
}

func (v Values) Ints(name string) []int {
	s, _ := v[name].([]int)
	return s
}

// As returns the named value asserted to T, or the zero T.
func As[T any](v Values, name string) T {
	t, _ := v[name].(T)
	return t
}
