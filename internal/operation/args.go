package operation

// Args holds validated, defaulted arguments keyed by field name.
// Values have the Go type matching their field: string, int64, bool,
// []string or [][]string.
type Args map[string]any

// Has reports whether the argument was supplied or defaulted.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns a string argument, or "" when absent.
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Int returns an integer argument, or 0 when absent.
func (a Args) Int(name string) int64 {
	n, _ := a[name].(int64)
	return n
}

// Bool returns a boolean argument, or false when absent.
func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Strings returns a string array argument, or nil when absent.
func (a Args) Strings(name string) []string {
	s, _ := a[name].([]string)
	return s
}

// Matrix returns a string matrix argument, or nil when absent.
func (a Args) Matrix(name string) [][]string {
	m, _ := a[name].([][]string)
	return m
}
