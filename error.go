package rxload

import "fmt"

// RuntimeErr is a panic recovered inside a user callback, turned into the
// terminal error of the observation that ran it.
type RuntimeErr struct {
	op  string
	err error
}

// RuntimeError wraps a recovered value. Errors are kept as they are, other
// values are formatted.
func RuntimeError(v interface{}) error {
	return Recovered("", v)
}

// Recovered is RuntimeError for a panic raised while running operator op.
func Recovered(op string, v interface{}) error {
	if err, ok := v.(error); ok {
		return RuntimeErr{op: op, err: err}
	}
	return RuntimeErr{op: op, err: fmt.Errorf("runtime-error: %v", v)}
}

func (e RuntimeErr) Error() string {
	if e.op == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %v", e.op, e.err)
}

// Operator names the operator the panic was recovered in, if any.
func (e RuntimeErr) Operator() string {
	return e.op
}

func (e RuntimeErr) Previous() error {
	return e.err
}

func (e RuntimeErr) Unwrap() error {
	return e.err
}
