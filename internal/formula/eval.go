package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"quote-simulator/internal/model"
)

// Result is what an evaluation always yields: a value or a short error
// message. Evaluation never panics past this package; callers can
// always render Display().
type Result struct {
	Value model.Value
	Err   string
}

// Failed reports whether the evaluation produced an error instead of a value.
func (r Result) Failed() bool { return r.Err != "" }

// Display renders the outcome for the result area: a formatted number,
// the text a formatting helper produced, or the error marker.
func (r Result) Display() string {
	if r.Failed() {
		return "error: " + r.Err
	}
	return r.Value.Display()
}

// Bind resolves each field's sanitized identifier to its current
// numeric operand. A field with no entry in values counts as 0. Two
// labels sanitizing to the same identifier collide silently: fields are
// iterated in order and the later one wins.
func Bind(fields []model.Field, values map[string]model.Value) map[string]float64 {
	env := make(map[string]float64, len(fields))
	for _, f := range fields {
		id := Sanitize(f.Label)
		if id == "" {
			continue
		}
		v, ok := values[f.Label]
		if !ok {
			env[id] = 0
			continue
		}
		env[id] = v.Operand()
	}
	return env
}

// Evaluate binds the fields' current values and computes the formula
// against them. See EvaluateEnv for the evaluation rules.
func Evaluate(fields []model.Field, values map[string]model.Value, src string) Result {
	return EvaluateEnv(Bind(fields, values), src)
}

// EvaluateEnv computes a formula against a prepared environment.
// Identifiers in the formula are sanitized before lookup, so formulas
// may reference fields by raw label ("Tarif") or sanitized name
// ("tarif"). An identifier bound to no field resolves to 0, the same
// default applied to missing values. Any lex, parse or arithmetic
// failure is reported through Result.Err.
func EvaluateEnv(env map[string]float64, src string) Result {
	if strings.TrimSpace(src) == "" {
		return Result{Err: "empty formula"}
	}
	root, err := parse(src)
	if err != nil {
		return Result{Err: err.Error()}
	}
	v, err := eval(root, env)
	if err != nil {
		return Result{Err: err.Error()}
	}
	if num, ok := v.Number(); ok && (math.IsNaN(num) || math.IsInf(num, 0)) {
		return Result{Err: "result is not a finite number"}
	}
	return Result{Value: v}
}

// Check parses a formula without evaluating it, for authoring-time lint.
func Check(src string) error {
	if strings.TrimSpace(src) == "" {
		return fmt.Errorf("empty formula")
	}
	_, err := parse(src)
	return err
}

func eval(n node, env map[string]float64) (model.Value, error) {
	switch t := n.(type) {
	case *numberNode:
		return model.NumberValue(t.val), nil
	case *identNode:
		// Unknown names resolve to 0 like missing values do: a field
		// removed after the formula was written must not break it.
		return model.NumberValue(env[t.name]), nil
	case *unaryNode:
		v, err := eval(t.operand, env)
		if err != nil {
			return model.Value{}, err
		}
		num, ok := v.Number()
		if !ok {
			return model.Value{}, fmt.Errorf("cannot negate a text value at position %d", t.at)
		}
		return model.NumberValue(-num), nil
	case *binaryNode:
		return evalBinary(t, env)
	case *callNode:
		args := make([]model.Value, len(t.args))
		for i, arg := range t.args {
			v, err := eval(arg, env)
			if err != nil {
				return model.Value{}, err
			}
			args[i] = v
		}
		return callHelper(t.name, args, t.at)
	default:
		return model.Value{}, fmt.Errorf("internal: unknown node %T", n)
	}
}

func evalBinary(n *binaryNode, env map[string]float64) (model.Value, error) {
	lv, err := eval(n.left, env)
	if err != nil {
		return model.Value{}, err
	}
	rv, err := eval(n.right, env)
	if err != nil {
		return model.Value{}, err
	}
	l, lok := lv.Number()
	r, rok := rv.Number()
	if !lok || !rok {
		return model.Value{}, fmt.Errorf("cannot use a text value in arithmetic at position %d", n.at)
	}
	switch n.op {
	case tokPlus:
		return model.NumberValue(l + r), nil
	case tokMinus:
		return model.NumberValue(l - r), nil
	case tokStar:
		return model.NumberValue(l * r), nil
	case tokSlash:
		if r == 0 {
			return model.Value{}, fmt.Errorf("division by zero at position %d", n.at)
		}
		return model.NumberValue(l / r), nil
	default:
		return model.Value{}, fmt.Errorf("internal: unknown operator at position %d", n.at)
	}
}

// callHelper dispatches the closed set of helper functions. There is no
// way to reach anything outside this table from a formula.
func callHelper(name string, args []model.Value, pos int) (model.Value, error) {
	nums := func() ([]float64, error) {
		out := make([]float64, len(args))
		for i, a := range args {
			n, ok := a.Number()
			if !ok {
				return nil, fmt.Errorf("%s: argument %d is not a number", name, i+1)
			}
			out[i] = n
		}
		return out, nil
	}

	switch name {
	case "abs", "sqrt", "floor", "ceil":
		if len(args) != 1 {
			return model.Value{}, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
		}
		xs, err := nums()
		if err != nil {
			return model.Value{}, err
		}
		x := xs[0]
		switch name {
		case "abs":
			return model.NumberValue(math.Abs(x)), nil
		case "sqrt":
			if x < 0 {
				return model.Value{}, fmt.Errorf("sqrt of a negative number")
			}
			return model.NumberValue(math.Sqrt(x)), nil
		case "floor":
			return model.NumberValue(math.Floor(x)), nil
		default:
			return model.NumberValue(math.Ceil(x)), nil
		}
	case "round":
		if len(args) != 1 && len(args) != 2 {
			return model.Value{}, fmt.Errorf("round expects 1 or 2 arguments, got %d", len(args))
		}
		xs, err := nums()
		if err != nil {
			return model.Value{}, err
		}
		if len(xs) == 1 {
			return model.NumberValue(math.Round(xs[0])), nil
		}
		p := math.Pow(10, math.Trunc(xs[1]))
		if p == 0 || math.IsInf(p, 0) {
			return model.Value{}, fmt.Errorf("round: invalid decimal count")
		}
		return model.NumberValue(math.Round(xs[0]*p) / p), nil
	case "min", "max":
		if len(args) < 2 {
			return model.Value{}, fmt.Errorf("%s expects at least 2 arguments, got %d", name, len(args))
		}
		xs, err := nums()
		if err != nil {
			return model.Value{}, err
		}
		out := xs[0]
		for _, x := range xs[1:] {
			if name == "min" && x < out || name == "max" && x > out {
				out = x
			}
		}
		return model.NumberValue(out), nil
	case "pow":
		if len(args) != 2 {
			return model.Value{}, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
		}
		xs, err := nums()
		if err != nil {
			return model.Value{}, err
		}
		return model.NumberValue(math.Pow(xs[0], xs[1])), nil
	case "fixed":
		// fixed(x, n) formats x with exactly n decimals and yields text,
		// for formulas whose result is displayed as-is.
		if len(args) != 2 {
			return model.Value{}, fmt.Errorf("fixed expects 2 arguments, got %d", len(args))
		}
		xs, err := nums()
		if err != nil {
			return model.Value{}, err
		}
		n := int(math.Trunc(xs[1]))
		if n < 0 || n > 12 {
			return model.Value{}, fmt.Errorf("fixed: decimal count must be between 0 and 12")
		}
		return model.TextValue(strconv.FormatFloat(xs[0], 'f', n, 64)), nil
	default:
		return model.Value{}, fmt.Errorf("unknown function %q at position %d", name, pos)
	}
}
