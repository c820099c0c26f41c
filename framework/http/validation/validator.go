package validation

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Errors collects failure messages by field and encodes as
// {"errors": {"itemPrice": ["..."]}}.
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) record(field, msg string) {
	if e.Bag == nil {
		e.Bag = map[string][]string{}
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First is the first message recorded for field, or "".
func (e *Errors) First(field string) string {
	if len(e.Bag[field]) == 0 {
		return ""
	}
	return e.Bag[field][0]
}

// Fields returns the failing field names, sorted.
func (e *Errors) Fields() []string {
	return slices.Sorted(maps.Keys(e.Bag))
}

// Rules maps an input field to its pipe-separated rule list, applied left
// to right: Rules{"memberId": "required|integer|gte:1"}.
type Rules map[string]string

type step struct {
	param string
	fn    check
}

// compile splits every rule list once. Unknown rule names are programming
// errors and panic.
func compile(rules Rules) map[string][]step {
	out := make(map[string][]step, len(rules))
	for field, list := range rules {
		for _, raw := range strings.Split(list, "|") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			name, param, _ := strings.Cut(raw, ":")
			fn, ok := checks[name]
			if !ok {
				panic(fmt.Sprintf("validation: unknown rule %q on %s", name, field))
			}
			out[field] = append(out[field], step{param: param, fn: fn})
		}
	}
	return out
}

// Validator checks a flat map of input values against Rules. The first
// call to Fails or Passes runs the checks; later calls reuse the result.
type Validator struct {
	input  map[string]string
	steps  map[string][]step
	errors *Errors
	done   bool
}

func Make(input map[string]string, rules Rules) *Validator {
	return &Validator{input: input, steps: compile(rules), errors: &Errors{}}
}

func (v *Validator) Fails() bool {
	if !v.done {
		v.run()
		v.done = true
	}
	return v.errors.Has()
}

func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the bag filled by the last run.
func (v *Validator) Errors() *Errors { return v.errors }

// ── Rules ────────────────────────────────────────────────────────────────────

// check reports the failure message for value, or "" when the rule passes.
type check func(field, value, param string) string

var checks = map[string]check{
	"required": func(field, value, _ string) string {
		if strings.TrimSpace(value) == "" {
			return fmt.Sprintf("The %s field is required.", field)
		}
		return ""
	},
	"numeric": func(field, value, _ string) string {
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Sprintf("The %s must be a number.", field)
		}
		return ""
	},
	"integer": func(field, value, _ string) string {
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Sprintf("The %s must be an integer.", field)
		}
		return ""
	},
	"in": func(field, value, param string) string {
		for _, allowed := range strings.Split(param, ",") {
			if strings.TrimSpace(allowed) == value {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	},
	"min": func(field, value, param string) string {
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) < n {
			return fmt.Sprintf("The %s must be at least %d characters.", field, n)
		}
		return ""
	},
	"max": func(field, value, param string) string {
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) > n {
			return fmt.Sprintf("The %s may not be greater than %d characters.", field, n)
		}
		return ""
	},
	"gte": func(field, value, param string) string {
		f, _ := strconv.ParseFloat(value, 64)
		t, _ := strconv.ParseFloat(param, 64)
		if f < t {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
		return ""
	},
	"lte": func(field, value, param string) string {
		f, _ := strconv.ParseFloat(value, 64)
		t, _ := strconv.ParseFloat(param, 64)
		if f > t {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
		return ""
	},
}

// Each field stops at its first failing rule.
func (v *Validator) run() {
	for field, steps := range v.steps {
		value := v.input[field]
		for _, st := range steps {
			if msg := st.fn(field, value, st.param); msg != "" {
				v.errors.record(field, msg)
				break
			}
		}
	}
}
