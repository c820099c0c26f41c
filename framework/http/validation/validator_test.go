package validation_test

import (
	"slices"
	"testing"

	"github.com/km-arc/go-beans/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

// pass asserts the validator passes for the given data/rules.
func pass(t *testing.T, label string, data map[string]string, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.Make(data, rules)
		if v.Fails() {
			t.Errorf("expected PASS, got FAIL: %+v", v.Errors().Bag)
		}
	})
}

// fail asserts the validator fails with an error on the given field.
func fail(t *testing.T, label, field string, data map[string]string, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.Make(data, rules)
		if v.Passes() {
			t.Errorf("expected FAIL on field %q, but validator PASSED", field)
		}
		if v.Errors().First(field) == "" {
			t.Errorf("expected error on field %q, got %+v", field, v.Errors().Bag)
		}
	})
}

// ── rules ────────────────────────────────────────────────────────────────────

func TestValidation_Required(t *testing.T) {
	r := validation.Rules{"name": "required"}

	pass(t, "non-empty value", map[string]string{"name": "memberA"}, r)
	fail(t, "empty string", "name", map[string]string{"name": ""}, r)
	fail(t, "whitespace only", "name", map[string]string{"name": "   "}, r)
	fail(t, "missing key", "name", map[string]string{}, r)
}

func TestValidation_Integer(t *testing.T) {
	r := validation.Rules{"memberId": "integer"}

	pass(t, "positive", map[string]string{"memberId": "1"}, r)
	pass(t, "negative", map[string]string{"memberId": "-4"}, r)
	fail(t, "decimal", "memberId", map[string]string{"memberId": "1.5"}, r)
	fail(t, "word", "memberId", map[string]string{"memberId": "one"}, r)
}

func TestValidation_Numeric(t *testing.T) {
	r := validation.Rules{"rate": "numeric"}

	pass(t, "decimal", map[string]string{"rate": "0.1"}, r)
	fail(t, "word", "rate", map[string]string{"rate": "ten"}, r)
}

func TestValidation_In(t *testing.T) {
	r := validation.Rules{"grade": "in:BASIC, VIP"}

	pass(t, "first", map[string]string{"grade": "BASIC"}, r)
	pass(t, "trimmed option", map[string]string{"grade": "VIP"}, r)
	fail(t, "case sensitive", "grade", map[string]string{"grade": "vip"}, r)
}

func TestValidation_MinMax(t *testing.T) {
	r := validation.Rules{"itemName": "min:2|max:5"}

	pass(t, "within", map[string]string{"itemName": "itemA"}, r)
	pass(t, "runes not bytes", map[string]string{"itemName": "상품A"}, r)
	fail(t, "too short", "itemName", map[string]string{"itemName": "A"}, r)
	fail(t, "too long", "itemName", map[string]string{"itemName": "itemAB"}, r)
}

func TestValidation_GteLte(t *testing.T) {
	r := validation.Rules{"itemPrice": "gte:0|lte:1000000"}

	pass(t, "zero", map[string]string{"itemPrice": "0"}, r)
	pass(t, "upper bound", map[string]string{"itemPrice": "1000000"}, r)
	fail(t, "negative", "itemPrice", map[string]string{"itemPrice": "-1"}, r)
	fail(t, "too large", "itemPrice", map[string]string{"itemPrice": "1000001"}, r)
}

// ── behaviour ────────────────────────────────────────────────────────────────

func TestValidation_BailsOnFirstFailure(t *testing.T) {
	v := validation.Make(map[string]string{}, validation.Rules{"memberId": "required|integer|gte:1"})

	if !v.Fails() {
		t.Fatal("expected failure")
	}
	msgs := v.Errors().Bag["memberId"]
	if len(msgs) != 1 || msgs[0] != "The memberId field is required." {
		t.Errorf("got %q", msgs)
	}
}

func TestValidation_FieldsSorted(t *testing.T) {
	v := validation.Make(map[string]string{}, validation.Rules{
		"itemPrice": "required",
		"itemName":  "required",
		"memberId":  "required",
	})
	_ = v.Fails()

	want := []string{"itemName", "itemPrice", "memberId"}
	if got := v.Errors().Fields(); !slices.Equal(got, want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestValidation_FailsIsIdempotent(t *testing.T) {
	v := validation.Make(map[string]string{"grade": "GOLD"}, validation.Rules{"grade": "in:BASIC,VIP"})
	_ = v.Fails()
	_ = v.Fails()

	if n := len(v.Errors().Bag["grade"]); n != 1 {
		t.Errorf("expected 1 message after two runs, got %d", n)
	}
}

func TestValidation_UnknownRulePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown rule")
		}
	}()
	validation.Make(map[string]string{"a": "b"}, validation.Rules{"a": "email"}).Fails()
}
