// Package validation checks flat request input against pipe-separated rules.
//
//	v := validation.Make(req.All(), validation.Rules{
//	    "memberId":  "required|integer|gte:1",
//	    "itemName":  "required|max:100",
//	    "itemPrice": "required|integer|gte:0",
//	})
//
//	if v.Fails() {
//	    res.ValidationError(v.Errors()) // 422 {"errors": {"field": ["message"]}}
//	}
//
// Rules: required, numeric, integer, in:a,b, min:n, max:n (string length in
// runes), gte:n, lte:n (numeric). Validation of a field stops at its first
// failing rule. Make panics on an unknown rule name.
package validation
