package vrt

import "errors"

// Validator accumulates validation errors across several checks run against
// the same packet, mirroring the teacher's pattern of a single small
// accumulator shared by all of a frame's ValidateSize-style methods rather
// than a bespoke multi-error type per packet kind.
type Validator struct {
	strict         bool
	allowMultiErrs bool
	accum          []error
}

// NewValidator returns a Validator configured for strict (extra, non-fatal
// consistency checks beyond the wire-layout minimum) or lax validation.
func NewValidator(strict bool) *Validator {
	return &Validator{strict: strict, allowMultiErrs: true}
}

// Strict reports whether extra packet validation was requested.
func (v *Validator) Strict() bool { return v.strict }

// ResetErr clears previously accumulated errors so the Validator can be reused.
func (v *Validator) ResetErr() { v.accum = v.accum[:0] }

// HasError reports whether any error has been accumulated.
func (v *Validator) HasError() bool { return len(v.accum) != 0 }

// Err returns the accumulated validation result: nil if no error was seen,
// the lone error if exactly one was seen, or a joined error otherwise.
func (v *Validator) Err() error {
	switch len(v.accum) {
	case 0:
		return nil
	case 1:
		return v.accum[0]
	default:
		return errors.Join(v.accum...)
	}
}

func (v *Validator) gotErr(err error) {
	if len(v.accum) != 0 && !v.allowMultiErrs {
		return
	}
	v.accum = append(v.accum, err)
}

// AddError records err against the validator. Exported so sibling packages
// (payload, vrl, vra) can report into a shared Validator the same way
// [Packet.Validate]'s strict CIF layout check does.
func (v *Validator) AddError(err error) { v.gotErr(err) }
