package compat

import (
	"fmt"
	"iter"
)

// Options is the set of compatibility options configured for one document.
// The zero value is an empty set ready to use.
type Options struct {
	values map[CompOption]Value
}

func NewOptions() *Options {
	return &Options{values: make(map[CompOption]Value)}
}

func (o *Options) put(opt CompOption, v Value) {
	if o.values == nil {
		o.values = make(map[CompOption]Value)
	}
	o.values[opt] = v
}

// Add inserts the default of opt for tier. When no default is recorded for
// that tier the set is left unchanged and Add returns false.
func (o *Options) Add(opt CompOption, tier Executable) bool {
	v, ok := opt.DefaultFor(tier)
	if !ok {
		return false
	}
	o.put(opt, v)
	return true
}

// Remove deletes opt; removing an absent option is not an error.
func (o *Options) Remove(opt CompOption) {
	delete(o.values, opt)
}

func (o *Options) Has(opt CompOption) bool {
	_, ok := o.Get(opt)
	return ok
}

func (o *Options) Get(opt CompOption) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.values[opt]
	return v, ok
}

func (o *Options) Len() int {
	if o == nil {
		return 0
	}
	return len(o.values)
}

// Set overwrites the value of opt. The value must have the shape the catalog
// declares for opt; integer values are clamped to the option's bound like the
// decoder does.
func (o *Options) Set(opt CompOption, v Value) error {
	if !opt.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownOption, opt)
	}
	if v.Kind() != opt.Kind() {
		return fmt.Errorf("%w: %s holds %v, got %v", ErrOptionShapeMismatch, opt, opt.Kind(), v.Kind())
	}
	checked, err := valueFromCode(v.Kind(), uint64(v.Code()), opt.IntMax())
	if err != nil {
		return fmt.Errorf("%s: %w", opt, err)
	}
	o.put(opt, checked)
	return nil
}

// SetExecutable prunes every option that tier does not recognize and returns
// the removed options in name order. Options that are absent stay absent.
func (o *Options) SetExecutable(tier Executable) []CompOption {
	removed := o.Illegal(tier)
	for _, opt := range removed {
		delete(o.values, opt)
	}
	return removed
}

// Illegal returns the present options that tier does not recognize.
func (o *Options) Illegal(tier Executable) []CompOption {
	var out []CompOption
	for opt := range o.All() {
		if !opt.LegalFor(tier) {
			out = append(out, opt)
		}
	}
	return out
}

// All yields the options in ascending name order.
func (o *Options) All() iter.Seq2[CompOption, Value] {
	return func(yield func(CompOption, Value) bool) {
		if o == nil || len(o.values) == 0 {
			return
		}
		for i := range optionCount {
			opt := CompOption(i)
			v, ok := o.values[opt]
			if !ok {
				continue
			}
			if !yield(opt, v) {
				return
			}
		}
	}
}

// Merge copies every option of other into o, overwriting existing values.
func (o *Options) Merge(other *Options) {
	for opt, v := range other.All() {
		o.put(opt, v)
	}
}

func (o *Options) Clone() *Options {
	c := NewOptions()
	c.Merge(o)
	return c
}

// Equal compares the sets ignoring order.
func (o *Options) Equal(other *Options) bool {
	if o.Len() != other.Len() {
		return false
	}
	for opt, v := range o.All() {
		w, ok := other.Get(opt)
		if !ok || w != v {
			return false
		}
	}
	return true
}
