// Package binder attaches every component carrying a capability tag to a
// target component by recording one registration call per member.
package binder

import (
	"errors"
	"fmt"
	"sort"

	"github.com/boga881/drupalextension/src/container"
)

var ErrUnknownTarget = errors.New("unknown target")

// Error reports a binding that could not be recorded.
type Error struct {
	Tag    string
	Target string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("bind %s -> %s: %v", e.Tag, e.Target, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Rule is one tag/target/operation triple.
type Rule struct {
	Tag       string
	Target    string
	Operation string
}

func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s.%s", r.Tag, r.Target, r.Operation)
}

// Bind records operation(member) on target for every member of tag,
// highest priority first and in registration order among equals.
// Nothing is recorded when the target does not exist.
func Bind(reg *container.Registry, tag, target, operation string) error {
	if !reg.Has(target) {
		return &Error{Tag: tag, Target: target, Err: ErrUnknownTarget}
	}

	members := Ordered(reg, tag)
	if len(members) == 0 {
		return nil
	}
	calls := make([]container.RegistrationCall, 0, len(members))
	for _, m := range members {
		calls = append(calls, container.RegistrationCall{
			Target:    target,
			Operation: operation,
			Argument:  container.Reference{ID: m.ID},
		})
	}
	if err := reg.AddCalls(target, calls...); err != nil {
		return &Error{Tag: tag, Target: target, Err: err}
	}
	return nil
}

// Ordered returns the members of tag in binding order.
func Ordered(reg *container.Registry, tag string) []container.Member {
	members := reg.Tagged(tag)
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Tag.Priority > members[j].Tag.Priority
	})
	return members
}

// BindAll applies rules in order and stops at the first failure.
func BindAll(reg *container.Registry, rules ...Rule) error {
	for _, r := range rules {
		if err := Bind(reg, r.Tag, r.Target, r.Operation); err != nil {
			return err
		}
	}
	return nil
}
