package statemachine

import (
	"github.com/felixgeelhaar/statekit"
)

// guardResultBuilt allows a commit only once an automaton has been built.
// Guards receive the context by value, which is *Context here.
func guardResultBuilt(ctx *Context, _ statekit.Event) bool {
	return ctx != nil && ctx.Result != nil
}
