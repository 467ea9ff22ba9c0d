package agent

import "context"

// FuncAgent adapts a plain function into an Agent.
type FuncAgent struct {
	name     string
	schedule string
	fn       func(ctx context.Context) error
}

func NewFuncAgent(name, schedule string, fn func(ctx context.Context) error) *FuncAgent {
	return &FuncAgent{name: name, schedule: schedule, fn: fn}
}

func (a *FuncAgent) GetName() string                   { return a.name }
func (a *FuncAgent) GetSchedule() string               { return a.schedule }
func (a *FuncAgent) Execute(ctx context.Context) error { return a.fn(ctx) }
