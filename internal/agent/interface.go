package agent

import "context"

// Agent is a background job run on a cron schedule or on demand.
type Agent interface {
	// GetName returns a unique name used for logging and on-demand runs.
	GetName() string

	// GetSchedule returns a cron expression such as "@daily" or "0 3 * * *".
	// An empty schedule registers the agent for on-demand runs only.
	GetSchedule() string

	Execute(ctx context.Context) error
}
