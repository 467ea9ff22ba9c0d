package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs registered agents on their cron schedules.
type Scheduler struct {
	cron    *cron.Cron
	agents  []Agent
	timeout time.Duration
	log     *zap.Logger
}

func NewScheduler(log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:    cron.New(),
		agents:  make([]Agent, 0),
		timeout: 30 * time.Minute,
		log:     log,
	}
}

// RegisterAgent adds an agent and schedules it when it has a schedule.
func (s *Scheduler) RegisterAgent(agent Agent) error {
	s.agents = append(s.agents, agent)

	schedule := agent.GetSchedule()
	if schedule == "" {
		s.log.Info("agent registered for on-demand runs", zap.String("agent", agent.GetName()))
		return nil
	}

	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.run(ctx, agent)
	})
	if err != nil {
		return fmt.Errorf("schedule agent %s: %w", agent.GetName(), err)
	}

	s.log.Info("agent scheduled", zap.String("agent", agent.GetName()), zap.String("schedule", schedule))
	return nil
}

func (s *Scheduler) run(ctx context.Context, agent Agent) error {
	start := time.Now()
	s.log.Info("agent started", zap.String("agent", agent.GetName()))

	if err := agent.Execute(ctx); err != nil {
		s.log.Error("agent failed", zap.String("agent", agent.GetName()), zap.Error(err))
		return err
	}

	s.log.Info("agent completed", zap.String("agent", agent.GetName()), zap.Duration("took", time.Since(start)))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("agents", len(s.agents)))
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	s.log.Info("scheduler stopped")
}

// RunAgentByName runs an agent immediately.
func (s *Scheduler) RunAgentByName(ctx context.Context, name string) error {
	for _, agent := range s.agents {
		if agent.GetName() == name {
			return s.run(ctx, agent)
		}
	}
	return fmt.Errorf("agent %q not registered", name)
}

func (s *Scheduler) GetRegisteredAgents() []string {
	names := make([]string, len(s.agents))
	for i, agent := range s.agents {
		names[i] = agent.GetName()
	}
	return names
}
