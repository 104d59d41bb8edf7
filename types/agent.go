package types

// Outcome of an episode
type Outcome int

const (
	// OutcomeTerminal means the episode reached an absorbing state
	OutcomeTerminal Outcome = iota
	// OutcomeTruncated means the horizon cap stopped the episode first.
	// Never conflated with success.
	OutcomeTruncated
)

func (o Outcome) String() string {
	if o == OutcomeTerminal {
		return "terminal"
	}
	return "truncated"
}

type AgentConfig struct {
	Episodes int
	Horizon  int
	Policy   Policy
	Model    Model
}

// RL Agent configured with the corresponding
// policy and model
type Agent struct {
	config *AgentConfig
	// collects the traces of the run
	// Only populated if the Run function is invoked
	traces   []*Trace
	outcomes []Outcome
	policy   Policy
	model    Model
}

// Instantiates a new Agent
func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config:   config,
		traces:   make([]*Trace, config.Episodes),
		outcomes: make([]Outcome, config.Episodes),
		policy:   config.Policy,
		model:    config.Model,
	}
}

// Run the agent for the specified number of episodes and horizon
func (a *Agent) Run() error {
	for i := 0; i < a.config.Episodes; i++ {
		trace, outcome, err := a.RunEpisode(i)
		if err != nil {
			return err
		}
		a.traces[i] = trace
		a.outcomes[i] = outcome
	}
	return nil
}

// RunEpisode rolls the policy out against the model until a terminal state
// or the horizon cap. The error is non-nil only for ErrInvalidAction, which
// is fatal by contract.
func (a *Agent) RunEpisode(episode int) (*Trace, Outcome, error) {
	state := a.model.Start()
	trace := NewTrace()
	outcome := OutcomeTruncated

	for step := 0; step < a.config.Horizon; step++ {
		if a.model.Terminal(state) {
			outcome = OutcomeTerminal
			break
		}
		actions := a.model.Actions(state)
		if len(actions) == 0 {
			break
		}
		action, ok := a.policy.NextAction(step, state, actions)
		if !ok {
			break
		}
		nextState, reward, err := a.model.Step(state, action)
		if err != nil {
			return trace, outcome, err
		}
		a.policy.Update(step, state, action, reward, nextState)

		trace.Append(step, state, action, reward, nextState)
		state = nextState
	}
	if a.model.Terminal(state) {
		outcome = OutcomeTerminal
	}
	a.policy.UpdateEpisode(episode, trace)

	return trace, outcome, nil
}

// Traces of the episodes run so far
func (a *Agent) Traces() []*Trace {
	return a.traces
}

// Outcomes of the episodes run so far
func (a *Agent) Outcomes() []Outcome {
	return a.outcomes
}
