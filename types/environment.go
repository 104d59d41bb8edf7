package types

// Model is the transition model contract every exercise environment
// implements. Step must be a pure function of (state, action): stochastic
// domains draw from their own seeded source.
type Model interface {
	// Start state of an episode
	Start() State
	// Actions legal in the given state, in a fixed enumeration order.
	// The order is load bearing: greedy tie-breaks pick the first maximum.
	Actions(State) []Action
	// Step applies an action and returns the next state and the reward.
	// Returns ErrInvalidAction for actions outside the legal set.
	Step(State, Action) (State, float64, error)
	// Terminal reports whether the state is absorbing
	Terminal(State) bool
}

// Enumerable is implemented by models whose full state space can be listed.
// The slice is built once by the model and passed by reference to the
// dynamic-programming solvers.
type Enumerable interface {
	Model
	States() []State
}

// State of the environment that policies observe
type State interface {
	// Indexed by the Hash
	// Should be deterministic
	Hash() string
}

// An Action that a policy can take
type Action interface {
	// Index of the action
	// Should be deterministic
	Hash() string
}
