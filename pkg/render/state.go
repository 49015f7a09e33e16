package render

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/observability"
)

// State is a render's position in the stage sequence.
type State int

// States in the order a successful render passes through them.
const (
	StateIdle State = iota
	StateNormalized
	StateCreated
	StateLaidOut
	StateBounded
	StatePositioned
	StateFinalized
	StateAborted
)

var stateNames = [...]string{
	StateIdle:       "idle",
	StateNormalized: "normalized",
	StateCreated:    "created",
	StateLaidOut:    "laid-out",
	StateBounded:    "bounded",
	StatePositioned: "positioned",
	StateFinalized:  "finalized",
	StateAborted:    "aborted",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// machine tracks one render. Stages must be entered in order; an error at
// any point moves it to StateAborted for good.
type machine struct {
	ctx    context.Context
	state  State
	logger *log.Logger
	hooks  observability.RenderHooks
	mark   time.Time
	trace  []State
}

func newMachine(ctx context.Context, logger *log.Logger, hooks observability.RenderHooks) *machine {
	return &machine{ctx: ctx, logger: logger, hooks: hooks, mark: time.Now(), trace: []State{StateIdle}}
}

// advance moves to the next state and reports the time spent reaching it.
// kv are extra key/value pairs for the debug log line.
func (m *machine) advance(to State, kv ...any) error {
	if m.state == StateAborted || to != m.state+1 || to == StateAborted {
		return errors.New(errors.ErrCodeInternal, "invalid render transition %s -> %s", m.state, to)
	}
	d := time.Since(m.mark)
	m.mark = time.Now()
	m.state = to
	m.trace = append(m.trace, to)
	m.hooks.OnStage(m.ctx, to.String(), d)
	m.logger.Debug("render stage", append([]any{"state", to.String(), "duration", d}, kv...)...)
	return nil
}

// abort records a failure. There is no rollback: whatever the finished
// stages wrote stays in place.
func (m *machine) abort(err error) error {
	from := m.state
	m.state = StateAborted
	m.trace = append(m.trace, StateAborted)
	m.logger.Debug("render aborted", "after", from.String(), "error", err)
	return err
}
