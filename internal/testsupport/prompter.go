package testsupport

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNoMoreAnswers is returned when a ScriptedPrompter runs out of answers.
var ErrNoMoreAnswers = errors.New("scripted prompter: no more answers")

// ScriptedPrompter replays canned answers and records everything it was asked.
type ScriptedPrompter struct {
	mu        sync.Mutex
	answers   []string
	Questions []string
	Said      []string
}

// NewScriptedPrompter returns a prompter that answers in order.
func NewScriptedPrompter(answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{answers: append([]string(nil), answers...)}
}

// Say records an informational line.
func (p *ScriptedPrompter) Say(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Said = append(p.Said, fmt.Sprintf(format, args...))
}

// Ask records the question and returns the next answer.
func (p *ScriptedPrompter) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Questions = append(p.Questions, question)
	if len(p.answers) == 0 {
		return "", ErrNoMoreAnswers
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

// Remaining reports how many answers have not been consumed.
func (p *ScriptedPrompter) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.answers)
}
