package testutil

import "fmt"

// Prompt records one confirmation request.
type Prompt struct {
	Text    string
	Default bool
}

// ScriptedConfirmer answers prompts from a fixed list of answers and
// records every prompt it sees. Running out of answers is an error.
type ScriptedConfirmer struct {
	Answers []bool
	Prompts []Prompt
}

// NewScriptedConfirmer creates a confirmer answering with answers in order.
func NewScriptedConfirmer(answers ...bool) *ScriptedConfirmer {
	return &ScriptedConfirmer{Answers: answers}
}

func (s *ScriptedConfirmer) Confirm(prompt string, def bool) (bool, error) {
	s.Prompts = append(s.Prompts, Prompt{Text: prompt, Default: def})
	if len(s.Answers) == 0 {
		return false, fmt.Errorf("unexpected prompt %q", prompt)
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, nil
}
