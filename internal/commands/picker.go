package commands

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("commands: prompt aborted")

// Picker chooses one entry of options. It backs --interactive so commands can
// be tested without a terminal.
type Picker interface {
	Pick(ctx context.Context, message string, options []string) (string, error)
}

// SurveyPicker prompts on the terminal with a survey select list.
type SurveyPicker struct {
	PageSize int
}

func (p SurveyPicker) Pick(ctx context.Context, message string, options []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(options) == 0 {
		return "", errors.New("commands: nothing to pick from")
	}

	var out string
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: options[0],
	}
	if p.PageSize > 0 {
		prompt.PageSize = p.PageSize
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrAborted
		}
		return "", err
	}
	return out, nil
}
