package cli

import (
	"github.com/charmbracelet/huh"
)

// ConfirmFunc asks a yes/no question.
type ConfirmFunc func(prompt string) (bool, error)

// NewConfirmFunc creates a ConfirmFunc backed by huh's confirm component.
func NewConfirmFunc() ConfirmFunc {
	return func(prompt string) (bool, error) {
		var result bool
		err := huh.NewConfirm().
			Title(prompt).
			Affirmative("Delete").
			Negative("Keep").
			Value(&result).
			Run()
		return result, err
	}
}

// AlwaysYes returns a ConfirmFunc that always confirms.
func AlwaysYes() ConfirmFunc {
	return func(_ string) (bool, error) {
		return true, nil
	}
}

// PromptFunc asks for free-text input.
type PromptFunc func(prompt string) (string, error)

// NewPromptFunc creates a PromptFunc backed by huh's input component.
func NewPromptFunc() PromptFunc {
	return func(prompt string) (string, error) {
		var result string
		err := huh.NewInput().
			Title(prompt).
			Value(&result).
			Run()
		return result, err
	}
}

// SelectFunc asks the user to pick one option and returns its index.
type SelectFunc func(title string, options []string) (int, error)

// NewSelectFunc creates a SelectFunc backed by huh's select component.
func NewSelectFunc() SelectFunc {
	return func(title string, options []string) (int, error) {
		var result int
		err := huh.NewSelect[int]().
			Title(title).
			Options(indexedOptions(options)...).
			Value(&result).
			Run()
		return result, err
	}
}

// MultiSelectFunc asks the user to pick any number of options and returns
// their indices.
type MultiSelectFunc func(title string, options []string) ([]int, error)

// NewMultiSelectFunc creates a MultiSelectFunc backed by huh's multi-select component.
func NewMultiSelectFunc() MultiSelectFunc {
	return func(title string, options []string) ([]int, error) {
		var result []int
		err := huh.NewMultiSelect[int]().
			Title(title).
			Options(indexedOptions(options)...).
			Value(&result).
			Run()
		return result, err
	}
}

func indexedOptions(labels []string) []huh.Option[int] {
	opts := make([]huh.Option[int], len(labels))
	for i, l := range labels {
		opts[i] = huh.NewOption(l, i)
	}
	return opts
}

// PromptKit bundles the prompts a command may need so tests can swap them.
type PromptKit struct {
	Prompt      PromptFunc
	Confirm     ConfirmFunc
	Select      SelectFunc
	MultiSelect MultiSelectFunc
}

// NewPromptKit returns the interactive huh prompts. With yes set, every
// confirmation is answered automatically.
func NewPromptKit(yes bool) PromptKit {
	kit := PromptKit{
		Prompt:      NewPromptFunc(),
		Confirm:     NewConfirmFunc(),
		Select:      NewSelectFunc(),
		MultiSelect: NewMultiSelectFunc(),
	}
	if yes {
		kit.Confirm = AlwaysYes()
	}
	return kit
}
