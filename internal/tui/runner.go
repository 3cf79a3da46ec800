package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/oreline/careers-api/internal/form"
	"github.com/oreline/careers-api/pkg/logger"
	"go.uber.org/zap"
)

// FailureAlert is shown when the endpoint could not take the application
const FailureAlert = "Failed to submit application. Please try again."

const (
	actionNext     = "Next"
	actionPrevious = "Previous"
	actionSubmit   = "Submit Application"
	actionQuit     = "Quit"
)

// Runner walks an applicant through the six steps on a terminal
type Runner struct {
	driver     PromptDriver
	controller *form.Controller
}

// NewRunner binds a prompt driver to a form controller
func NewRunner(driver PromptDriver, controller *form.Controller) *Runner {
	return &Runner{driver: driver, controller: controller}
}

// Run prompts step by step until the application is acknowledged or the
// applicant quits. Quitting returns ErrAborted.
func (r *Runner) Run(ctx context.Context) (*form.Confirmation, error) {
	for {
		view := form.Render(r.controller.Step(), r.controller.Application())
		errs := r.controller.StepErrors(view.Step)

		if err := r.driver.Info(ctx, "\n"+view.Step.String()+"\n"+view.Description); err != nil {
			return nil, err
		}
		if err := r.promptSections(ctx, view, errs); err != nil {
			return nil, err
		}

		// Errors are advisory; navigation is never blocked
		if err := r.showErrors(ctx, r.controller.StepErrors(view.Step)); err != nil {
			return nil, err
		}

		actions := menu(view)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      "What next?",
			Options:      actions,
			DefaultIndex: 0,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}

		switch choice := actions[idx]; choice {
		case actionNext:
			r.controller.Advance()
		case actionPrevious:
			r.controller.Retreat()
		case actionQuit:
			return nil, ErrAborted
		case actionSubmit:
			confirmation, done, err := r.Submit(ctx)
			if err != nil {
				return nil, err
			}
			if done {
				return confirmation, nil
			}
		default:
			if err := r.addEntry(view, choice); err != nil {
				return nil, err
			}
		}
	}
}

// Submit hands the application to the controller and reports the outcome.
// done is false when the applicant has to fix something and try again.
func (r *Runner) Submit(ctx context.Context) (*form.Confirmation, bool, error) {
	confirmation, submitErr := r.controller.Submit(ctx)
	if submitErr == nil {
		if err := r.driver.Info(ctx, "\nApplication Submitted Successfully!\n"+confirmation.Text()); err != nil {
			return nil, false, err
		}
		return confirmation, true, nil
	}

	var validationErr *form.ValidationError
	if errors.As(submitErr, &validationErr) {
		return nil, false, r.reportInvalid(ctx)
	}

	logger.Error("Failed to submit application", zap.Error(submitErr))
	return nil, false, r.driver.Info(ctx, FailureAlert)
}

func (r *Runner) reportInvalid(ctx context.Context) error {
	if err := r.driver.Info(ctx, "Please fix the following before submitting:"); err != nil {
		return err
	}
	for _, step := range form.Steps {
		stepErrs := r.controller.Errors()[step]
		if len(stepErrs) == 0 {
			continue
		}
		if err := r.driver.Info(ctx, step.String()); err != nil {
			return err
		}
		if err := r.showErrors(ctx, stepErrs); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) showErrors(ctx context.Context, errs []form.FieldError) error {
	for _, fe := range errs {
		if err := r.driver.Info(ctx, fmt.Sprintf("  - %s: %s", fe.Field, fe.Message)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) addEntry(view form.StepView, label string) error {
	for _, action := range view.Actions {
		if action.Label == label {
			return r.controller.AddEntry(action.List)
		}
	}
	return fmt.Errorf("unknown action %q", label)
}

func (r *Runner) promptSections(ctx context.Context, view form.StepView, errs []form.FieldError) error {
	for _, section := range view.Sections {
		if section.Title != "" {
			if err := r.driver.Info(ctx, section.Title); err != nil {
				return err
			}
		}
		for _, field := range section.Fields {
			if err := r.promptField(ctx, field, form.MessageFor(errs, field.Path)); err != nil {
				return err
			}
		}
	}
	return nil
}

// promptField asks until the field accepts the answer
func (r *Runner) promptField(ctx context.Context, field form.Field, inline string) error {
	message := field.Label
	if field.Required {
		message += " *"
	}
	if inline != "" {
		message += " [" + inline + "]"
	}

	for {
		value, err := r.ask(ctx, field, message)
		if err != nil {
			return err
		}
		if field.Kind == form.KindFile && value == "" && field.Get() != "" {
			return nil
		}
		setErr := field.Set(value)
		if setErr == nil {
			return nil
		}
		if err := r.driver.Info(ctx, setErr.Error()); err != nil {
			return err
		}
	}
}

func (r *Runner) ask(ctx context.Context, field form.Field, message string) (string, error) {
	switch field.Kind {
	case form.KindSelect:
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, field.Get()),
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Options) {
			return field.Get(), nil
		}
		return field.Options[idx], nil
	case form.KindCheckbox:
		current, _ := strconv.ParseBool(field.Get())
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: current})
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(checked), nil
	case form.KindTextArea:
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: field.Get(),
			Help:    field.Placeholder,
		})
	case form.KindFile:
		help := "Path to a PDF file"
		if current := field.Get(); current != "" {
			help = "Leave empty to keep " + current
		}
		value, err := r.driver.Input(ctx, InputConfig{Message: message, Help: help})
		return strings.TrimSpace(value), err
	default:
		return r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: field.Get(),
			Help:    field.Placeholder,
		})
	}
}

// menu lists the step's buttons in page order
func menu(view form.StepView) []string {
	var actions []string
	for _, action := range view.Actions {
		actions = append(actions, action.Label)
	}
	if view.Step != form.LastStep {
		actions = append([]string{actionNext}, actions...)
	} else {
		actions = append([]string{actionSubmit}, actions...)
	}
	if view.Step != form.FirstStep {
		actions = append(actions, actionPrevious)
	}
	return append(actions, actionQuit)
}
