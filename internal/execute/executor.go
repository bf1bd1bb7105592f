// Package execute is the server-side orchestrator: it validates an
// execution request, resolves the template, builds the prompt, and
// delegates to the model invoker. Stateless; every request is independent.
package execute

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/promptstudio/prompt-studio/internal/catalog"
	"github.com/promptstudio/prompt-studio/internal/platform/apierr"
	"github.com/promptstudio/prompt-studio/internal/platform/logger"
	"github.com/promptstudio/prompt-studio/internal/promptbuild"
)

// MaxInputChars caps any single string input.
const MaxInputChars = 50_000

// modelKey is the inputs field carrying the model selection. It travels
// alongside the template's user inputs, not as a top-level request field.
const modelKey = "modelId"

// Invoker is the downstream capability the orchestrator delegates to.
type Invoker interface {
	Invoke(ctx context.Context, prompt string, modelID string) (string, error)
}

type Executor struct {
	invoker Invoker
	log     *logger.Logger
}

func New(invoker Invoker, log *logger.Logger) *Executor {
	return &Executor{invoker: invoker, log: log}
}

// Execute runs the validation pipeline and returns the raw provider text.
// Each validation failure short-circuits with a distinct taxonomy error.
func (e *Executor) Execute(ctx context.Context, templateID string, rawInputs json.RawMessage) (string, error) {
	if templateID == "" {
		return "", apierr.New(apierr.MalformedRequest, "Invalid request: templateId is required and must be a string")
	}
	tpl, ok := catalog.TemplateByID(templateID)
	if !ok {
		return "", apierr.New(apierr.TemplateNotFound, "Invalid templateId: template not found")
	}

	inputs, err := decodeInputs(rawInputs)
	if err != nil {
		return "", err
	}

	if err := validateInputs(tpl, inputs); err != nil {
		return "", err
	}

	sanitizeInputs(inputs)

	rawModel, _ := inputs.Delete(modelKey)
	modelID, _ := rawModel.(string)

	prompt, err := promptbuild.Build(tpl, inputs)
	if err != nil {
		return "", err
	}

	e.log.Debug("executing prompt", "template_id", tpl.ID, "model_id", modelID, "prompt_chars", utf8.RuneCountInString(prompt))

	result, err := e.invoker.Invoke(ctx, prompt, modelID)
	if err != nil {
		return "", err
	}
	return result, nil
}

func decodeInputs(raw json.RawMessage) (*promptbuild.Inputs, error) {
	malformed := apierr.New(apierr.MalformedRequest, "Invalid request: inputs must be an object")
	if len(raw) == 0 {
		return nil, malformed
	}
	inputs := promptbuild.NewInputs()
	if err := json.Unmarshal(raw, inputs); err != nil {
		return nil, malformed
	}
	return inputs, nil
}

// validateInputs walks the template's declared inputs: required presence,
// textarea type, then length, failing on the first violation.
func validateInputs(tpl *catalog.Template, inputs *promptbuild.Inputs) error {
	for _, spec := range tpl.Inputs {
		value, present := inputs.Get(spec.Name)

		if spec.IsRequired() && isBlank(value, present) {
			return apierr.NewParam(apierr.MissingInput, spec.Name,
				fmt.Sprintf("Missing required input: %s", spec.Name))
		}
		if !present || value == nil {
			continue
		}

		s, isString := value.(string)
		if spec.Type == catalog.InputTextarea && !isString {
			return apierr.NewParam(apierr.TypeMismatch, spec.Name,
				fmt.Sprintf("Invalid type for %s: expected string", spec.Name))
		}
		if isString && utf8.RuneCountInString(s) > MaxInputChars {
			return apierr.NewParam(apierr.InputTooLong, spec.Name,
				fmt.Sprintf("Input too long: %s exceeds 50,000 characters", spec.Name))
		}
	}
	return nil
}

func isBlank(value any, present bool) bool {
	if !present || value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

// sanitizeInputs strips script-tag sequences from every string value in
// place. Non-string values (the chat history array among them) pass
// through; the prompt builder handles their fields separately.
func sanitizeInputs(inputs *promptbuild.Inputs) {
	for _, key := range inputs.Keys() {
		v, _ := inputs.Get(key)
		switch t := v.(type) {
		case string:
			inputs.Set(key, promptbuild.Sanitize(t))
		case []any:
			for _, e := range t {
				if m, ok := e.(map[string]any); ok {
					if c, ok := m["content"].(string); ok {
						m["content"] = promptbuild.Sanitize(c)
					}
				}
			}
		}
	}
}
