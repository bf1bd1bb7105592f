package catalog

import "testing"

func TestTemplateByID(t *testing.T) {
	tpl, ok := TemplateByID("code-review")
	if !ok {
		t.Fatalf("code-review not found")
	}
	if tpl.Title != "AI Code Review" {
		t.Fatalf("unexpected title: %q", tpl.Title)
	}
	if _, ok := TemplateByID("nope"); ok {
		t.Fatalf("unknown id resolved")
	}
}

func TestModelByID(t *testing.T) {
	m, ok := ModelByID("groq-llama-3.1-8b")
	if !ok {
		t.Fatalf("groq-llama-3.1-8b not found")
	}
	if m.Provider != ProviderGroq {
		t.Fatalf("unexpected provider: %q", m.Provider)
	}
	if m.Model == "" {
		t.Fatalf("provider-native model name empty")
	}
	if _, ok := ModelByID("nope"); ok {
		t.Fatalf("unknown id resolved")
	}
}

func TestInputSpec_RequiredDefaultsTrue(t *testing.T) {
	s := InputSpec{Name: "x", Type: InputText}
	if !s.IsRequired() {
		t.Fatalf("nil Required should mean required")
	}
	f := false
	s.Required = &f
	if s.IsRequired() {
		t.Fatalf("explicit false should mean optional")
	}
}

func TestChatTemplate_Shape(t *testing.T) {
	tpl, ok := TemplateByID(ChatTemplateID)
	if !ok {
		t.Fatalf("chat template missing")
	}
	if !tpl.IsChat() {
		t.Fatalf("IsChat false for chat template")
	}
	if len(tpl.Inputs) != 1 || tpl.Inputs[0].Name != "Your Message" {
		t.Fatalf("unexpected chat inputs: %+v", tpl.Inputs)
	}
}

func TestCatalogs_WellFormed(t *testing.T) {
	seen := map[string]bool{}
	for i := range Templates {
		tpl := &Templates[i]
		if tpl.ID == "" || tpl.Title == "" || tpl.SystemPrompt == "" {
			t.Fatalf("template %d incomplete: %+v", i, tpl)
		}
		if seen[tpl.ID] {
			t.Fatalf("duplicate template id %q", tpl.ID)
		}
		seen[tpl.ID] = true
		for _, spec := range tpl.Inputs {
			if spec.Type == InputSelectSearch && len(spec.Options) == 0 {
				t.Fatalf("%s: select input %q without options", tpl.ID, spec.Name)
			}
		}
	}

	seenModels := map[string]bool{}
	for i := range Models {
		m := &Models[i]
		if m.ID == "" || m.Provider == "" || m.Model == "" || m.Label == "" {
			t.Fatalf("model %d incomplete: %+v", i, m)
		}
		if seenModels[m.ID] {
			t.Fatalf("duplicate model id %q", m.ID)
		}
		seenModels[m.ID] = true
	}
}
