package prompts

import (
	"strings"
	"testing"
)

func TestRegisterAndGetPrompt(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterPrompt(Prompt{Name: "check-wallet", Template: "Check {{address}}."})

	prompt, ok := registry.GetPrompt("check-wallet")
	if !ok {
		t.Fatal("GetPrompt() did not find registered prompt")
	}
	if prompt.Template != "Check {{address}}." {
		t.Errorf("Template = %q", prompt.Template)
	}

	// Lookup is case-insensitive.
	if _, ok := registry.GetPrompt("Check-Wallet"); !ok {
		t.Error("GetPrompt() should ignore case")
	}
	if _, ok := registry.GetPrompt("missing"); ok {
		t.Error("GetPrompt() found an unregistered prompt")
	}
}

func TestRegisterPromptRejectsEmptyName(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterPrompt(Prompt{Name: "   "})
	if registry.PromptCount() != 0 {
		t.Errorf("PromptCount() = %d, want 0", registry.PromptCount())
	}
}

func TestListPromptsSorted(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterPrompt(Prompt{Name: "zeta"})
	registry.RegisterPrompt(Prompt{Name: "alpha"})
	registry.RegisterPrompt(Prompt{Name: "mid"})

	listed := registry.ListPrompts()
	if len(listed) != 3 {
		t.Fatalf("ListPrompts() = %d entries, want 3", len(listed))
	}
	for i, want := range []string{"alpha", "mid", "zeta"} {
		if listed[i].Name != want {
			t.Errorf("listed[%d].Name = %q, want %q", i, listed[i].Name, want)
		}
	}
}

func TestNilRegistryIsSafe(t *testing.T) {
	var registry *Registry
	if registry.PromptCount() != 0 {
		t.Error("nil registry PromptCount() != 0")
	}
	if listed := registry.ListPrompts(); listed != nil {
		t.Errorf("nil registry ListPrompts() = %v", listed)
	}
	if _, ok := registry.GetPrompt("anything"); ok {
		t.Error("nil registry GetPrompt() returned a prompt")
	}
	registry.RegisterPrompt(Prompt{Name: "ignored"})
}

func TestRender(t *testing.T) {
	prompt := Prompt{
		Name: "transfer-mon",
		Arguments: []PromptArgument{
			{Name: "to", Required: true},
			{Name: "amount", Required: true},
		},
		Template: "Send {{amount}} MON to {{ to }}.",
	}

	rendered, err := prompt.Render(map[string]string{"to": "0xabc", "amount": "1.5"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if rendered != "Send 1.5 MON to 0xabc." {
		t.Errorf("Render() = %q", rendered)
	}
}

func TestRenderMissingRequiredArgument(t *testing.T) {
	prompt := Prompt{
		Name:      "check-wallet",
		Arguments: []PromptArgument{{Name: "address", Required: true}},
		Template:  "Check {{address}}.",
	}

	if _, err := prompt.Render(nil); err == nil {
		t.Fatal("Render() expected error for missing argument")
	} else if !strings.Contains(err.Error(), "address") {
		t.Errorf("error %q does not name the argument", err)
	}
}

func TestRenderLeavesUnknownPlaceholders(t *testing.T) {
	prompt := Prompt{Name: "odd", Template: "Keep {{unknown}} as-is."}

	rendered, err := prompt.Render(map[string]string{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if rendered != "Keep {{unknown}} as-is." {
		t.Errorf("Render() = %q", rendered)
	}
}

func TestDefaultCatalog(t *testing.T) {
	registry := NewDefaultRegistry()
	if registry.PromptCount() != len(DefaultCatalog()) {
		t.Fatalf("PromptCount() = %d, want %d", registry.PromptCount(), len(DefaultCatalog()))
	}

	prompt, ok := registry.GetPrompt("transfer-mon")
	if !ok {
		t.Fatal("transfer-mon missing from default catalog")
	}
	rendered, err := prompt.Render(map[string]string{"to": "0xdef", "amount": "2"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(rendered, "0xdef") || !strings.Contains(rendered, "2 MON") {
		t.Errorf("rendered = %q", rendered)
	}
}
