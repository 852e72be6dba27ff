package prompts

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Prompt represents one prompt exposed through MCP prompt endpoints.
type Prompt struct {
	Name        string
	Description string
	Arguments   []PromptArgument
	Template    string
}

// PromptArgument describes one named template argument.
type PromptArgument struct {
	Name        string
	Description string
	Required    bool
}

var promptArgumentPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}`)

// Registry stores the prompts the server advertises.
type Registry struct {
	mu      sync.RWMutex
	prompts map[string]Prompt
}

// NewRegistry creates a registry instance.
func NewRegistry() *Registry {
	return &Registry{prompts: make(map[string]Prompt)}
}

// RegisterPrompt inserts or replaces one prompt definition.
func (r *Registry) RegisterPrompt(prompt Prompt) {
	if r == nil {
		return
	}

	name := strings.TrimSpace(prompt.Name)
	if name == "" {
		return
	}
	prompt.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts[strings.ToLower(name)] = prompt
}

// PromptCount returns the number of registered prompts.
func (r *Registry) PromptCount() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.prompts)
}

// ListPrompts returns prompt definitions sorted by name.
func (r *Registry) ListPrompts() []Prompt {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Prompt, 0, len(r.prompts))
	for _, prompt := range r.prompts {
		out = append(out, prompt)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// GetPrompt returns one prompt by name.
func (r *Registry) GetPrompt(name string) (Prompt, bool) {
	if r == nil {
		return Prompt{}, false
	}

	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Prompt{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	prompt, ok := r.prompts[key]
	return prompt, ok
}

// Render fills the prompt template with the given arguments. Every
// required argument must be present; unknown arguments are ignored.
func (p Prompt) Render(args map[string]string) (string, error) {
	for _, arg := range p.Arguments {
		if !arg.Required {
			continue
		}
		if strings.TrimSpace(args[arg.Name]) == "" {
			return "", fmt.Errorf("missing required prompt argument %q", arg.Name)
		}
	}

	rendered := promptArgumentPattern.ReplaceAllStringFunc(p.Template, func(match string) string {
		name := promptArgumentPattern.FindStringSubmatch(match)[1]
		if value, ok := args[name]; ok {
			return value
		}
		return match
	})
	return rendered, nil
}
