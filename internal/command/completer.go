package command

import "sort"

// Completer answers prefix queries against a Registry.
type Completer struct {
	registry *Registry
}

func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Suggestions returns the sorted signatures of every command whose name
// starts with prefix, ignoring case.
func (c *Completer) Suggestions(prefix string) []string {
	entries := c.registry.AllStartingWith(prefix)

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Signature())
	}
	sort.Strings(out)
	return out
}

// BestMatch returns the lexicographically first command name starting with
// prefix, or prefix unchanged when nothing matches.
func (c *Completer) BestMatch(prefix string) string {
	entries := c.registry.AllStartingWith(prefix)
	if len(entries) == 0 {
		return prefix
	}

	best := entries[0].Name
	for _, e := range entries[1:] {
		if e.Name < best {
			best = e.Name
		}
	}
	return best
}
