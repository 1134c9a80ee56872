// Package command holds the console's command registry, the dispatcher that
// turns an input line into an invocation, and prefix autocompletion.
//
// The registry is filled once during setup and only read afterwards. It
// does no locking; hosts that register from several goroutines must
// synchronize themselves.
package command

import (
	"strings"
	"unicode"

	"codeberg.org/mutker/devconsole/internal/errors"
	"codeberg.org/mutker/devconsole/internal/logger"
)

// Invoker runs a command with arguments already converted to the entry's
// parameter types, in order. A nil or blank result means "no value".
type Invoker func(args []any) (any, error)

// Entry is a registered command. Entries are never mutated after Register.
type Entry struct {
	Name   string
	Params []ParamType
	Invoke Invoker
}

// Signature returns "name type1 type2 ...", or just the name when the
// entry takes no parameters.
func (e *Entry) Signature() string {
	if len(e.Params) == 0 {
		return e.Name
	}

	var b strings.Builder
	b.WriteString(e.Name)
	for _, p := range e.Params {
		b.WriteByte(' ')
		b.WriteString(string(p))
	}
	return b.String()
}

type Registry struct {
	entries map[string]*Entry
	parsers map[ParamType]Parser
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
		parsers: defaultParsers(),
	}
}

// DefineType adds or replaces the parser for a parameter type tag.
func (r *Registry) DefineType(t ParamType, p Parser) {
	r.parsers[t] = p
}

// Register stores a new command. Names are compared case-insensitively;
// registering a name twice fails with ErrDuplicateCommand.
func (r *Registry) Register(name string, params []ParamType, invoke Invoker) error {
	errFactory := errors.New()

	if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return errFactory.WithData(ErrInvalidName, name)
	}
	if invoke == nil {
		return errFactory.WithData(ErrNilInvoker, name)
	}

	key := strings.ToLower(name)
	if existing, ok := r.entries[key]; ok {
		return errFactory.WithData(ErrDuplicateCommand, struct {
			Name     string
			Existing string
		}{
			Name:     name,
			Existing: existing.Name,
		})
	}

	for _, p := range params {
		if _, ok := r.parsers[p]; !ok {
			return errFactory.WithData(ErrUnknownParamType, struct {
				Name string
				Type ParamType
			}{
				Name: name,
				Type: p,
			})
		}
	}

	entry := &Entry{
		Name:   name,
		Params: append([]ParamType(nil), params...),
		Invoke: invoke,
	}
	r.entries[key] = entry

	logger.Debug().
		Str("command", entry.Name).
		Int("params", len(entry.Params)).
		Msg("Command registered")

	return nil
}

// MustRegister is Register for setup code: a failed registration is a
// programming error and panics.
func (r *Registry) MustRegister(name string, params []ParamType, invoke Invoker) {
	if err := r.Register(name, params, invoke); err != nil {
		panic(err)
	}
}

// Resolve looks a command up by exact, case-insensitive name.
func (r *Registry) Resolve(name string) (*Entry, bool) {
	e, ok := r.entries[strings.ToLower(name)]
	return e, ok
}

// AllStartingWith returns every entry whose name starts with prefix,
// ignoring case, in no particular order.
func (r *Registry) AllStartingWith(prefix string) []*Entry {
	prefix = strings.ToLower(prefix)

	var out []*Entry
	for key, e := range r.entries {
		if strings.HasPrefix(key, prefix) {
			out = append(out, e)
		}
	}
	return out
}

// All returns every entry in no particular order.
func (r *Registry) All() []*Entry {
	return r.AllStartingWith("")
}

func (r *Registry) Len() int {
	return len(r.entries)
}

func (r *Registry) parser(t ParamType) (Parser, bool) {
	p, ok := r.parsers[t]
	return p, ok
}
