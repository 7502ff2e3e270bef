package keymap

type contextKey struct {
	context string
	key     string
}

// Resolver maps key strings to actions within a stack of contexts.
type Resolver struct {
	bindings map[contextKey]Action
	byAction map[Action][]string // action -> keys (for help)
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[contextKey]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[contextKey{b.Context, key}] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	for action, keys := range r.byAction {
		r.byAction[action] = dedupe(keys)
	}
	return r
}

// Resolve returns the action bound to key in the first context that binds it.
// The global context is always consulted last. It returns "" when unbound.
func (r *Resolver) Resolve(key string, contexts ...string) Action {
	for _, c := range contexts {
		if a, ok := r.bindings[contextKey{c, key}]; ok {
			return a
		}
	}
	return r.bindings[contextKey{ContextGlobal, key}]
}

// KeysFor returns the keys bound to an action (for help).
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
