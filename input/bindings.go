package input

import (
	"slices"
	"sort"
)

// BindingInfo describes one registered matcher for debugging views.
type BindingInfo struct {
	ID       string
	Priority int
	Bindings []string
	Armed    bool
	Holding  bool
}

// Bind registers m (once per ID) and associates it with the binding name.
// Many matchers may share one name and one matcher may carry many names.
func (d *Dispatcher) Bind(m Matcher, name string) *Dispatcher {
	if m.id == "" {
		panic("input: bind of a zero Matcher")
	}

	e, ok := d.entries[m.id]
	if !ok {
		d.nextSeq++
		e = &entry{seq: d.nextSeq}
		d.entries[m.id] = e
		d.sortValid = false
	}
	e.matcher = m

	if !slices.Contains(d.bindings[m.id], name) {
		d.bindings[m.id] = append(d.bindings[m.id], name)
		d.logger.Debug("input binding added", "event", m.id, "binding", name)
	}
	return d
}

// Unbind removes one association. The matcher stays registered; when it has no
// bindings left its timers and hold state are dropped.
func (d *Dispatcher) Unbind(m Matcher, name string) *Dispatcher {
	names, ok := d.bindings[m.id]
	if !ok {
		return d
	}

	i := slices.Index(names, name)
	if i < 0 {
		return d
	}
	names = slices.Delete(names, i, i+1)
	if len(names) > 0 {
		d.bindings[m.id] = names
		return d
	}

	delete(d.bindings, m.id)
	delete(d.holds, m.id)
	d.disarm(m.id)
	if !d.boundKey(m.stateKey) {
		// no matcher will see the release that would lift it
		delete(d.blacklist, m.stateKey)
	}
	d.logger.Debug("input binding removed", "event", m.id, "binding", name)
	return d
}

// boundKey reports whether any matcher with bindings listens on stateKey.
func (d *Dispatcher) boundKey(stateKey string) bool {
	for id, e := range d.entries {
		if e.matcher.stateKey == stateKey && len(d.bindings[id]) > 0 {
			return true
		}
	}
	return false
}

// Link attaches the behaviour of a binding, replacing any previous callback.
func (d *Dispatcher) Link(name string, fn func()) *Dispatcher {
	if fn == nil {
		return d.Unlink(name)
	}
	d.callbacks[name] = fn
	return d
}

// Unlink detaches the callback of a binding. Its matchers stay registered.
func (d *Dispatcher) Unlink(name string) *Dispatcher {
	delete(d.callbacks, name)
	return d
}

// Trigger runs the callback linked to name, as if one of its matchers fired.
func (d *Dispatcher) Trigger(names ...string) *Dispatcher {
	for _, name := range names {
		if fn, ok := d.callbacks[name]; ok {
			fn()
		}
	}
	return d
}

// TriggerEvent runs the callbacks of every binding m is bound to.
func (d *Dispatcher) TriggerEvent(m Matcher) *Dispatcher {
	d.fire(m.id)
	return d
}

func (d *Dispatcher) fire(id string) {
	names := slices.Clone(d.bindings[id])
	gen := d.generation
	for _, name := range names {
		if d.generation != gen {
			return
		}
		if fn, ok := d.callbacks[name]; ok {
			fn()
		}
	}
}

// Clear cancels every pending timer and forgets all matchers, bindings,
// callbacks, holds and gesture state. Call it when a game ends.
func (d *Dispatcher) Clear() *Dispatcher {
	pending := d.timers.Len()
	d.timers.Cancel()
	d.generation++
	d.reset()
	d.logger.Debug("input cleared", "timers", pending)
	return d
}

// Bindings returns a snapshot of registered matchers in dispatch order.
func (d *Dispatcher) Bindings() []BindingInfo {
	entries := d.byPriority()
	infos := make([]BindingInfo, 0, len(entries))
	for _, e := range entries {
		_, armed := d.running[e.matcher.id]
		_, holding := d.holds[e.matcher.id]
		infos = append(infos, BindingInfo{
			ID:       e.matcher.id,
			Priority: e.matcher.priority,
			Bindings: slices.Clone(d.bindings[e.matcher.id]),
			Armed:    armed,
			Holding:  holding,
		})
	}
	return infos
}

// Linked returns the sorted names of bindings that have a callback.
func (d *Dispatcher) Linked() []string {
	names := make([]string, 0, len(d.callbacks))
	for name := range d.callbacks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
