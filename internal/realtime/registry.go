package realtime

import "sync"

// Registry maps a user id to the set of channels currently open for that
// user (one per tab). It is an injected service so tests can run isolated
// instances; there is no package-level singleton.
//
// A channel belongs to at most one user at a time. Binding an already-bound
// channel to a different user supersedes the previous binding.
type Registry struct {
	mu         sync.RWMutex
	byIdentity map[string]map[*Channel]struct{}
	identity   map[*Channel]string
}

func NewRegistry() *Registry {
	return &Registry{
		byIdentity: make(map[string]map[*Channel]struct{}),
		identity:   make(map[*Channel]string),
	}
}

// Bind registers ch under identity. Idempotent: binding the same channel to
// the same identity twice is a no-op. A re-bind to a different identity
// removes the previous binding first.
func (r *Registry) Bind(identity string, ch *Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.identity[ch]; ok {
		if prev == identity {
			return
		}
		r.removeLocked(prev, ch)
	}

	set, ok := r.byIdentity[identity]
	if !ok {
		set = make(map[*Channel]struct{})
		r.byIdentity[identity] = set
	}
	set[ch] = struct{}{}
	r.identity[ch] = identity
}

// Unbind removes ch from whatever identity set contains it. No-op when the
// channel was never bound. Must be called on every disconnect path; a
// missed unbind leaks a dead channel.
func (r *Registry) Unbind(ch *Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	identity, ok := r.identity[ch]
	if !ok {
		return
	}
	r.removeLocked(identity, ch)
}

// ChannelsFor returns a snapshot of the channels currently bound to
// identity. A channel may close between the snapshot and its use; senders
// must handle that as a send failure, not rely on the snapshot staying live.
func (r *Registry) ChannelsFor(identity string) []*Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.byIdentity[identity]
	if len(set) == 0 {
		return nil
	}
	out := make([]*Channel, 0, len(set))
	for ch := range set {
		out = append(out, ch)
	}
	return out
}

// Len returns the total number of bound channels.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.identity)
}

// removeLocked deletes the binding and prunes the identity's set when it
// becomes empty. Caller holds r.mu.
func (r *Registry) removeLocked(identity string, ch *Channel) {
	delete(r.identity, ch)
	if set, ok := r.byIdentity[identity]; ok {
		delete(set, ch)
		if len(set) == 0 {
			delete(r.byIdentity, identity)
		}
	}
}
