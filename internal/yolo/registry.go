package yolo

// Registry maps class labels to stable integer ids. Ids are assigned in
// strict first-seen order starting at 0 and are never reassigned, so the
// mapping is only meaningful for a single conversion run.
type Registry struct {
	ids    map[string]int
	labels []string
}

// NewRegistry creates an empty class registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]int)}
}

// IDFor returns the id for label, assigning the next free id on first
// sight.
func (r *Registry) IDFor(label string) int {
	if id, ok := r.ids[label]; ok {
		return id
	}
	id := len(r.labels)
	r.ids[label] = id
	r.labels = append(r.labels, label)
	return id
}

// Labels returns all registered labels in ascending id order.
func (r *Registry) Labels() []string {
	out := make([]string, len(r.labels))
	copy(out, r.labels)
	return out
}

// Len reports the number of distinct labels seen.
func (r *Registry) Len() int {
	return len(r.labels)
}
