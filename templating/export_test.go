package templating

// Prepare rewrites src the way a render call does and returns the
// rewritten text with the helper registrations it needs.
func Prepare(src string, known ...string) (string, []string) {
	set := make(map[string]bool, len(known))
	for _, name := range known {
		set[name] = true
	}

	pr := newPreparer(func(name string) bool { return set[name] })
	out := pr.prepare(src)

	names := make([]string, 0, len(pr.used))
	for name := range pr.used {
		names = append(names, name)
	}

	return out, names
}
