package plan

// UniqueSuffixes maps each base name to the portion not shared as a common
// prefix with every other name in the batch. With fewer than two names
// there is no prefix to strip, so a lone name maps to itself. A name fully
// covered by the common prefix maps to the empty string; that is a valid
// result, not an error.
func UniqueSuffixes(names []string) map[string]string {
	prefix := commonPrefix(names)
	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n] = n[len(prefix):]
	}
	return out
}

// commonPrefix returns the longest prefix shared by all names, compared
// byte-wise and case-sensitively.
func commonPrefix(names []string) string {
	if len(names) < 2 {
		return ""
	}
	prefix := names[0]
	for _, n := range names[1:] {
		i := 0
		for i < len(prefix) && i < len(n) && prefix[i] == n[i] {
			i++
		}
		prefix = prefix[:i]
		if prefix == "" {
			break
		}
	}
	return prefix
}
