package analysis

// modeOf returns the most frequent non-empty value in sequence order, ties
// broken by first encounter. Every categorical aggregation (POV, tense,
// formality level) goes through this one helper so tie-break behavior cannot
// drift between fields.
func modeOf(values []string, fallback string) string {
	counts := map[string]int{}
	order := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	best := fallback
	bestCount := 0
	for _, v := range order {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}

// unionFirstSeen de-duplicates while preserving first-seen order.
func unionFirstSeen(lists ...[]string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, list := range lists {
		for _, v := range list {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
