package collection

// LabelUniverse returns the distinct label names across records, in
// first-occurrence order: record order first, then label order within
// each record.
func LabelUniverse(records []Record) []string {
	seen := make(map[string]struct{})
	names := []string{}

	for _, r := range records {
		for _, l := range r.Labels {
			if _, ok := seen[l.Name]; ok {
				continue
			}
			seen[l.Name] = struct{}{}
			names = append(names, l.Name)
		}
	}

	return names
}

// Filter returns the records matching selection, preserving their
// relative order. NoFilter matches everything; a selection no record
// carries yields an empty, non-nil slice.
func Filter(records []Record, selection string) []Record {
	if selection == NoFilter {
		return append([]Record{}, records...)
	}

	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if r.HasLabel(selection) {
			filtered = append(filtered, r)
		}
	}

	return filtered
}
