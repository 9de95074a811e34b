package favourites

// AddToSet returns ids with id appended unless it is already present.
// Mirrors the $addToSet semantics the store relies on.
func AddToSet(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// RemoveFromSet filters id out of ids and reports whether the set shrank.
func RemoveFromSet(ids []string, id string) ([]string, bool) {
	kept := ids[:0]
	removed := false
	for _, existing := range ids {
		if existing == id {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	return kept, removed
}
