package cart

import "siopa/models"

// UpsertLine returns lines with the given line added. If the product is
// already present its quantity is replaced with the new value, not
// incremented; re-adding is how the client sets an exact quantity.
func UpsertLine(lines []models.CartLine, line models.CartLine) []models.CartLine {
	for i, existing := range lines {
		if existing.ProductID == line.ProductID {
			lines[i].Quantity = line.Quantity
			return lines
		}
	}
	return append(lines, line)
}

// RemoveLine filters out the line for the given product. The second return
// reports whether anything was removed; callers treat false as a no-op, not
// an error.
func RemoveLine(lines []models.CartLine, productID string) ([]models.CartLine, bool) {
	kept := lines[:0]
	removed := false
	for _, line := range lines {
		if line.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	return kept, removed
}
