package cart

import (
	"testing"

	"siopa/models"
)

func TestUpsertLineReplacesQuantity(t *testing.T) {
	lines := UpsertLine(nil, models.CartLine{ProductID: "p1", Quantity: 2})
	lines = UpsertLine(lines, models.CartLine{ProductID: "p1", Quantity: 5})

	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Errorf("expected quantity replaced with 5, got %d", lines[0].Quantity)
	}
}

func TestUpsertLineAppendsNewProduct(t *testing.T) {
	lines := UpsertLine(nil, models.CartLine{ProductID: "p1", Quantity: 1})
	lines = UpsertLine(lines, models.CartLine{ProductID: "p2", Quantity: 3})

	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(lines))
	}
	if lines[1].ProductID != "p2" || lines[1].Quantity != 3 {
		t.Errorf("unexpected second line: %+v", lines[1])
	}
}

func TestRemoveLine(t *testing.T) {
	lines := []models.CartLine{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 2},
	}

	lines, removed := RemoveLine(lines, "p1")
	if !removed {
		t.Error("expected removal to be reported")
	}
	if len(lines) != 1 || lines[0].ProductID != "p2" {
		t.Errorf("unexpected lines after removal: %+v", lines)
	}

	// removing something absent is a no-op, not an error
	lines, removed = RemoveLine(lines, "p1")
	if removed {
		t.Error("second removal should report nothing removed")
	}
	if len(lines) != 1 {
		t.Errorf("lines should be unchanged, got %+v", lines)
	}
}
