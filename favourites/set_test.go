package favourites

import "testing"

func TestAddToSetIsIdempotent(t *testing.T) {
	ids := AddToSet(nil, "p1")
	ids = AddToSet(ids, "p1")
	ids = AddToSet(ids, "p2")

	if len(ids) != 2 {
		t.Fatalf("expected two entries, got %v", ids)
	}
}

func TestRemoveFromSet(t *testing.T) {
	ids := []string{"p1", "p2"}

	ids, removed := RemoveFromSet(ids, "p1")
	if !removed {
		t.Error("first removal should succeed")
	}
	if len(ids) != 1 {
		t.Fatalf("set should shrink by exactly one, got %v", ids)
	}

	// removing again must report failure, not silent success
	ids, removed = RemoveFromSet(ids, "p1")
	if removed {
		t.Error("second removal should report nothing removed")
	}
	if len(ids) != 1 {
		t.Errorf("set should be unchanged, got %v", ids)
	}
}
