package commands

import (
	"testing"

	"daylist/internal/service"
)

func TestParseTaskRef_NumericOnly(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.HasLetter {
		t.Error("expected HasLetter to be false")
	}
	if ref.TaskNum != 5 {
		t.Errorf("expected TaskNum 5, got %d", ref.TaskNum)
	}
}

func TestParseTaskRef_CombinedRef(t *testing.T) {
	ref, err := ParseTaskRef([]string{"a1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ref.HasLetter {
		t.Error("expected HasLetter to be true")
	}
	if ref.Letter != 'a' {
		t.Errorf("expected Letter 'a', got %c", ref.Letter)
	}
	if ref.TaskNum != 1 {
		t.Errorf("expected TaskNum 1, got %d", ref.TaskNum)
	}
}

func TestParseTaskRef_CombinedRefMultiDigit(t *testing.T) {
	ref, err := ParseTaskRef([]string{"b12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Letter != 'b' || ref.TaskNum != 12 {
		t.Errorf("expected b12, got %c%d", ref.Letter, ref.TaskNum)
	}
}

func TestParseTaskRef_SeparatedRef(t *testing.T) {
	ref, err := ParseTaskRef([]string{"c", "3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Letter != 'c' || ref.TaskNum != 3 {
		t.Errorf("expected c3, got %c%d", ref.Letter, ref.TaskNum)
	}
}

func TestParseTaskRef_Empty(t *testing.T) {
	_, err := ParseTaskRef(nil)
	if err != ErrTaskRefRequired {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_BareLetter(t *testing.T) {
	_, err := ParseTaskRef([]string{"a"})
	if err != ErrTaskRefRequired {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_Invalid(t *testing.T) {
	for _, arg := range []string{"abc", "1a", "a1b", "-3", "A1"} {
		if _, err := ParseTaskRef([]string{arg}); err == nil {
			t.Errorf("expected error for %q", arg)
		}
	}
}

func TestListByLetter(t *testing.T) {
	lists := []service.TaskList{
		{ID: "default", Name: "My Day", IsDefault: true},
		{ID: "groceries", Name: "Groceries"},
		{ID: "work", Name: "Work"},
	}

	list, err := ListByLetter(lists, 'b')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.ID != "work" {
		t.Errorf("expected work, got %s", list.ID)
	}

	if _, err := ListByLetter(lists, 'c'); err == nil {
		t.Error("expected error for unassigned letter")
	}
}

func TestLetterFor(t *testing.T) {
	lists := []service.TaskList{
		{ID: "default", Name: "My Day", IsDefault: true},
		{ID: "groceries", Name: "Groceries"},
	}

	if got := LetterFor(lists, "groceries"); got != 'a' {
		t.Errorf("expected 'a', got %c", got)
	}
	if got := LetterFor(lists, "default"); got != 0 {
		t.Errorf("expected 0 for default list, got %c", got)
	}
}
