package usecase

import (
	"testing"

	"taskboard-backend/pkg/apperr"
)

func TestEnsureDefaultColumnsSeedsOnce(t *testing.T) {
	m, _ := newTestBoard(t)

	columns, err := m.GetAllColumns()
	if err != nil {
		t.Fatalf("GetAllColumns: %v", err)
	}
	if len(columns) != 4 {
		t.Fatalf("got %d default columns, want 4", len(columns))
	}

	want := []string{"Backlog", "In Progress", "Review", "Done"}
	for i, name := range want {
		if columns[i].Name != name {
			t.Errorf("column %d named %q, want %q", i, columns[i].Name, name)
		}
	}

	// Re-running the seeding must not duplicate the board.
	if err := m.svc.EnsureDefaultColumns(); err != nil {
		t.Fatalf("second EnsureDefaultColumns: %v", err)
	}
	columns, err = m.GetAllColumns()
	if err != nil {
		t.Fatalf("GetAllColumns: %v", err)
	}
	if len(columns) != 4 {
		t.Errorf("reseeding grew the board to %d columns", len(columns))
	}
}

func TestCreateColumnRejectsDuplicateActiveName(t *testing.T) {
	m, _ := newTestBoard(t)

	if _, err := m.CreateColumn("Backlog", 5, 0); !apperr.IsValidation(err) {
		t.Errorf("duplicate active name: got %v, want a validation error", err)
	}
	if _, err := m.CreateColumn("   ", 5, 0); !apperr.IsValidation(err) {
		t.Errorf("blank name: got %v, want a validation error", err)
	}
}

func TestDeactivateColumnFreesItsName(t *testing.T) {
	m, _ := newTestBoard(t)

	review := columnNamed(t, m, "Review")
	if err := m.DeactivateColumn(review.ID); err != nil {
		t.Fatalf("DeactivateColumn: %v", err)
	}

	if column, _ := m.GetColumnByName("Review"); column != nil {
		t.Error("deactivated column still resolves by name")
	}

	// The retired name is free for reuse.
	replacement, err := m.CreateColumn("Review", 3, 2)
	if err != nil {
		t.Fatalf("recreate column: %v", err)
	}
	if replacement.ID == review.ID {
		t.Error("recreating a column should mint a fresh row")
	}
}

func TestUpdateColumnRenameKeepsNamesUnique(t *testing.T) {
	m, _ := newTestBoard(t)
	review := columnNamed(t, m, "Review")

	name := "Done"
	if _, err := m.UpdateColumn(review.ID, UpdateColumnInput{Name: &name}); !apperr.IsValidation(err) {
		t.Errorf("rename onto a taken name: got %v, want a validation error", err)
	}

	name = "QA"
	wip := 3
	column, err := m.UpdateColumn(review.ID, UpdateColumnInput{Name: &name, WIPLimit: &wip})
	if err != nil {
		t.Fatalf("UpdateColumn: %v", err)
	}
	if column.Name != "QA" || column.WIPLimit != 3 {
		t.Errorf("got name=%q wip=%d, want QA/3", column.Name, column.WIPLimit)
	}
}

func TestUpdateColumnNotFound(t *testing.T) {
	m, _ := newTestBoard(t)
	name := "Anything"
	if _, err := m.UpdateColumn("no-such-column", UpdateColumnInput{Name: &name}); !apperr.IsNotFound(err) {
		t.Errorf("got %v, want a not-found error", err)
	}
}
