package task

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestTask_UnmarshalNumericID(t *testing.T) {
	data := []byte(`{"id": 42, "title": "Buy milk", "description": "", "priority": "Medium",
		"due_date": "", "status": true, "created_date": "2026-10-01"}`)

	var got Task
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "42" {
		t.Errorf("expected id 42, got %q", got.ID)
	}
	if !got.Status {
		t.Errorf("expected status true")
	}
	if got.Priority != PriorityMedium {
		t.Errorf("expected priority Medium, got %q", got.Priority)
	}
}

func TestTask_UnmarshalStringID(t *testing.T) {
	var got Task
	if err := json.Unmarshal([]byte(`{"id": "a1b2", "title": "x"}`), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "a1b2" {
		t.Errorf("expected id a1b2, got %q", got.ID)
	}
}

func TestTask_UnmarshalBadID(t *testing.T) {
	var got Task
	if err := json.Unmarshal([]byte(`{"id": true}`), &got); err == nil {
		t.Fatalf("expected error for boolean id")
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{in: "low", want: PriorityLow},
		{in: "Medium", want: PriorityMedium},
		{in: "HIGH", want: PriorityHigh},
		{in: "urgent", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParsePriority(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePriority(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePriority(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePriority(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPriority_Cycle(t *testing.T) {
	if PriorityHigh.Next() != PriorityLow {
		t.Errorf("expected High.Next() to wrap to Low")
	}
	if PriorityLow.Prev() != PriorityHigh {
		t.Errorf("expected Low.Prev() to wrap to High")
	}
	if PriorityLow.Next() != PriorityMedium {
		t.Errorf("expected Low.Next() to be Medium")
	}
}

func TestNewDraft_Defaults(t *testing.T) {
	d := NewDraft()
	if d.Priority != PriorityMedium {
		t.Errorf("expected default priority Medium, got %q", d.Priority)
	}
	if d.Title != "" || d.Description != "" || d.DueDate != "" {
		t.Errorf("expected empty fields, got %+v", d)
	}
}

func TestDraftFromTask(t *testing.T) {
	d := DraftFromTask(Task{ID: "7", Title: "Read", Description: "book", Priority: PriorityHigh, DueDate: "2026-11-01", Status: true})
	want := Draft{Title: "Read", Description: "book", Priority: PriorityHigh, DueDate: "2026-11-01"}
	if d != want {
		t.Fatalf("expected %+v, got %+v", want, d)
	}
}

func TestDraft_Validate(t *testing.T) {
	tests := []struct {
		name      string
		draft     Draft
		wantField string
	}{
		{name: "valid", draft: Draft{Title: "Buy milk", Priority: PriorityMedium}},
		{name: "valid with due date", draft: Draft{Title: "Buy milk", Priority: PriorityLow, DueDate: "2026-12-31"}},
		{name: "empty title", draft: Draft{Title: "", Priority: PriorityMedium}, wantField: "title"},
		{name: "blank title", draft: Draft{Title: "   ", Priority: PriorityMedium}, wantField: "title"},
		{name: "bad priority", draft: Draft{Title: "x", Priority: "Urgent"}, wantField: "priority"},
		{name: "bad due date", draft: Draft{Title: "x", Priority: PriorityLow, DueDate: "31/12/2026"}, wantField: "due_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, verr.Field)
			}
		})
	}
}

func TestDraft_ValidateEmptyTitleMessage(t *testing.T) {
	err := Draft{Priority: PriorityMedium}.Validate()
	if err == nil || err.Error() != "Title is required" {
		t.Fatalf("expected %q, got %v", "Title is required", err)
	}
}
