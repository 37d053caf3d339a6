package utils

import (
	"reflect"
	"testing"
)

type row struct {
	ID      string  `db:"id,pk"`
	Name    string  `db:"name"`
	Skipped string  `db:"-"`
	Email   *string `db:"email"`
	hidden  string
	NoTag   string
}

func TestStructTagValues(t *testing.T) {
	got := StructTagValues(&row{})
	want := []string{"id", "name", "email"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("StructTagValues = %v, want %v", got, want)
	}
}

func TestStructToMap(t *testing.T) {
	got := StructToMap(row{ID: "1", Name: "n", hidden: "h"})
	if len(got) != 3 || got["id"] != "1" || got["name"] != "n" {
		t.Fatalf("unexpected map %v", got)
	}
	if _, ok := got["email"].(*string); !ok {
		t.Fatalf("nil pointers should keep their type, got %T", got["email"])
	}
}

func TestStructTagValuesRejectsNonStruct(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a non-struct input")
		}
	}()
	StructTagValues("id")
}

func TestExcludedAssignments(t *testing.T) {
	got := ExcludedAssignments([]string{"id", "name", "created_at"}, "id", "created_at")
	if got != "name = EXCLUDED.name" {
		t.Fatalf("unexpected assignments %q", got)
	}
}

func TestFilterSliceString(t *testing.T) {
	got := FilterSliceString([]string{"id", "name", "status", "created_at"}, "id", "created_at")
	if !reflect.DeepEqual(got, []string{"name", "status"}) {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestNanoID(t *testing.T) {
	if len(NanoID()) != NanoidSize {
		t.Fatal("unexpected default size")
	}
	if a, b := NanoIDSize(8), NanoIDSize(8); len(a) != 8 || a == b {
		t.Fatalf("unexpected ids %q %q", a, b)
	}
}
