package util

import (
	"reflect"
	"testing"
)

func TestSortedEnumSet(t *testing.T) {
	e := NewSortedEnumSet([]string{"V", "N", "<s>", "N"})
	expected := []string{"<s>", "N", "V"}
	if !reflect.DeepEqual(e.Values(), expected) {
		t.Errorf("Expected %v, got %v", expected, e.Values())
	}
	if i, exists := e.IndexOf("N"); !exists || i != 1 {
		t.Errorf("Expected N at 1, got %d (%v)", i, exists)
	}
	if e.ValueOf(2) != "V" {
		t.Errorf("Expected V at 2, got %s", e.ValueOf(2))
	}
	if !e.Frozen {
		t.Error("Expected sorted enum set to be frozen")
	}
}

func TestEnumSetAdd(t *testing.T) {
	e := NewEnumSet(2)
	if i, added := e.Add("a"); !added || i != 0 {
		t.Errorf("Expected a added at 0, got %d (%v)", i, added)
	}
	if i, added := e.Add("a"); added || i != 0 {
		t.Errorf("Expected a found at 0, got %d (%v)", i, added)
	}
	e.Add("b")
	if e.Len() != 2 {
		t.Errorf("Expected 2 values, got %d", e.Len())
	}
	if e.Contains("c") {
		t.Error("Unexpected value c")
	}
}
