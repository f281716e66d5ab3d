package types

import (
	"testing"
)

func TestColumnTypeFromName(t *testing.T) {
	tests := []struct {
		name    string
		want    ColumnType
		wantErr bool
	}{
		{"INT", TypeInt, false},
		{"int", TypeInt, false},
		{"INTEGER", TypeInt, false},
		{"TEXT", TypeText, false},
		{"VARCHAR", TypeText, false},
		{"string", TypeText, false},
		{"FLOAT", TypeFloat, false},
		{"REAL", TypeFloat, false},
		{"DOUBLE", TypeFloat, false},
		{"BLOB", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ColumnTypeFromName(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ColumnTypeFromName(%q): expected error, got %v", tt.name, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ColumnTypeFromName(%q): unexpected error %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ColumnTypeFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name     string
		lit      Value
		declared ColumnType
		want     Value
		wantErr  bool
	}{
		{"int into int", NewInt(42), TypeInt, NewInt(42), false},
		{"float into int rejected", NewFloat(42.0), TypeInt, Value{}, true},
		{"text into int rejected", NewText("42"), TypeInt, Value{}, true},
		{"float into float", NewFloat(3.5), TypeFloat, NewFloat(3.5), false},
		{"int widens to float", NewInt(3), TypeFloat, NewFloat(3), false},
		{"text into float rejected", NewText("3.5"), TypeFloat, Value{}, true},
		{"text into text", NewText("alice"), TypeText, NewText("alice"), false},
		{"int into text rejected", NewInt(1), TypeText, Value{}, true},
		{"float into text rejected", NewFloat(1.5), TypeText, Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.lit, tt.declared)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal ints", NewInt(7), NewInt(7), true},
		{"unequal ints", NewInt(7), NewInt(8), false},
		{"equal texts", NewText("x"), NewText("x"), true},
		{"unequal texts", NewText("x"), NewText("y"), false},
		{"equal floats", NewFloat(1.5), NewFloat(1.5), true},
		{"int equals float numerically", NewInt(2), NewFloat(2.0), true},
		{"float equals int numerically", NewFloat(2.0), NewInt(2), true},
		{"int vs non-integral float", NewInt(2), NewFloat(2.5), false},
		{"int never equals text", NewInt(1), NewText("1"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{NewInt(42), "42"},
		{NewInt(-7), "-7"},
		{NewFloat(3.5), "3.5"},
		{NewText("alice"), "'alice'"},
		{NewText("O'Brien"), "'O''Brien'"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String(%#v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestValueDisplay(t *testing.T) {
	if got := NewText("O'Brien").Display(); got != "O'Brien" {
		t.Errorf("Display should not quote text, got %q", got)
	}
	if got := NewInt(5).Display(); got != "5" {
		t.Errorf("Display(5) = %q", got)
	}
}

func TestValueNative(t *testing.T) {
	if got := NewInt(5).Native(); got != int64(5) {
		t.Errorf("Native int = %#v", got)
	}
	if got := NewFloat(1.5).Native(); got != 1.5 {
		t.Errorf("Native float = %#v", got)
	}
	if got := NewText("a").Native(); got != "a" {
		t.Errorf("Native text = %#v", got)
	}
}

func TestSchemaPrimaryKey(t *testing.T) {
	s := Schema{Columns: []ColumnDef{
		{Name: "id", Type: TypeInt, PrimaryKey: true},
		{Name: "email", Type: TypeText, Unique: true},
		{Name: "name", Type: TypeText},
	}}

	pk, ok := s.PrimaryKey()
	if !ok || pk != "id" {
		t.Errorf("PrimaryKey = %q, %v", pk, ok)
	}
	unique := s.UniqueColumns()
	if len(unique) != 1 || unique[0] != "email" {
		t.Errorf("UniqueColumns = %v, want [email]", unique)
	}
	names := s.ColumnNames()
	if len(names) != 3 || names[0] != "id" || names[2] != "name" {
		t.Errorf("ColumnNames = %v", names)
	}
	if _, ok := s.Column("missing"); ok {
		t.Error("Column should report missing columns")
	}
}

func TestRowClone(t *testing.T) {
	r := Row{"id": NewInt(1), "name": NewText("alice")}
	cp := r.Clone()
	cp["name"] = NewText("bob")
	if r["name"] != NewText("alice") {
		t.Error("Clone should be independent of the original")
	}
}
