package handler

import (
	"errors"
	"reflect"
	"testing"

	"github.com/signadot/laaos/ir"
)

type color int

type mood string

func TestRegistryDuplicates(t *testing.T) {
	reg := NewRegistry(false)
	if err := reg.Register(WeakEnum[color]("Color")); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(WeakEnum[color]("Color")); !errors.Is(err, ErrDuplicateHandler) {
		t.Errorf("re-registering the same type: got %v, want ErrDuplicateHandler", err)
	}
	if err := reg.Register(StrEnum[mood]("Color")); !errors.Is(err, ErrDuplicateHandler) {
		t.Errorf("re-registering the same name: got %v, want ErrDuplicateHandler", err)
	}

	over := NewRegistry(true)
	if err := over.Register(WeakEnum[color]("Color")); err != nil {
		t.Fatal(err)
	}
	if err := over.Register(WeakEnum[color]("Paint")); err != nil {
		t.Fatalf("override registration failed: %v", err)
	}
	h, ok := over.ForType(reflect.TypeOf(color(0)))
	if !ok || h.Name() != "Paint" {
		t.Errorf("override did not replace the handler: %v", h)
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry(false)
	if err := reg.Register(WeakEnum[color]("Color")); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(StrEnum[mood]("Mood")); err != nil {
		t.Fatal(err)
	}
	if _, ok := reg.ForType(reflect.TypeOf(color(1))); !ok {
		t.Error("ForType missed a registered type")
	}
	// exact type identity: underlying int does not match
	if _, ok := reg.ForType(reflect.TypeOf(1)); ok {
		t.Error("ForType matched an unregistered type")
	}
	if _, ok := reg.ForName("Color"); !ok {
		t.Error("ForName missed a registered name")
	}
	if hs := reg.Handlers(); len(hs) != 2 {
		t.Errorf("Handlers() = %d entries, want 2", len(hs))
	}
}

func TestWeakEnum(t *testing.T) {
	h := WeakEnum[color]("Color")
	n, err := h.Encode(color(2))
	if err != nil {
		t.Fatal(err)
	}
	lit, err := ir.ScalarLiteral(n)
	if err != nil {
		t.Fatal(err)
	}
	if lit != "Color(2)" {
		t.Errorf("encoded literal = %s, want Color(2)", lit)
	}
	v, err := h.Decode([]*ir.Node{ir.FromInt(2)})
	if err != nil {
		t.Fatal(err)
	}
	if v != color(2) {
		t.Errorf("decoded %v (%T), want color(2)", v, v)
	}
	if _, err := h.Decode(nil); err == nil {
		t.Error("decode with no args did not fail")
	}
	if _, err := h.Encode("not a color"); err == nil {
		t.Error("encode of foreign type did not fail")
	}
}

func TestStrEnum(t *testing.T) {
	h := StrEnum[mood]("Mood")
	n, err := h.Encode(mood("happy"))
	if err != nil {
		t.Fatal(err)
	}
	lit, err := ir.ScalarLiteral(n)
	if err != nil {
		t.Fatal(err)
	}
	if lit != "'happy'" {
		t.Errorf("encoded literal = %s, want 'happy'", lit)
	}
	v, err := h.Decode([]*ir.Node{ir.FromString("happy")})
	if err != nil {
		t.Fatal(err)
	}
	if v != mood("happy") {
		t.Errorf("decoded %v (%T), want mood(happy)", v, v)
	}
}
