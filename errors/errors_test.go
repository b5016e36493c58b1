package errors

import (
	"fmt"
	"testing"
)

func TestIs(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "outer")
	double := Wrap(wrapped, "outermost")

	if !ErrNotFound.Is(wrapped) {
		t.Fatal("wrapping must preserve the root error")
	}
	if !ErrNotFound.Is(double) {
		t.Fatal("matching must walk the whole cause chain")
	}
	if ErrDuplicate.Is(wrapped) {
		t.Fatal("must not match a different root error")
	}
	if ErrNotFound.Is(fmt.Errorf("plain")) {
		t.Fatal("must not match an unregistered error")
	}

	var nilErr *Error
	if !nilErr.Is(nil) {
		t.Fatal("nil matches nil")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "no error") != nil {
		t.Fatal("wrapping nil must return nil")
	}
}

func TestWrapMessage(t *testing.T) {
	err := Wrapf(ErrAmount, "balance %d", 5)
	want := "balance 5: insufficient amount"
	if got := err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("reusing an error code must panic")
		}
	}()
	Register(2, "conflicts with unauthorized")
}

func TestRecover(t *testing.T) {
	fail := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := fail()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %+v", err)
	}
}
