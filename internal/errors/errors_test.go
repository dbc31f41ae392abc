package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNewRegisteredCode(t *testing.T) {
	err := New(ErrDuplicateKey)
	if err.Code != ErrDuplicateKey {
		t.Errorf("Code = %q, want %q", err.Code, ErrDuplicateKey)
	}
	if err.Category != CategoryReconcile {
		t.Errorf("Category = %q, want %q", err.Category, CategoryReconcile)
	}
	if err.Message == "" || err.DocURL == "" {
		t.Error("registered code should carry message and doc URL")
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("T999")
	if err.Code != "T999" {
		t.Errorf("Code = %q, want T999", err.Code)
	}
	if err.Message != "Unknown error" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestErrorString(t *testing.T) {
	err := New(ErrInternal)
	if got := err.Error(); !strings.HasPrefix(got, "T001: ") {
		t.Errorf("Error() = %q, want T001 prefix", got)
	}

	noCode := Newf(CategoryRuntime, "boom %d", 7)
	if got := noCode.Error(); got != "boom 7" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrapPreservesInnermostCode(t *testing.T) {
	inner := stderrors.New("socket closed")
	first := Wrap(inner, ErrSessionClosed, "")
	second := Wrap(first, ErrInternal, "outer layer")

	te, ok := second.(*TideError)
	if !ok {
		t.Fatalf("Wrap returned %T", second)
	}
	if te.Code != ErrSessionClosed {
		t.Errorf("Code = %q, want innermost %q", te.Code, ErrSessionClosed)
	}
	if !stderrors.Is(second, inner) {
		t.Error("errors.Is should reach the wrapped error")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, ErrInternal, "x") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New(ErrFrameTooLarge).WrapErr(stderrors.New("got 9MB"))
	got := err.FormatCompact()
	if !strings.Contains(got, "T041") || !strings.Contains(got, "got 9MB") {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFormatIncludesHint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New(ErrRecursiveFlush).WithSuggestion("add AllowRecurse or move the write")
	got := err.Format()
	if !strings.Contains(got, "Hint: add AllowRecurse") {
		t.Errorf("Format() missing hint:\n%s", got)
	}
	if !strings.Contains(got, "Learn more:") {
		t.Errorf("Format() missing doc link:\n%s", got)
	}
}

func TestRegister(t *testing.T) {
	Register("T900", ErrorTemplate{Category: CategoryCLI, Message: "test only"})
	defer delete(registry, "T900")

	if err := New("T900"); err.Message != "test only" {
		t.Errorf("Message = %q", err.Message)
	}
	tmpl, ok := GetTemplate("T900")
	if !ok || tmpl.Category != CategoryCLI {
		t.Errorf("GetTemplate = %+v, %v", tmpl, ok)
	}
}
