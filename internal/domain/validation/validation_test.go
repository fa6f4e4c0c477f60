package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"jobswipe/internal/pkg/optional"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Name   string              `json:"name" validate:"required,max=6"`
	Link   *string             `json:"link" validate:"omitempty,max=2048,httpurl"`
	Tags   []string            `json:"tags" validate:"max=2,dive,required,max=3"`
	Salary optional.Value[int] `json:"salary" validate:"omitempty,min=0,max=100"`
}

type band struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

func init() {
	RegisterStructRule(func(sl validator.StructLevel) {
		b := sl.Current().Interface().(band)
		if b.Low > b.High {
			sl.ReportError(b.High, "high", "High", "gtefield", "low")
		}
	}, band{})
}

func strp(s string) *string { return &s }

func TestErrors_EmptyIsNil(t *testing.T) {
	if err := (Errors{}).Err(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestErrors_KeepsFirstMessage(t *testing.T) {
	e := Errors{}
	e.Add("title", "first")
	e.Add("title", "second")
	fields, ok := As(fmt.Errorf("wrap: %w", e.Err()))
	if !ok {
		t.Fatalf("expected validation error through wrap")
	}
	if fields["title"] != "first" {
		t.Fatalf("expected first message, got %q", fields["title"])
	}
}

func TestStruct_Valid(t *testing.T) {
	s := sample{Name: "Москва", Link: strp("https://example.com/cv"), Tags: []string{"Go"}, Salary: optional.Of(50)}
	if err := Struct(s); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestStruct_FieldsUseJSONNames(t *testing.T) {
	fields, ok := As(Struct(sample{Name: "Москва!", Salary: optional.Of(101)}))
	if !ok {
		t.Fatalf("expected validation error")
	}
	if fields["name"] != "must be at most 6 characters" {
		t.Fatalf("unexpected name message %q", fields["name"])
	}
	if fields["salary"] == "" {
		t.Fatalf("expected salary error, got %v", fields)
	}
}

func TestStruct_LinkRules(t *testing.T) {
	cases := map[string]bool{
		"":                       true,
		"https://example.com/cv": true,
		"http://example.com":     true,
		"ftp://example.com":      false,
		"example.com":            false,
		"https://" + strings.Repeat("a", MaxURLLen): false,
	}
	for in, ok := range cases {
		err := Struct(sample{Name: "a", Link: strp(in)})
		fields, _ := As(err)
		if got := fields["link"] == ""; got != ok {
			t.Errorf("link %q ok=%v, want %v (%v)", in, got, ok, fields)
		}
	}
}

func TestStruct_DiveErrorsLandOnCollection(t *testing.T) {
	fields, ok := As(Struct(sample{Name: "a", Tags: []string{"Go", ""}}))
	if !ok || fields["tags"] != "must not contain empty items" {
		t.Fatalf("expected empty item error on tags, got %v", fields)
	}

	fields, _ = As(Struct(sample{Name: "a", Tags: []string{"Go", "SQL", "C"}}))
	if fields["tags"] != "must contain at most 2 items" {
		t.Fatalf("expected item count error, got %v", fields)
	}

	fields, _ = As(Struct(sample{Name: "a", Tags: []string{"Rust"}}))
	if fields["tags"] != "items must be at most 3 characters" {
		t.Fatalf("expected item length error, got %v", fields)
	}
}

func TestStruct_AbsentAndNullOptionalSkipped(t *testing.T) {
	if err := Struct(sample{Name: "a", Salary: optional.Null[int]()}); err != nil {
		t.Fatalf("null must skip range checks, got %v", err)
	}
	if err := Struct(sample{Name: "a"}); err != nil {
		t.Fatalf("absent must skip range checks, got %v", err)
	}
}

func TestStruct_StructRule(t *testing.T) {
	fields, ok := As(Struct(band{Low: 5, High: 1}))
	if !ok || fields["high"] != "must be greater than or equal to low" {
		t.Fatalf("expected band error on high, got %v", fields)
	}
	if err := Struct(band{Low: 1, High: 1}); err != nil {
		t.Fatalf("equal bounds must pass, got %v", err)
	}
}

func TestStructValidator_Pointer(t *testing.T) {
	if _, ok := As((StructValidator{}).Validate(&sample{})); !ok {
		t.Fatalf("expected validation error for empty name")
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Go ", "Go", "", "SQL", "go"})
	if len(got) != 3 || got[0] != "Go" || got[1] != "SQL" || got[2] != "go" {
		t.Fatalf("unexpected tags %v", got)
	}
}

func TestAs_NotValidation(t *testing.T) {
	if _, ok := As(errors.New("x")); ok {
		t.Fatalf("expected non-validation error")
	}
}
