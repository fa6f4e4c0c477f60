package rowcodec

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type sampleRow struct {
	ID        uuid.UUID  `mapstructure:"id"`
	OwnerID   *uuid.UUID `mapstructure:"owner_id"`
	Title     string     `mapstructure:"title"`
	Amount    *int       `mapstructure:"amount"`
	Tags      []string   `mapstructure:"tags"`
	CreatedAt time.Time  `mapstructure:"created_at"`
}

var sampleSchema = []byte(`{
	"type": "object",
	"required": ["id", "title", "created_at"],
	"properties": {
		"id": {"type": "string", "pattern": "^[0-9a-fA-F-]{36}$"},
		"owner_id": {"type": ["string", "null"]},
		"title": {"type": "string"},
		"amount": {"type": ["integer", "null"]},
		"tags": {"type": "array", "items": {"type": "string"}},
		"created_at": {"type": "string"}
	}
}`)

func TestCodec_DecodeValidRow(t *testing.T) {
	c := MustNew[sampleRow]("sample", sampleSchema)
	id := uuid.New()
	raw := []byte(`{"id":"` + id.String() + `","owner_id":null,"title":"Go","amount":150000,"tags":["a","b"],"created_at":"2026-03-01T12:00:00.123456+00:00","extra":1}`)

	row, err := c.Decode(context.Background(), raw)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if row.ID != id {
		t.Fatalf("unexpected id %s", row.ID)
	}
	if row.OwnerID != nil {
		t.Fatalf("expected nil owner")
	}
	if row.Amount == nil || *row.Amount != 150000 {
		t.Fatalf("unexpected amount %v", row.Amount)
	}
	if len(row.Tags) != 2 {
		t.Fatalf("unexpected tags %v", row.Tags)
	}
	if row.CreatedAt.Year() != 2026 {
		t.Fatalf("unexpected created_at %s", row.CreatedAt)
	}
}

func TestCodec_RejectsMissingField(t *testing.T) {
	c := MustNew[sampleRow]("sample", sampleSchema)
	_, err := c.Decode(context.Background(), []byte(`{"id":"`+uuid.NewString()+`","created_at":"2026-03-01T12:00:00Z"}`))

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if len(de.Problems) == 0 {
		t.Fatalf("expected schema problems")
	}
}

func TestCodec_RejectsWrongType(t *testing.T) {
	c := MustNew[sampleRow]("sample", sampleSchema)
	_, err := c.Decode(context.Background(), []byte(`{"id":"`+uuid.NewString()+`","title":5,"created_at":"2026-03-01T12:00:00Z"}`))

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestCodec_RejectsBadUUID(t *testing.T) {
	c := MustNew[sampleRow]("sample", []byte(`{"type":"object"}`))
	_, err := c.Decode(context.Background(), []byte(`{"id":"not-a-uuid","title":"x","created_at":"2026-03-01T12:00:00Z"}`))

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestNew_InvalidSchema(t *testing.T) {
	if _, err := New[sampleRow]("bad", []byte(`{`)); err == nil {
		t.Fatalf("expected compile error")
	}
}
