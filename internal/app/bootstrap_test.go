package app

import (
	"errors"
	"testing"

	"jobswipe/internal/repository/rowcodec"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestListenAddr(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"8080", ":8080", false},
		{" :9000 ", ":9000", false},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ListenAddr(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ListenAddr(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ListenAddr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRetryableStoreError(t *testing.T) {
	if retryableStoreError(&rowcodec.DecodeError{Codec: "vacancy_row", Err: errors.New("bad")}) {
		t.Fatalf("decode errors must not be retried")
	}
	if retryableStoreError(&pgconn.PgError{Code: "42501"}) {
		t.Fatalf("permission errors must not be retried")
	}
	if !retryableStoreError(errors.New("connection reset by peer")) {
		t.Fatalf("connection errors should be retried")
	}
}
