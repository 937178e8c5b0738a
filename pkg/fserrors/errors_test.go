package fserrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessagePreserved(t *testing.T) {
	err := NewFileNotFound("no such file")
	if err.Message != "no such file" {
		t.Errorf("Message = %q, want %q", err.Message, "no such file")
	}
	if got := err.Error(); got != "FileNotFound: no such file" {
		t.Errorf("Error() = %q", got)
	}
}

func TestGenericErrorFormatting(t *testing.T) {
	plain := NewGeneric("something odd happened")
	if got := plain.Error(); got != "something odd happened" {
		t.Errorf("Error() = %q", got)
	}

	coded := NewGenericWithCode("QuotaExceeded", "over quota")
	if got := coded.Error(); got != "QuotaExceeded: over quota" {
		t.Errorf("Error() = %q", got)
	}
	if coded.Code != "QuotaExceeded" || coded.Message != "over quota" {
		t.Errorf("code/message lost: %+v", coded)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindFileExists, "FileExists"},
		{KindFileNotFound, "FileNotFound"},
		{KindFileNotADirectory, "FileNotADirectory"},
		{KindFileIsADirectory, "FileIsADirectory"},
		{KindNoPermissions, "NoPermissions"},
		{KindUnavailable, "Unavailable"},
		{KindGeneric, "Generic"},
		{Kind(42), "Kind(42)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		err   error
		check func(error) bool
		want  bool
	}{
		{NewFileExists("x"), IsFileExists, true},
		{NewFileNotFound("x"), IsFileNotFound, true},
		{NewFileNotADirectory("x"), IsFileNotADirectory, true},
		{NewFileIsADirectory("x"), IsFileIsADirectory, true},
		{NewNoPermissions("x"), IsNoPermissions, true},
		{NewUnavailable("x"), IsUnavailable, true},
		{NewFileNotFound("x"), IsFileExists, false},
		{errors.New("plain"), IsFileNotFound, false},
		{nil, IsUnavailable, false},
	}
	for i, tt := range tests {
		if got := tt.check(tt.err); got != tt.want {
			t.Errorf("case %d: predicate = %v, want %v (err: %v)", i, got, tt.want, tt.err)
		}
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("write %q: %w", "/a", NewNoPermissions("read-only scheme"))
	if !IsNoPermissions(wrapped) {
		t.Error("IsNoPermissions should unwrap")
	}
	if IsFileNotFound(wrapped) {
		t.Error("wrong kind matched after unwrap")
	}
}
