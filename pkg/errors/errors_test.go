package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidDate, "unparseable date: %s", "nope"),
			want: "INVALID_DATE: unparseable date: nope",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeInvalidFrontMatter, stderrors.New("yaml: bad"), "parse %s", "post.md"),
			want: "INVALID_FRONT_MATTER: parse post.md: yaml: bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeReservedTag, "tag %q collides with the main lane", "Main")

	if !Is(err, ErrCodeReservedTag) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeInvalidDate) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeReservedTag) {
		t.Error("Is() should not match plain errors")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeFileNotFound, "no such post")
	outer := fmt.Errorf("load posts: %w", inner)

	if !Is(outer, ErrCodeFileNotFound) {
		t.Error("Is() should unwrap fmt.Errorf chains")
	}
	if GetCode(outer) != ErrCodeFileNotFound {
		t.Errorf("GetCode() = %q, want %q", GetCode(outer), ErrCodeFileNotFound)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrap(ErrCodeInternal, cause, "something broke")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "structured error drops code prefix",
			err:  New(ErrCodeDuplicateSlug, "duplicate slug: welcome"),
			want: "duplicate slug: welcome",
		},
		{
			name: "plain error passes through",
			err:  stderrors.New("plain failure"),
			want: "plain failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetCodeOnPlainError(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}
