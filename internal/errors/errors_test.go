package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNotFound, ExitUser),
			want: "not found",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("creating skill: %w", ErrAlreadyExists), ExitUser),
			want: "creating skill: already exists",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	tests := []struct {
		name       string
		err        *ExitError
		wantTarget error
		wantIs     bool
	}{
		{
			name:       "unwrap to sentinel error",
			err:        NewExitError(ErrNotFound, ExitUser),
			wantTarget: ErrNotFound,
			wantIs:     true,
		},
		{
			name:       "unwrap through Wrap",
			err:        NewExitError(Wrap(ErrInvalidInput, "parsing package"), ExitUser),
			wantTarget: ErrInvalidInput,
			wantIs:     true,
		},
		{
			name:       "no match for different sentinel",
			err:        NewExitError(ErrNotFound, ExitUser),
			wantTarget: ErrAlreadyExists,
			wantIs:     false,
		},
		{
			name:       "nil underlying error",
			err:        NewExitError(nil, ExitUser),
			wantTarget: ErrNotFound,
			wantIs:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.wantTarget); got != tt.wantIs {
				t.Errorf("errors.Is() = %v, want %v", got, tt.wantIs)
			}
		})
	}
}

func TestWrap_PreservesMessageChain(t *testing.T) {
	err := Wrapf(Wrap(ErrNotFound, "reading SKILL.md"), "skill %q", "deploy")
	want := `skill "deploy": reading SKILL.md: not found`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !Is(err, ErrNotFound) {
		t.Error("Is() should find ErrNotFound through Wrapf/Wrap")
	}
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestMark(t *testing.T) {
	base := New("exit status 128")
	marked := Mark(base, ErrExternalProcess)

	if marked.Error() != "exit status 128" {
		t.Errorf("Mark changed message: %q", marked.Error())
	}
	if !Is(marked, ErrExternalProcess) {
		t.Error("Is() should match the mark")
	}
	if Is(marked, ErrNotFound) {
		t.Error("Is() should not match an unrelated sentinel")
	}
}

func TestWithDetail(t *testing.T) {
	err := WithDetail(Wrap(ErrExternalProcess, "git clone"), "fatal: repository not found")

	details := Details(err)
	if len(details) != 1 || details[0] != "fatal: repository not found" {
		t.Errorf("Details() = %v", details)
	}
	if !Is(err, ErrExternalProcess) {
		t.Error("detail should not hide the sentinel")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"explicit exit error", NewSystemError(ErrNotFound, ""), ExitSystem},
		{"not found", Wrap(ErrNotFound, "get"), ExitUser},
		{"already exists", Wrap(ErrAlreadyExists, "create"), ExitUser},
		{"invalid input", ErrInvalidInput, ExitUser},
		{"unsupported body", ErrUnsupportedBody, ExitUser},
		{"external process", Wrap(ErrExternalProcess, "clone"), ExitSystem},
		{"plain error", errors.New("disk full"), ExitSystem},
		{"wrapped exit error", fmt.Errorf("running: %w", NewUserError(nil, "")), ExitUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"ErrNotFound", ErrNotFound, "not found"},
		{"ErrAlreadyExists", ErrAlreadyExists, "already exists"},
		{"ErrInvalidInput", ErrInvalidInput, "invalid input"},
		{"ErrExternalProcess", ErrExternalProcess, "external process failed"},
		{"ErrUnsupportedBody", ErrUnsupportedBody, "unsupported skill body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("%s.Error() = %q, want %q", tt.name, got, tt.wantMsg)
			}
		})
	}
}

func TestNewConstructors(t *testing.T) {
	t.Run("NewUserError", func(t *testing.T) {
		err := errors.New("user error")
		e := NewUserError(err, "check input")
		if e.Code != ExitUser {
			t.Errorf("Code = %d, want %d", e.Code, ExitUser)
		}
		if e.Suggestion != "check input" {
			t.Errorf("Suggestion = %q, want 'check input'", e.Suggestion)
		}
	})

	t.Run("NewSystemError", func(t *testing.T) {
		err := errors.New("system error")
		e := NewSystemError(err, "check logs")
		if e.Code != ExitSystem {
			t.Errorf("Code = %d, want %d", e.Code, ExitSystem)
		}
	})
}
