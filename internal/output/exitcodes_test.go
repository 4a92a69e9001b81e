package output

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestExitError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ExitError
		wantCode int
	}{
		{"user error", NewUserError("specify a query"), ExitUserError},
		{"system error", NewSystemError("write failed"), ExitSystemError},
		{"data error", NewDataError("duplicate codes"), ExitDataError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Error() != tt.err.Message {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.err.Message)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	cause := fs.ErrPermission
	tests := []*ExitError{
		NewSystemErrorWithCause("read failed", cause),
		NewDataErrorWithCause("bad dataset", cause),
		NewUserErrorWithCause("bad query", cause),
	}
	for _, err := range tests {
		if !errors.Is(err, cause) {
			t.Errorf("%q should unwrap to its cause", err.Message)
		}
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("x"), ExitUserError},
		{"system", NewSystemError("x"), ExitSystemError},
		{"wrapped data error", fmt.Errorf("loading: %w", NewDataError("x")), ExitDataError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
