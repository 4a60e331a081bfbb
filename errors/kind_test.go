package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"bad request", ErrEmptyContent, KindBadRequest},
		{"wrapped bad request", fmt.Errorf("send: %w", ErrNotGroup), KindBadRequest},
		{"unauthorized", ErrUnauthorized, KindUnauthorized},
		{"conflict", ErrDMExists, KindConflict},
		{"wrapped conflict", fmt.Errorf("invite: %w", ErrAlreadyInvited), KindConflict},
		{"not found", ErrUserNotFound, KindNotFound},
		{"storage failure", fmt.Errorf("badger: disk full"), KindInternal},
		{"nil", nil, KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}
