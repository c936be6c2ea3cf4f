package internal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/internal"
)

func TestControllerName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		segment string
		want    string
	}{
		{"users", "Users"},
		{"USERS", "Users"},
		{"user-panel", "UserPanel"},
		{"user_panel", "UserPanel"},
		{"user-2-panel", "User2Panel"},
		{"-users", "-users"},
		{"users-", "Users-"},
		{"user--panel", "User--panel"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, internal.ControllerName(tt.segment))
		})
	}
}

func TestActionName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		segment string
		want    string
	}{
		{"list", "list"},
		{"show-all", "showAll"},
		{"Show_All", "showAll"},
		{"edit-user-profile", "editUserProfile"},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, internal.ActionName(tt.segment))
		})
	}
}
