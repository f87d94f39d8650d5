package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBannedTitle(t *testing.T) {
	tests := []struct {
		name   string
		banned bool
	}{
		{"Proton Experimental", true},
		{"Proton 8.0", true},
		{"Proton", true},
		{"Steam Linux Runtime 3.0 (sniper)", true},
		{"Steam Linux Runtime - Soldier", true},
		{"Steamworks Common Redistributables", true},
		{"ELDEN RING", false},
		{"Pro ton", false},
		{"proton", false},
		{"Steam Linux", false},
		{"Portal 2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := tt.name
			assert.Equal(t, tt.banned, IsBannedTitle(&name))
		})
	}
}

func TestIsBannedTitleNil(t *testing.T) {
	assert.False(t, IsBannedTitle(nil))
}
