// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	t.Setenv(NoColor, "1")
	assert.False(t, detect(), "NO_COLOR disables color")

	t.Setenv(ForceColor, "1")
	assert.False(t, detect(), "NO_COLOR wins over FORCE_COLOR")

	t.Setenv(NoColor, "")
	assert.True(t, detect(), "FORCE_COLOR enables color when NO_COLOR is unset")
}

func TestColorize(t *testing.T) {
	orig := Enabled()
	defer SetEnabled(orig)

	tests := []struct {
		name    string
		enabled bool
		in      string
		codes   []Code
		want    string
	}{
		{
			name:    "disabled returns input",
			enabled: false,
			in:      "hello",
			codes:   []Code{FgRed},
			want:    "hello",
		},
		{
			name:    "single code",
			enabled: true,
			in:      "hello",
			codes:   []Code{FgRed},
			want:    "\033[31mhello\033[0m",
		},
		{
			name:    "multiple codes",
			enabled: true,
			in:      "hi",
			codes:   []Code{Bold, FgHiWhite},
			want:    "\033[1;97mhi\033[0m",
		},
		{
			name:    "no codes",
			enabled: true,
			in:      "plain",
			want:    "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetEnabled(tt.enabled)
			assert.Equal(t, tt.want, Colorize(tt.in, tt.codes...))
		})
	}
}
