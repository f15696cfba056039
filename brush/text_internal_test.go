// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package brush

import "testing"

func TestVisualOrder(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain latin", "hello", "hello"},
		{"empty", "", ""},
		{"hebrew reversed", "שלום", "םולש"},
		{"mixed keeps latin run", "ab של", "ab לש"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := visualOrder(tt.in); got != tt.want {
				t.Errorf("visualOrder(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
