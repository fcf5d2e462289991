package cmd

import "testing"

func TestMaskToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{token: "", expected: ""},
		{token: "abc", expected: "***"},
		{token: "abcd", expected: "****"},
		{token: "secret-token-1234", expected: "*************1234"},
	}

	for _, tt := range tests {
		if got := maskToken(tt.token); got != tt.expected {
			t.Errorf("maskToken(%q) = %q, expected %q", tt.token, got, tt.expected)
		}
	}
}
