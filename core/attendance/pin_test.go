package attendance

import "testing"

func TestSanitizePIN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain digits", input: "0142", want: "0142"},
		{name: "formatting noise", input: " 01-42 ", want: "0142"},
		{name: "letters dropped", input: "a1b2c3d4", want: "1234"},
		{name: "truncated to pin length", input: "5550142042", want: "5550"},
		{name: "too short", input: "42", want: "42"},
		{name: "empty", input: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizePIN(tt.input); got != tt.want {
				t.Errorf("SanitizePIN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVerifySecret(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		candidate string
		want      bool
	}{
		{name: "exact match", secret: "0142", candidate: "0142", want: true},
		{name: "mismatch", secret: "0142", candidate: "9999", want: false},
		{name: "short candidate never matches", secret: "0142", candidate: "142", want: false},
		{name: "short stored secret is zero-padded", secret: "42", candidate: "0042", want: true},
		{name: "padding does not invent matches", secret: "42", candidate: "42", want: false},
		{name: "empty candidate", secret: "0142", candidate: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifySecret(tt.secret, tt.candidate); got != tt.want {
				t.Errorf("VerifySecret() = %v, want %v", got, tt.want)
			}
		})
	}
}
