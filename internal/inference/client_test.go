package inference

import "testing"

func TestSignIsCorrect(t *testing.T) {
	tests := []struct {
		name       string
		expected   string
		predicted  string
		confidence float64
		want       bool
	}{
		{"default threshold met", "A", "A", 60, true},
		{"default threshold missed", "A", "A", 59.9, false},
		{"label mismatch beats high confidence", "A", "B", 99, false},
		{"case insensitive match", "a", "A", 80, true},
		{"hard letter needs more confidence", "J", "J", 70, false},
		{"hard letter threshold met", "J", "J", 75, true},
		{"medium letter threshold", "G", "G", 70, true},
		{"lower threshold letter", "P", "P", 65, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &Result{Predicted: tt.predicted, Confidence: tt.confidence}
			if got := SignIsCorrect(tt.expected, result); got != tt.want {
				t.Errorf("SignIsCorrect(%q, %q@%.1f) = %v, want %v",
					tt.expected, tt.predicted, tt.confidence, got, tt.want)
			}
		})
	}
}

func TestWordIsCorrect(t *testing.T) {
	if !WordIsCorrect("Hello", &Result{Predicted: "hello", Confidence: 0}) {
		t.Error("word match should ignore case and confidence")
	}
	if WordIsCorrect("Hello", &Result{Predicted: "Goodbye", Confidence: 100}) {
		t.Error("mismatched word should not be correct")
	}
}
