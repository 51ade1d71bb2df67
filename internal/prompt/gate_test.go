package prompt

import "testing"

func TestIsAgricultureRelated(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"How do I improve soil fertility?", true},
		{"When should I irrigate my paddy field?", true},
		{"what is the NDVI of my land", true},
		{"Best crop rotation for wheat and maize", true},
		{"Will the monsoon be late this year?", true},
		{"Who won the football world cup?", false},
		{"Write me a poem about the sea", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsAgricultureRelated(tt.query); got != tt.want {
			t.Errorf("IsAgricultureRelated(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestIsGreeting(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"hi", true},
		{"Hello!", true},
		{"Hey there", true},
		{"namaste", true},
		{"Greetings, friend", true},
		// "this" contains "hi" but is not a greeting; whole words only.
		{"this is my field", false},
		{"hello I have a long question about my rice paddy and its yield", false},
		{"", false},
		{"how do I grow rice", false},
	}
	for _, tt := range tests {
		if got := IsGreeting(tt.query); got != tt.want {
			t.Errorf("IsGreeting(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}
