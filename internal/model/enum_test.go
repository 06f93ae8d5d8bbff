package model

import "testing"

func TestPriorityFallback(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"", DefaultPriority},
		{"bogus", DefaultPriority},
		{"Срочно", PriorityUrgent},
		{"СРОЧНО", PriorityUrgent},
		{"срочно", PriorityUrgent},
		{"Важно", PriorityImportant},
		{"Желательно", PriorityNormal},
	}
	for _, tt := range tests {
		if got := PriorityFromDisplayName(tt.in); got != tt.want {
			t.Errorf("PriorityFromDisplayName(%q): got %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParsePriorityAcceptsConstantNames(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"URGENT", PriorityUrgent},
		{"urgent", PriorityUrgent},
		{"NORMAL", PriorityNormal},
		{"Важно", PriorityImportant},
		{"nonsense", DefaultPriority},
		{"", DefaultPriority},
	}
	for _, tt := range tests {
		if got := ParsePriority(tt.in); got != tt.want {
			t.Errorf("ParsePriority(%q): got %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestCategoryFallback(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"", DefaultCategory},
		{"bogus", DefaultCategory},
		{"Работа", CategoryWork},
		{"РАБОТА", CategoryWork},
		{"Дом", CategoryHome},
		{"УЧЁБА", CategoryStudy},
		{"Другое", CategoryOther},
	}
	for _, tt := range tests {
		if got := CategoryFromDisplayName(tt.in); got != tt.want {
			t.Errorf("CategoryFromDisplayName(%q): got %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPriorityMetadata(t *testing.T) {
	if PriorityUrgent.Color() != "#FF4444" {
		t.Errorf("urgent color: got %s", PriorityUrgent.Color())
	}
	if PriorityUrgent.IconName() != "urgent" {
		t.Errorf("urgent icon: got %s", PriorityUrgent.IconName())
	}
	if CategoryStudy.Color() != "#6200EA" {
		t.Errorf("study color: got %s", CategoryStudy.Color())
	}
}

func TestEnumCycling(t *testing.T) {
	p := PriorityUrgent
	seen := map[Priority]bool{}
	for i := 0; i < len(Priorities); i++ {
		seen[p] = true
		p = p.Next()
	}
	if p != PriorityUrgent {
		t.Errorf("priority cycle did not wrap: ended at %s", p)
	}
	if len(seen) != len(Priorities) {
		t.Errorf("priority cycle visited %d of %d values", len(seen), len(Priorities))
	}

	c := CategoryWork
	for i := 0; i < len(Categories); i++ {
		c = c.Next()
	}
	if c != CategoryWork {
		t.Errorf("category cycle did not wrap: ended at %s", c)
	}
}
