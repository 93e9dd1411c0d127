package verify

import "testing"

func TestParseScalarsAndNestedBlocks(t *testing.T) {
	input := `
date="1445.11.11"
countries={
	SWE={
		treasury=12.5
		stability=2
	}
}
`
	root, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	date, ok := root.String("date")
	if !ok || date != "1445.11.11" {
		t.Fatalf("expected date string, got %q ok=%v", date, ok)
	}
	countries, ok := root.Block("countries")
	if !ok {
		t.Fatalf("expected countries block")
	}
	swe, ok := countries.Block("SWE")
	if !ok {
		t.Fatalf("expected SWE block")
	}
	if got := swe.Float("treasury"); got != 12.5 {
		t.Fatalf("expected treasury 12.5, got %v", got)
	}
	if got := swe.Int("stability"); got != 2 {
		t.Fatalf("expected stability 2, got %v", got)
	}
}

func TestParseDuplicateKeysLastWins(t *testing.T) {
	input := `value=1
value=2`
	root, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := root.Int("value")
	if got != 2 {
		t.Fatalf("expected last-value-wins to give 2, got %v", got)
	}
}

func TestParseSkipsBareIdentifiers(t *testing.T) {
	input := `some_flag
value=3`
	root, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := root.Int("value"); got != 3 {
		t.Fatalf("expected value 3 despite leading bare identifier, got %v", got)
	}
}

func TestParseIgnoresComments(t *testing.T) {
	input := `# a comment
value=4 # trailing comment
`
	root, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := root.Int("value"); got != 4 {
		t.Fatalf("expected value 4, got %v", got)
	}
}

func TestParseUnterminatedBlockErrors(t *testing.T) {
	input := `countries={
	SWE={
`
	if _, err := Parse(input); err == nil {
		t.Fatalf("expected an error for an unterminated block")
	}
}
