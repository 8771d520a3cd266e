package dedup

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("삼성전자, 2분기 실적 발표!")

	expected := []string{"삼성전자", "2분기", "실적", "발표"}
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d (%v)", len(expected), len(tokens), tokens)
	}
	for _, token := range expected {
		if _, ok := tokens[token]; !ok {
			t.Errorf("Expected token '%s' to be present", token)
		}
	}
}

func TestTokenize_DropsSingleRuneTokens(t *testing.T) {
	tokens := Tokenize("a 美 실적 b")

	if _, ok := tokens["a"]; ok {
		t.Error("Single-rune Latin token should be discarded")
	}
	if _, ok := tokens["美"]; ok {
		t.Error("Single-rune CJK token should be discarded")
	}
	if _, ok := tokens["실적"]; !ok {
		t.Error("Multi-rune token should be kept")
	}
}

func TestTokenize_CaseFolds(t *testing.T) {
	a := Tokenize("Samsung Electronics")
	b := Tokenize("SAMSUNG ELECTRONICS")

	if Jaccard(a, b) != 1.0 {
		t.Errorf("Case variants should tokenize identically, similarity %f", Jaccard(a, b))
	}
}

func TestTokenize_StripsPunctuation(t *testing.T) {
	a := Tokenize("삼성전자 실적 발표")
	b := Tokenize("삼성전자, 실적 발표")

	if Jaccard(a, b) != 1.0 {
		t.Errorf("Punctuation should not affect tokens, similarity %f", Jaccard(a, b))
	}
}

func TestJaccard_Symmetry(t *testing.T) {
	a := Tokenize("삼성전자 실적 발표")
	b := Tokenize("삼성전자 신제품 공개 행사")

	if Jaccard(a, b) != Jaccard(b, a) {
		t.Errorf("Jaccard must be symmetric: %f != %f", Jaccard(a, b), Jaccard(b, a))
	}
}

func TestJaccard_Identity(t *testing.T) {
	a := Tokenize("삼성전자 실적 발표")

	if got := Jaccard(a, a); got != 1.0 {
		t.Errorf("Jaccard(A, A) must be 1 for non-empty A, got %f", got)
	}
}

func TestJaccard_BothEmpty(t *testing.T) {
	if got := Jaccard(map[string]struct{}{}, map[string]struct{}{}); got != 0 {
		t.Errorf("Jaccard(∅, ∅) must be 0, got %f", got)
	}
}

func TestJaccard_Disjoint(t *testing.T) {
	a := Tokenize("삼성전자 실적")
	b := Tokenize("한화생명 보험")

	if got := Jaccard(a, b); got != 0 {
		t.Errorf("Disjoint sets must score 0, got %f", got)
	}
}

func TestJaccard_PartialOverlap(t *testing.T) {
	a := map[string]struct{}{"aa": {}, "bb": {}, "cc": {}}
	b := map[string]struct{}{"bb": {}, "cc": {}, "dd": {}}

	// |A ∩ B| = 2, |A ∪ B| = 4
	if got := Jaccard(a, b); got != 0.5 {
		t.Errorf("Expected similarity 0.5, got %f", got)
	}
}
