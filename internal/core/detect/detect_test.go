package detect

import (
	"testing"

	"reportsmith/internal/core/registry"
)

func reg(t *testing.T, specs ...registry.Spec) *registry.Registry {
	t.Helper()
	r, err := registry.New(specs)
	if err != nil {
		t.Fatalf("registry.New: %v", err)
	}
	return r
}

func TestScoreCountsCumulativeHits(t *testing.T) {
	t.Parallel()

	r := reg(t,
		registry.Spec{ID: "lab", DisplayName: "Lab Report", Keywords: []string{"hemoglobin", "glucose"}},
		registry.Spec{ID: "xray", DisplayName: "X-Ray", Keywords: []string{"radiograph"}},
	)

	out := Score(r, Input{Markdown: "Patient glucose 95, hemoglobin 13.2, glucose retest pending"})

	best, ok := out.Best()
	if !ok {
		t.Fatal("expected a unique winner")
	}
	if best.ID != "lab" || best.Score != 3 {
		t.Fatalf("best = %q score %d, want lab score 3", best.ID, best.Score)
	}
	if len(best.MatchedKeywords) != 2 {
		t.Fatalf("matched keywords = %v, want both", best.MatchedKeywords)
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	t.Parallel()

	r := reg(t, registry.Spec{ID: "bal", DisplayName: "Ballistic", Keywords: []string{"Muzzle Velocity"}})

	out := Score(r, Input{Markdown: "MUZZLE VELOCITY: 820 m/s"})
	best, ok := out.Best()
	if !ok || best.Score != 1 {
		t.Fatalf("best = %+v ok=%v, want score 1", best, ok)
	}
}

func TestOverlappingKeywordsDoubleCount(t *testing.T) {
	t.Parallel()

	// "test" is a substring of "bump test"; both count independently
	r := reg(t, registry.Spec{ID: "bump", DisplayName: "Bump", Keywords: []string{"bump test", "test"}})

	out := Score(r, Input{Markdown: "bump test"})
	best, _ := out.Best()
	if best.Score != 2 {
		t.Fatalf("score = %d, want 2 (keyword overlap is not deduplicated)", best.Score)
	}
}

func TestFilenameFallbackScoresOne(t *testing.T) {
	t.Parallel()

	r := reg(t, registry.Spec{ID: "vib", DisplayName: "Vibration", Keywords: []string{"vibration"}})

	out := Score(r, Input{Markdown: "no relevant content", Filename: "Vibration_Run_12.pdf"})
	best, ok := out.Best()
	if !ok || best.Score != 1 {
		t.Fatalf("best = %+v ok=%v, want filename hit with score 1", best, ok)
	}

	// a text hit suppresses the filename bonus for the same keyword
	out = Score(r, Input{Markdown: "vibration vibration", Filename: "vibration.pdf"})
	best, _ = out.Best()
	if best.Score != 2 {
		t.Fatalf("score = %d, want 2 (no extra filename point)", best.Score)
	}
}

func TestNoMatch(t *testing.T) {
	t.Parallel()

	r := reg(t, registry.Spec{ID: "a", DisplayName: "A", Keywords: []string{"foo"}})

	out := Score(r, Input{Markdown: "nothing here"})
	if !out.NoMatch() {
		t.Fatal("expected no match")
	}
	if _, ok := out.Best(); ok {
		t.Fatal("Best must report no winner")
	}

	out = Score(r, Input{})
	if !out.NoMatch() {
		t.Fatal("empty text must be a no-match")
	}
}

func TestEmptyRegistryNoMatch(t *testing.T) {
	t.Parallel()

	r := reg(t)
	out := Score(r, Input{Markdown: "anything"})
	if !out.NoMatch() {
		t.Fatal("empty registry must be a no-match")
	}
}

func TestTieKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	r := reg(t,
		registry.Spec{ID: "b", DisplayName: "B", Keywords: []string{"foo"}},
		registry.Spec{ID: "a", DisplayName: "A", Keywords: []string{"foo"}},
	)

	out := Score(r, Input{Markdown: "foo"})
	if !out.Tied() {
		t.Fatal("expected a tie")
	}
	top := out.Top()
	if len(top) != 2 || top[0].ID != "b" || top[1].ID != "a" {
		t.Fatalf("top = %+v, want [b a] in insertion order", top)
	}
	if _, ok := out.Best(); ok {
		t.Fatal("Best must report no winner on a tie")
	}
}

func TestZeroKeywordSpecNeverScores(t *testing.T) {
	t.Parallel()

	r := reg(t,
		registry.Spec{ID: "silent", DisplayName: "Silent"},
		registry.Spec{ID: "loud", DisplayName: "Loud", Keywords: []string{"boom"}},
	)

	out := Score(r, Input{Markdown: "boom boom"})
	best, ok := out.Best()
	if !ok || best.ID != "loud" {
		t.Fatalf("best = %+v, want loud", best)
	}
	// zero scorers are still present in the full candidate list
	if len(out.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(out.Candidates))
	}
}

func TestFoldHandlesFullwidth(t *testing.T) {
	t.Parallel()

	if got := fold("ＶＥＬＯＣＩＴＹ"); got != "velocity" {
		t.Fatalf("fold = %q, want velocity", got)
	}
}
