package service

import (
	"context"
	"errors"
	"testing"

	"reportsmith/internal/core/registry"
	perr "reportsmith/internal/platform/errors"
	"reportsmith/internal/platform/testkit"
	"reportsmith/internal/services/api/convert/domain"
)

func fixedExtract(data map[string]any, err error) registry.ExtractFunc {
	return func(context.Context, string, registry.Settings) (map[string]any, error) {
		return data, err
	}
}

// captureExtract records the settings it was invoked with
type captureExtract struct {
	set   registry.Settings
	calls int
}

func (c *captureExtract) fn(_ context.Context, _ string, set registry.Settings) (map[string]any, error) {
	c.calls++
	c.set = set
	return map[string]any{"ok": true}, nil
}

func testRegistry(t *testing.T, specs ...registry.Spec) *registry.Registry {
	t.Helper()
	r, err := registry.New(specs)
	if err != nil {
		t.Fatalf("registry.New: %v", err)
	}
	return r
}

func TestConvertExplicitBypassesDetection(t *testing.T) {
	t.Parallel()

	cap := &captureExtract{}
	reg := testRegistry(t,
		registry.Spec{ID: "lab", DisplayName: "Lab", Keywords: []string{"glucose"}, Extract: cap.fn},
		registry.Spec{ID: "xray", DisplayName: "X-Ray", Keywords: []string{"radiograph"}, Extract: fixedExtract(nil, errors.New("wrong spec invoked"))},
	)
	s := New(reg, registry.Settings{BaseURL: "http://localhost:11434", Model: "gemma3:12b"})

	// the text matches xray's keyword; explicit selection must win anyway
	out, err := s.Convert(context.Background(), "radiograph of the chest", "lab", "", "")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if cap.calls != 1 {
		t.Fatalf("extract calls = %d, want exactly 1", cap.calls)
	}
	if out.Report == nil || out.Report.ID != "lab" {
		t.Fatalf("report = %+v, want lab", out.Report)
	}
	if out.Report.Score != nil || out.Report.MatchedKeywords != nil {
		t.Fatalf("explicit selection must carry no score or keywords, got %+v", out.Report)
	}
}

func TestConvertUnknownReportID(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, registry.Spec{ID: "lab", DisplayName: "Lab"})
	s := New(reg, registry.Settings{})

	_, err := s.Convert(context.Background(), "text", "nope", "", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("code = %v, want validation", perr.CodeOf(err))
	}
	testkit.MustContain(t, err.Error(), "nope")
}

func TestConvertAutoDetectCarriesScore(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t,
		registry.Spec{ID: "lab", DisplayName: "Lab Report", Keywords: []string{"hemoglobin", "glucose"}, Extract: fixedExtract(map[string]any{"glucose": 95.0}, nil)},
		registry.Spec{ID: "xray", DisplayName: "X-Ray", Keywords: []string{"radiograph"}, Extract: fixedExtract(nil, errors.New("wrong spec invoked"))},
	)
	s := New(reg, registry.Settings{})

	out, err := s.Convert(context.Background(), "Patient glucose 95, hemoglobin 13.2", "", "", "")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out.Report == nil || out.Report.ID != "lab" {
		t.Fatalf("report = %+v", out.Report)
	}
	if out.Report.Score == nil || *out.Report.Score != 2 {
		t.Fatalf("score = %v, want 2", out.Report.Score)
	}
	if len(out.Report.MatchedKeywords) != 2 {
		t.Fatalf("matched = %v", out.Report.MatchedKeywords)
	}
	if out.Data["glucose"] != 95.0 {
		t.Fatalf("data = %v", out.Data)
	}
}

func TestConvertConflictListsCandidatesInOrder(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t,
		registry.Spec{ID: "b", DisplayName: "B", Keywords: []string{"foo"}},
		registry.Spec{ID: "a", DisplayName: "A", Keywords: []string{"foo"}},
	)
	s := New(reg, registry.Settings{})

	_, err := s.Convert(context.Background(), "foo", "", "", "")
	if err == nil {
		t.Fatal("expected conflict")
	}
	if perr.CodeOf(err) != perr.ErrorCodeConflict {
		t.Fatalf("code = %v, want conflict", perr.CodeOf(err))
	}

	var e *perr.Error
	if !errors.As(err, &e) {
		t.Fatalf("not a structured error: %T", err)
	}
	details, ok := e.Details().(map[string]any)
	if !ok {
		t.Fatalf("details = %T, want map", e.Details())
	}
	cands, ok := details["candidates"].([]domain.Candidate)
	if !ok {
		t.Fatalf("candidates = %T", details["candidates"])
	}
	if len(cands) != 2 || cands[0].ID != "b" || cands[1].ID != "a" {
		t.Fatalf("candidates = %+v, want [b a] in registry order", cands)
	}
	if cands[0].Score != 1 || cands[0].Name != "B" {
		t.Fatalf("candidate[0] = %+v", cands[0])
	}
}

func TestConvertNoMatchAdvisory(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, registry.Spec{ID: "lab", DisplayName: "Lab", Keywords: []string{"glucose"}})
	s := New(reg, registry.Settings{})

	out, err := s.Convert(context.Background(), "nothing relevant here", "", "", "")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out.Report != nil || out.Data != nil {
		t.Fatalf("no-match must carry empty report and data, got %+v", out)
	}
	testkit.MustContain(t, out.Message, "report_id")
}

func TestConvertExtractionFailureWrapped(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t,
		registry.Spec{ID: "lab", DisplayName: "Lab", Keywords: []string{"glucose"}, Extract: fixedExtract(nil, errors.New("socket exploded"))},
	)
	s := New(reg, registry.Settings{})

	_, err := s.Convert(context.Background(), "glucose", "", "", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if perr.CodeOf(err) != perr.ErrorCodeExtraction {
		t.Fatalf("code = %v, want extraction", perr.CodeOf(err))
	}
	testkit.MustContain(t, err.Error(), "lab")
}

func TestConvertMissingExtractProcedure(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, registry.Spec{ID: "lab", DisplayName: "Lab", Keywords: []string{"glucose"}})
	s := New(reg, registry.Settings{})

	_, err := s.Convert(context.Background(), "glucose glucose", "", "", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if perr.CodeOf(err) != perr.ErrorCodeExtraction {
		t.Fatalf("code = %v", perr.CodeOf(err))
	}
}

func TestConvertModelOverride(t *testing.T) {
	t.Parallel()

	cap := &captureExtract{}
	reg := testRegistry(t, registry.Spec{ID: "lab", DisplayName: "Lab", Keywords: []string{"glucose"}, Extract: cap.fn})
	s := New(reg, registry.Settings{BaseURL: "http://localhost:11434", Model: "gemma3:12b"})

	if _, err := s.Convert(context.Background(), "glucose", "", "", "gpt-oss:latest"); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if cap.set.Model != "gpt-oss:latest" {
		t.Fatalf("model = %q, want override", cap.set.Model)
	}
	if cap.set.BaseURL != "http://localhost:11434" {
		t.Fatalf("base url = %q, want default preserved", cap.set.BaseURL)
	}
}

func TestConvertFilenameHintDetects(t *testing.T) {
	t.Parallel()

	cap := &captureExtract{}
	reg := testRegistry(t, registry.Spec{ID: "vib", DisplayName: "Vibration", Keywords: []string{"vibration"}, Extract: cap.fn})
	s := New(reg, registry.Settings{})

	out, err := s.Convert(context.Background(), "no matching words", "", "vibration_run.pdf", "")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out.Report == nil || out.Report.ID != "vib" {
		t.Fatalf("report = %+v, want vib via filename hint", out.Report)
	}
}
