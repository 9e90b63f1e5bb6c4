package nlp_test

import (
	"testing"
	"time"
)

func TestBuildDraft(t *testing.T) {
	r := mustResolver(t, "UTC")
	ref := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)

	t.Run("Dentist scenario", func(t *testing.T) {
		draft, ok := r.BuildDraft("Dentist tomorrow 11am 1h at Altavista", ref)
		if !ok {
			t.Fatal("expected a draft")
		}
		if draft.Title != "Dentist" {
			t.Errorf("title = %q, want Dentist", draft.Title)
		}
		wantStart := time.Date(2025, 1, 11, 11, 0, 0, 0, time.UTC)
		if !draft.Start.Equal(wantStart) {
			t.Errorf("start = %v, want %v", draft.Start, wantStart)
		}
		if draft.DurationMinutes != 60 {
			t.Errorf("duration = %d, want 60", draft.DurationMinutes)
		}
		if draft.Location != "Altavista" {
			t.Errorf("location = %q, want Altavista", draft.Location)
		}
		if !draft.End().Equal(wantStart.Add(time.Hour)) {
			t.Errorf("end = %v, want start+1h", draft.End())
		}
	})

	t.Run("Lunch scenario", func(t *testing.T) {
		draft, ok := r.BuildDraft("Lunch, 5/9 14:00, 90m, @Roma", ref)
		if !ok {
			t.Fatal("expected a draft")
		}
		if draft.Title != "Lunch" {
			t.Errorf("title = %q, want Lunch", draft.Title)
		}
		wantStart := time.Date(2025, 9, 5, 14, 0, 0, 0, time.UTC)
		if !draft.Start.Equal(wantStart) {
			t.Errorf("start = %v, want %v", draft.Start, wantStart)
		}
		if draft.DurationMinutes != 90 {
			t.Errorf("duration = %d, want 90", draft.DurationMinutes)
		}
		if draft.Location != "Roma" {
			t.Errorf("location = %q, want Roma", draft.Location)
		}
	})

	t.Run("No temporal expression", func(t *testing.T) {
		if _, ok := r.BuildDraft("hola, ¿cómo estás?", ref); ok {
			t.Error("expected no draft for non-temporal text")
		}
	})
}

func TestEventDraftSetEnd(t *testing.T) {
	r := mustResolver(t, "UTC")
	ref := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)

	draft, ok := r.BuildDraft("Dentista mañana 11:00", ref)
	if !ok {
		t.Fatal("expected a draft")
	}

	draft.SetEnd(draft.Start.Add(45 * time.Minute))
	if draft.DurationMinutes != 45 {
		t.Errorf("duration = %d, want 45", draft.DurationMinutes)
	}

	// explicit end before start floors at one minute
	draft.SetEnd(draft.Start.Add(-time.Hour))
	if draft.DurationMinutes != 1 {
		t.Errorf("duration = %d, want 1", draft.DurationMinutes)
	}
}
