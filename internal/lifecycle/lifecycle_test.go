package lifecycle

import (
	"testing"
	"time"

	"github.com/concrem/helpdesk/internal/model"
)

func sp(s string) *string { return &s }
func ip(n int) *int       { return &n }

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestApplyInProgressSetsStartedAt(t *testing.T) {
	patch := Apply(model.Ticket{Status: model.StatusAberto},
		model.TicketPatch{Status: sp(model.StatusEmAndamento)}, now)
	if patch.StartedAt == nil || *patch.StartedAt != "2024-03-10T12:00:00Z" {
		t.Fatalf("started_at = %v, want now", patch.StartedAt)
	}
	if patch.CompletedAt != nil || patch.DurationMinutes != nil {
		t.Fatalf("in-progress must not touch completion fields: %+v", patch)
	}
}

func TestApplyInProgressKeepsExistingStartedAt(t *testing.T) {
	existing := "2024-03-09T08:00:00Z"
	patch := Apply(model.Ticket{Status: model.StatusAberto, StartedAt: &existing},
		model.TicketPatch{Status: sp(model.StatusEmAndamento)}, now)
	if patch.StartedAt == nil || *patch.StartedAt != existing {
		t.Fatalf("started_at = %v, want existing %q", patch.StartedAt, existing)
	}
}

func TestApplyInProgressOverrideWins(t *testing.T) {
	existing := "2024-03-09T08:00:00Z"
	patch := Apply(model.Ticket{StartedAt: &existing},
		model.TicketPatch{Status: sp(model.StatusEmAndamento), StartedAt: sp("2024-03-10T09:30:00Z")}, now)
	if *patch.StartedAt != "2024-03-10T09:30:00Z" {
		t.Fatalf("override lost: %q", *patch.StartedAt)
	}
}

func TestApplyDoneComputesDuration(t *testing.T) {
	// Spec scenario: created 10:00, started 10:05, done 11:47 -> 102 min.
	started := "2024-01-01T10:05:00Z"
	tk := model.Ticket{
		Status:    model.StatusEmAndamento,
		StartedAt: &started,
		CreatedAt: "2024-01-01T10:00:00Z",
	}
	patch := Apply(tk, model.TicketPatch{
		Status:      sp(model.StatusConcluido),
		CompletedAt: sp("2024-01-01T11:47:00Z"),
	}, now)
	if patch.DurationMinutes == nil || *patch.DurationMinutes != 102 {
		t.Fatalf("duration_minutes = %v, want 102", patch.DurationMinutes)
	}
	if patch.DurationText == nil || *patch.DurationText != "1h 42min" {
		t.Fatalf("duration_text = %v, want %q", patch.DurationText, "1h 42min")
	}
	if *patch.StartedAt != started {
		t.Fatalf("started_at changed to %q", *patch.StartedAt)
	}
}

func TestApplyDoneBackfillsStartedAtFromCreation(t *testing.T) {
	tk := model.Ticket{Status: model.StatusAberto, CreatedAt: "2024-01-01T10:00:00Z"}
	patch := Apply(tk, model.TicketPatch{
		Status:      sp(model.StatusConcluido),
		CompletedAt: sp("2024-01-01T10:30:00Z"),
	}, now)
	if patch.StartedAt == nil || *patch.StartedAt != "2024-01-01T10:00:00Z" {
		t.Fatalf("started_at = %v, want creation time", patch.StartedAt)
	}
	if patch.DurationMinutes == nil || *patch.DurationMinutes != 30 {
		t.Fatalf("duration_minutes = %v, want 30", patch.DurationMinutes)
	}
}

func TestApplyDonePrefersDataOverCreatedAt(t *testing.T) {
	tk := model.Ticket{Data: "2024-01-01", CreatedAt: "2023-12-31T23:00:00Z"}
	patch := Apply(tk, model.TicketPatch{Status: sp(model.StatusConcluido)}, now)
	if patch.StartedAt == nil || *patch.StartedAt != "2024-01-01" {
		t.Fatalf("started_at = %v, want data fallback", patch.StartedAt)
	}
}

func TestApplyDoneWithNoTimestampsUsesNow(t *testing.T) {
	patch := Apply(model.Ticket{}, model.TicketPatch{Status: sp(model.StatusConcluido)}, now)
	want := "2024-03-10T12:00:00Z"
	if *patch.StartedAt != want || *patch.CompletedAt != want {
		t.Fatalf("got started=%q completed=%q, want both %q", *patch.StartedAt, *patch.CompletedAt, want)
	}
	if *patch.DurationMinutes != 0 || *patch.DurationText != "0 min" {
		t.Fatalf("zero-length service should read 0 min, got %d %q", *patch.DurationMinutes, *patch.DurationText)
	}
}

func TestApplyDoneDoesNotRecompute(t *testing.T) {
	started := "2024-01-01T10:00:00Z"
	completed := "2024-01-01T11:00:00Z"
	tk := model.Ticket{
		Status:          model.StatusConcluido,
		StartedAt:       &started,
		CompletedAt:     &completed,
		DurationMinutes: ip(60),
		DurationText:    sp("1h 0min"),
	}
	patch := Apply(tk, model.TicketPatch{Status: sp(model.StatusConcluido)}, now)
	if patch.DurationMinutes != nil || patch.DurationText != nil {
		t.Fatalf("second completion recomputed duration: %+v", patch)
	}
}

func TestApplyDoneLegacyTempoServicoBlocksComputation(t *testing.T) {
	tk := model.Ticket{TempoServico: sp("2h"), CreatedAt: "2024-01-01T10:00:00Z"}
	patch := Apply(tk, model.TicketPatch{Status: sp(model.StatusConcluido)}, now)
	if patch.DurationMinutes != nil || patch.DurationText != nil {
		t.Fatalf("tempo_servico should suppress computation: %+v", patch)
	}
}

func TestApplyDoneSuppliedDurationWins(t *testing.T) {
	patch := Apply(model.Ticket{}, model.TicketPatch{
		Status:          sp(model.StatusConcluido),
		DurationMinutes: ip(7),
	}, now)
	if *patch.DurationMinutes != 7 || patch.DurationText != nil {
		t.Fatalf("supplied duration must pass through untouched: %+v", patch)
	}
}

func TestApplyDoneMalformedTimestampsSkipDuration(t *testing.T) {
	bad := "not-a-date"
	tk := model.Ticket{StartedAt: &bad}
	patch := Apply(tk, model.TicketPatch{
		Status:      sp(model.StatusConcluido),
		CompletedAt: sp("2024-01-01T11:00:00Z"),
	}, now)
	if patch.DurationMinutes != nil || patch.DurationText != nil {
		t.Fatalf("malformed started_at must skip duration: %+v", patch)
	}
	if *patch.StartedAt != bad {
		t.Fatalf("started_at rewritten to %q", *patch.StartedAt)
	}
}

func TestApplyDoneNegativeIntervalClampsToZero(t *testing.T) {
	started := "2024-01-02T10:00:00Z"
	tk := model.Ticket{StartedAt: &started}
	patch := Apply(tk, model.TicketPatch{
		Status:      sp(model.StatusConcluido),
		CompletedAt: sp("2024-01-01T10:00:00Z"),
	}, now)
	if patch.DurationMinutes == nil || *patch.DurationMinutes != 0 {
		t.Fatalf("negative interval should clamp to 0, got %v", patch.DurationMinutes)
	}
}

func TestApplyOtherStatusOnlyChangesStatus(t *testing.T) {
	patch := Apply(model.Ticket{Status: model.StatusEmAndamento},
		model.TicketPatch{Status: sp(model.StatusAberto)}, now)
	if patch.StartedAt != nil || patch.CompletedAt != nil || patch.DurationMinutes != nil {
		t.Fatalf("reopening must not derive fields: %+v", patch)
	}
}

func TestApplyNoStatusNoop(t *testing.T) {
	patch := Apply(model.Ticket{}, model.TicketPatch{Titulo: sp("novo título")}, now)
	if patch.StartedAt != nil || patch.DurationMinutes != nil {
		t.Fatalf("patch without status must pass through: %+v", patch)
	}
}

func TestFormatDurationBuckets(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0 min"},
		{59, "59 min"},
		{60, "1h 0min"},
		{102, "1h 42min"},
		{1439, "23h 59min"},
		{1440, "1 dias 0h 0min"},
		{3075, "2 dias 3h 15min"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.minutes); got != c.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", c.minutes, got, c.want)
		}
	}
}

func TestStatusOnly(t *testing.T) {
	full := model.TicketPatch{
		Status:          sp(model.StatusConcluido),
		StartedAt:       sp("2024-01-01T10:00:00Z"),
		DurationMinutes: ip(10),
	}
	min := StatusOnly(full)
	if min.Status == nil || *min.Status != model.StatusConcluido {
		t.Fatalf("status lost: %+v", min)
	}
	if min.StartedAt != nil || min.DurationMinutes != nil {
		t.Fatalf("StatusOnly kept extra fields: %+v", min)
	}
}
