// Package lifecycle computes the timestamp and duration side effects
// of a ticket status change. It is pure: callers pass the current
// snapshot, the requested patch and "now", and get back the merged
// patch to persist in a single update.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/concrem/helpdesk/internal/model"
)

// Timestamp layouts accepted for started_at/completed_at and the
// creation fallback. Legacy rows carry a mix of these; anything else
// is treated as unparseable and skips duration computation.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime tries the known layouts in order. Reports reuse it to
// measure completed tickets with the same leniency as Apply.
func ParseTime(s string) (time.Time, bool) {
	return parseTime(s)
}

// parseTime tries the known layouts in order.
func parseTime(s string) (time.Time, bool) {
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Apply merges the lifecycle-derived fields into patch, given the
// ticket's current state. Rules:
//
//   - Em Andamento: started_at = patch value, else existing, else now.
//   - Concluído: completed_at = patch value, else existing, else now;
//     started_at = patch value, else existing, else the ticket's
//     data/created_at, else now. Duration is computed only when the
//     ticket has no duration yet (duration_minutes, duration_text and
//     tempo_servico all empty) and the patch supplies none.
//   - Any other status: the patch is returned untouched.
//
// Unparseable timestamps leave the duration fields unset; they never
// produce an error. Re-completing a ticket whose duration is already
// recorded does not recompute it.
func Apply(t model.Ticket, patch model.TicketPatch, now time.Time) model.TicketPatch {
	if patch.Status == nil {
		return patch
	}
	switch *patch.Status {
	case model.StatusEmAndamento:
		if patch.StartedAt == nil {
			if t.StartedAt != nil && *t.StartedAt != "" {
				patch.StartedAt = t.StartedAt
			} else {
				patch.StartedAt = strPtr(now.UTC().Format(time.RFC3339))
			}
		}
	case model.StatusConcluido:
		if patch.CompletedAt == nil {
			if t.CompletedAt != nil && *t.CompletedAt != "" {
				patch.CompletedAt = t.CompletedAt
			} else {
				patch.CompletedAt = strPtr(now.UTC().Format(time.RFC3339))
			}
		}
		if patch.StartedAt == nil {
			switch {
			case t.StartedAt != nil && *t.StartedAt != "":
				patch.StartedAt = t.StartedAt
			case t.Data != "":
				patch.StartedAt = strPtr(t.Data)
			case t.CreatedAt != "":
				patch.StartedAt = strPtr(t.CreatedAt)
			default:
				patch.StartedAt = strPtr(now.UTC().Format(time.RFC3339))
			}
		}
		if hasDuration(t) || hasPatchDuration(patch) {
			break
		}
		start, okS := parseTime(*patch.StartedAt)
		end, okE := parseTime(*patch.CompletedAt)
		if !okS || !okE {
			break // permissive: legacy rows with bad dates keep no duration
		}
		ms := end.Sub(start).Milliseconds()
		if ms < 0 {
			ms = 0
		}
		minutes := int(ms / 60000)
		patch.DurationMinutes = &minutes
		patch.DurationText = strPtr(FormatDuration(minutes))
	}
	return patch
}

// hasDuration reports whether the ticket already carries any resolved
// duration value. First completion wins; later edits never overwrite.
func hasDuration(t model.Ticket) bool {
	if t.DurationMinutes != nil {
		return true
	}
	if t.DurationText != nil && *t.DurationText != "" {
		return true
	}
	if t.TempoServico != nil && *t.TempoServico != "" {
		return true
	}
	return false
}

func hasPatchDuration(p model.TicketPatch) bool {
	if p.DurationMinutes != nil {
		return true
	}
	if p.DurationText != nil && *p.DurationText != "" {
		return true
	}
	if p.TempoServico != nil && *p.TempoServico != "" {
		return true
	}
	return false
}

// FormatDuration renders a minute count as the display string used on
// tickets: "42 min", "1h 42min" or "2 dias 3h 15min".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if minutes < 1440 {
		return fmt.Sprintf("%dh %dmin", h, m)
	}
	d := h / 24
	return fmt.Sprintf("%d dias %dh %dmin", d, h%24, m)
}

// StatusOnly strips a patch down to its status field. The ticket
// handler uses it for the one retry allowed when the backing store
// rejects the extended timestamp/duration columns.
func StatusOnly(p model.TicketPatch) model.TicketPatch {
	return model.TicketPatch{Status: p.Status}
}

func strPtr(s string) *string { return &s }
