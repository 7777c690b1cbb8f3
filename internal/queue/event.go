// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketCompletedEvent is published when a ticket reaches "Concluído".
// It carries enough context for downstream consumers to log or notify
// without querying the primary store.
type TicketCompletedEvent struct {
	TicketID        string `json:"ticket_id"`
	Titulo          string `json:"titulo"`
	Solicitante     string `json:"solicitante"`
	Setor           string `json:"setor"`
	Tecnico         string `json:"tecnico"`
	Prioridade      string `json:"prioridade"`
	IsVIP           bool   `json:"is_vip"`
	DurationMinutes int    `json:"duration_minutes"`
	DurationText    string `json:"duration_text"`
	CompletedAt     string `json:"completed_at"`
}
