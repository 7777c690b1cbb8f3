package model

// Ticket statuses as stored and displayed. The values are the
// Portuguese labels used throughout the product; handlers validate
// against these constants instead of free text.
const (
	StatusAberto      = "Aberto"
	StatusEmAndamento = "Em Andamento"
	StatusConcluido   = "Concluído"
)

// Ticket priorities.
const (
	PrioridadeBaixa = "baixa"
	PrioridadeMedia = "media"
	PrioridadeAlta  = "alta"
)

// Ticket mirrors the 'chamados' table. StartedAt and CompletedAt are
// kept as raw strings: legacy rows may carry malformed values and the
// lifecycle rules parse them leniently instead of failing a scan.
// DurationMinutes/DurationText are written once, on first completion.
// TempoServico is an older free-text duration column that some rows
// still populate; when present it suppresses recomputation.
type Ticket struct {
	ID              string  `json:"id"`
	Titulo          string  `json:"titulo"`
	Descricao       string  `json:"descricao"`
	Prioridade      string  `json:"prioridade"`
	Status          string  `json:"status"`
	Usuario         string  `json:"usuario"`
	Solicitante     string  `json:"solicitante"`
	Setor           string  `json:"setor"`
	TipoServico     string  `json:"tipo_servico"`
	IsVIP           bool    `json:"is_vip"`
	Data            string  `json:"data,omitempty"`
	StartedAt       *string `json:"started_at,omitempty"`
	CompletedAt     *string `json:"completed_at,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	DurationText    *string `json:"duration_text,omitempty"`
	TempoServico    *string `json:"tempo_servico,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
}

// TicketPatch is a partial update for a ticket. Nil means "leave the
// column alone"; the stores translate set fields into a single UPDATE
// (or PATCH body on the REST transport).
type TicketPatch struct {
	Titulo          *string `json:"titulo,omitempty"`
	Descricao       *string `json:"descricao,omitempty"`
	Prioridade      *string `json:"prioridade,omitempty"`
	Status          *string `json:"status,omitempty"`
	Usuario         *string `json:"usuario,omitempty"`
	Solicitante     *string `json:"solicitante,omitempty"`
	Setor           *string `json:"setor,omitempty"`
	TipoServico     *string `json:"tipo_servico,omitempty"`
	IsVIP           *bool   `json:"is_vip,omitempty"`
	Data            *string `json:"data,omitempty"`
	StartedAt       *string `json:"started_at,omitempty"`
	CompletedAt     *string `json:"completed_at,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	DurationText    *string `json:"duration_text,omitempty"`
	TempoServico    *string `json:"tempo_servico,omitempty"`
}

// ValidStatus reports whether s is one of the three ticket statuses.
func ValidStatus(s string) bool {
	return s == StatusAberto || s == StatusEmAndamento || s == StatusConcluido
}

// ValidPrioridade reports whether p is a known priority.
func ValidPrioridade(p string) bool {
	return p == PrioridadeBaixa || p == PrioridadeMedia || p == PrioridadeAlta
}
