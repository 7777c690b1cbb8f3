package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/concrem/helpdesk/internal/model"
	"github.com/concrem/helpdesk/internal/store"
)

const ticketCols = `id, titulo, descricao, prioridade, status, usuario, solicitante,
	setor, tipo_servico, is_vip, data, started_at, completed_at,
	duration_minutes, duration_text, tempo_servico, created_at`

type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

func scanTicket(row interface{ Scan(...any) error }) (model.Ticket, error) {
	var (
		t                                model.Ticket
		data, started, completed         sql.NullString
		durText, tempoServico, createdAt sql.NullString
		durMin                           sql.NullInt64
	)
	err := row.Scan(&t.ID, &t.Titulo, &t.Descricao, &t.Prioridade, &t.Status,
		&t.Usuario, &t.Solicitante, &t.Setor, &t.TipoServico, &t.IsVIP,
		&data, &started, &completed, &durMin, &durText, &tempoServico, &createdAt)
	if err != nil {
		return model.Ticket{}, err
	}
	t.Data = data.String
	if started.Valid {
		t.StartedAt = &started.String
	}
	if completed.Valid {
		t.CompletedAt = &completed.String
	}
	if durMin.Valid {
		n := int(durMin.Int64)
		t.DurationMinutes = &n
	}
	if durText.Valid {
		t.DurationText = &durText.String
	}
	if tempoServico.Valid {
		t.TempoServico = &tempoServico.String
	}
	t.CreatedAt = createdAt.String
	return t, nil
}

// List returns all tickets, newest first.
func (r *TicketRepo) List(ctx context.Context) ([]model.Ticket, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+ticketCols+" FROM chamados ORDER BY created_at DESC")
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()
	out := []model.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TicketRepo) Get(ctx context.Context, id string) (model.Ticket, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+ticketCols+" FROM chamados WHERE id = ? LIMIT 1", id)
	t, err := scanTicket(row)
	if err != nil {
		return model.Ticket{}, translateErr(err)
	}
	return t, nil
}

func (r *TicketRepo) Create(ctx context.Context, t model.Ticket) (model.Ticket, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO chamados
		 (id, titulo, descricao, prioridade, status, usuario, solicitante, setor, tipo_servico, is_vip, data)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		t.ID, t.Titulo, t.Descricao, t.Prioridade, t.Status,
		t.Usuario, t.Solicitante, t.Setor, t.TipoServico, t.IsVIP, nullable(t.Data))
	if err != nil {
		return model.Ticket{}, translateErr(err)
	}
	return r.Get(ctx, t.ID)
}

// Update applies a partial patch in a single UPDATE. Unknown-column
// failures surface as store.ErrUnknownColumn so the handler can retry
// with a reduced payload.
func (r *TicketRepo) Update(ctx context.Context, id string, p model.TicketPatch) (model.Ticket, error) {
	var set setClause
	if p.Titulo != nil {
		set.add("titulo", *p.Titulo)
	}
	if p.Descricao != nil {
		set.add("descricao", *p.Descricao)
	}
	if p.Prioridade != nil {
		set.add("prioridade", *p.Prioridade)
	}
	if p.Status != nil {
		set.add("status", *p.Status)
	}
	if p.Usuario != nil {
		set.add("usuario", *p.Usuario)
	}
	if p.Solicitante != nil {
		set.add("solicitante", *p.Solicitante)
	}
	if p.Setor != nil {
		set.add("setor", *p.Setor)
	}
	if p.TipoServico != nil {
		set.add("tipo_servico", *p.TipoServico)
	}
	if p.IsVIP != nil {
		set.add("is_vip", *p.IsVIP)
	}
	if p.Data != nil {
		set.add("data", *p.Data)
	}
	if p.StartedAt != nil {
		set.add("started_at", *p.StartedAt)
	}
	if p.CompletedAt != nil {
		set.add("completed_at", *p.CompletedAt)
	}
	if p.DurationMinutes != nil {
		set.add("duration_minutes", *p.DurationMinutes)
	}
	if p.DurationText != nil {
		set.add("duration_text", *p.DurationText)
	}
	if p.TempoServico != nil {
		set.add("tempo_servico", *p.TempoServico)
	}
	if set.empty() {
		return r.Get(ctx, id)
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE chamados SET "+set.sql()+" WHERE id = ?", append(set.args, id)...)
	if err != nil {
		return model.Ticket{}, translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero rows can also mean "no change"; confirm existence.
		if _, err := r.Get(ctx, id); err != nil {
			return model.Ticket{}, err
		}
	}
	return r.Get(ctx, id)
}

func (r *TicketRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM chamados WHERE id = ?", id)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// nullable maps "" to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
