package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/concrem/helpdesk/internal/lifecycle"
	"github.com/concrem/helpdesk/internal/model"
)

// Dashboard handles GET /v1/reports/dashboard: ticket counters by
// status and priority plus the vip share.
func (h *Handler) Dashboard(c echo.Context) error {
	tickets, err := h.Tickets.List(c.Request().Context())
	if err != nil {
		return storeError(c, err, "list tickets failed")
	}
	status := map[string]int{}
	prioridade := map[string]int{}
	vip := 0
	for _, t := range tickets {
		status[t.Status]++
		prioridade[t.Prioridade]++
		if t.IsVIP {
			vip++
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total":      len(tickets),
		"status":     status,
		"prioridade": prioridade,
		"vip":        vip,
	})
}

// ServiceReport handles GET /v1/reports/services. Mirrors the service
// analysis view: done today, open, in progress, and the fastest
// completed service measured from started_at to completed_at.
func (h *Handler) ServiceReport(c echo.Context) error {
	tickets, err := h.Tickets.List(c.Request().Context())
	if err != nil {
		return storeError(c, err, "list tickets failed")
	}

	today := time.Now().UTC().Format("2006-01-02")
	doneToday, open, inProgress := 0, 0, 0
	minMinutes := -1
	for _, t := range tickets {
		switch t.Status {
		case model.StatusAberto:
			open++
		case model.StatusEmAndamento:
			inProgress++
		case model.StatusConcluido:
			if t.Data == today {
				doneToday++
			}
			if t.StartedAt == nil || t.CompletedAt == nil {
				continue
			}
			start, okS := lifecycle.ParseTime(*t.StartedAt)
			end, okE := lifecycle.ParseTime(*t.CompletedAt)
			if !okS || !okE {
				continue
			}
			ms := end.Sub(start).Milliseconds()
			if ms < 0 {
				ms = 0
			}
			m := int(ms / 60000)
			if minMinutes < 0 || m < minMinutes {
				minMinutes = m
			}
		}
	}

	resp := echo.Map{
		"feitos_hoje":  doneToday,
		"em_aberto":    open,
		"em_andamento": inProgress,
		"total":        len(tickets),
	}
	if minMinutes >= 0 {
		resp["tempo_minimo"] = lifecycle.FormatDuration(minMinutes)
		resp["tempo_minimo_minutos"] = minMinutes
	}
	return c.JSON(http.StatusOK, resp)
}

// EquipmentReport handles GET /v1/reports/equipment: status counters
// over the whole inventory.
func (h *Handler) EquipmentReport(c echo.Context) error {
	items, err := h.Equipment.List(c.Request().Context())
	if err != nil {
		return storeError(c, err, "list equipment failed")
	}
	count := map[string]int{}
	for _, e := range items {
		count[e.Status]++
	}
	inativos := count[model.EquipInativo]
	return c.JSON(http.StatusOK, echo.Map{
		"total":       len(items),
		"ativos":      len(items) - inativos,
		"disponiveis": count[model.EquipDisponivel],
		"em_uso":      count[model.EquipEmUso],
		"manutencao":  count[model.EquipManutencao],
		"inativos":    inativos,
	})
}

// Export handles GET /v1/reports/export and streams an xlsx workbook
// with one sheet per resource.
func (h *Handler) Export(c echo.Context) error {
	ctx := c.Request().Context()
	tickets, err := h.Tickets.List(ctx)
	if err != nil {
		return storeError(c, err, "list tickets failed")
	}
	equipment, err := h.Equipment.List(ctx)
	if err != nil {
		return storeError(c, err, "list equipment failed")
	}
	products, err := h.Products.List(ctx)
	if err != nil {
		return storeError(c, err, "list products failed")
	}

	f := excelize.NewFile()
	defer f.Close()

	writeTicketSheet(f, tickets)
	writeEquipmentSheet(f, equipment)
	writeProductSheet(f, products)
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build workbook failed"})
	}
	name := fmt.Sprintf("helpdesk-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func writeTicketSheet(f *excelize.File, tickets []model.Ticket) {
	const sheet = "Chamados"
	f.NewSheet(sheet)
	header := []any{"ID", "Título", "Status", "Prioridade", "Solicitante", "Setor", "Técnico", "Tipo de Serviço", "VIP", "Data", "Duração"}
	_ = f.SetSheetRow(sheet, "A1", &header)
	for i, t := range tickets {
		dur := ""
		if t.DurationText != nil {
			dur = *t.DurationText
		} else if t.TempoServico != nil {
			dur = *t.TempoServico
		}
		vip := ""
		if t.IsVIP {
			vip = "sim"
		}
		row := []any{t.ID, t.Titulo, t.Status, t.Prioridade, t.Solicitante, t.Setor, t.Usuario, t.TipoServico, vip, t.Data, dur}
		_ = f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row)
	}
}

func writeEquipmentSheet(f *excelize.File, items []model.Equipamento) {
	const sheet = "Equipamentos"
	f.NewSheet(sheet)
	header := []any{"ID", "Nome", "Tipo", "Patrimônio", "Marca", "Modelo", "Status", "Usuário", "Setor"}
	_ = f.SetSheetRow(sheet, "A1", &header)
	for i, e := range items {
		row := []any{e.ID, e.Nome, e.Tipo, e.Patrimonio, e.Marca, e.Modelo, e.Status, e.Usuario, e.Setor}
		_ = f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row)
	}
}

func writeProductSheet(f *excelize.File, items []model.Produto) {
	const sheet = "Produtos"
	f.NewSheet(sheet)
	header := []any{"ID", "Nome", "Categoria", "Estoque"}
	_ = f.SetSheetRow(sheet, "A1", &header)
	for i, p := range items {
		row := []any{p.ID, p.Nome, p.Categoria, p.Estoque}
		_ = f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row)
	}
}
