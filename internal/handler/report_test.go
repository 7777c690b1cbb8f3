package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/concrem/helpdesk/internal/model"
)

func TestServiceReportMetrics(t *testing.T) {
	s1, c1 := "2024-03-01T08:00:00Z", "2024-03-01T08:30:00Z"
	s2, c2 := "2024-03-01T08:00:00Z", "2024-03-01T10:00:00Z"
	bad := "nunca"
	today := time.Now().UTC().Format("2006-01-02")
	tickets := newFakeTickets(
		model.Ticket{ID: "t1", Status: model.StatusConcluido, Data: today, StartedAt: &s1, CompletedAt: &c1},
		model.Ticket{ID: "t2", Status: model.StatusConcluido, StartedAt: &s2, CompletedAt: &c2},
		model.Ticket{ID: "t3", Status: model.StatusConcluido, StartedAt: &bad, CompletedAt: &c1},
		model.Ticket{ID: "t4", Status: model.StatusAberto},
		model.Ticket{ID: "t5", Status: model.StatusEmAndamento},
	)
	h := &Handler{Tickets: tickets}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/reports/services", nil)
	rec := httptest.NewRecorder()
	if err := h.ServiceReport(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	var out struct {
		FeitosHoje  int    `json:"feitos_hoje"`
		EmAberto    int    `json:"em_aberto"`
		EmAndamento int    `json:"em_andamento"`
		TempoMinimo string `json:"tempo_minimo"`
		Minutos     int    `json:"tempo_minimo_minutos"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.FeitosHoje != 1 || out.EmAberto != 1 || out.EmAndamento != 1 {
		t.Fatalf("counters = %+v", out)
	}
	// t1 at 30 min is the fastest; t3's unparseable start is skipped.
	if out.Minutos != 30 || out.TempoMinimo != "30 min" {
		t.Fatalf("tempo_minimo = %q (%d)", out.TempoMinimo, out.Minutos)
	}
}

func TestEquipmentReportCounters(t *testing.T) {
	h := &Handler{Equipment: &fakeEquipment{items: []model.Equipamento{
		{ID: "e1", Status: model.EquipDisponivel},
		{ID: "e2", Status: model.EquipEmUso},
		{ID: "e3", Status: model.EquipEmUso},
		{ID: "e4", Status: model.EquipInativo},
	}}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/reports/equipment", nil)
	rec := httptest.NewRecorder()
	if err := h.EquipmentReport(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	var out map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out["total"] != 4 || out["ativos"] != 3 || out["em_uso"] != 2 || out["inativos"] != 1 {
		t.Fatalf("counters = %v", out)
	}
}
