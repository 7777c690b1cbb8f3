package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/concrem/helpdesk/internal/model"
)

func equipContext(method, target, body, tier string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("tier", tier)
	return c, rec
}

func TestCreateEquipmentRejectsDuplicatePatrimony(t *testing.T) {
	eq := &fakeEquipment{items: []model.Equipamento{
		{ID: "e1", Nome: "Notebook Ana", Tipo: "Notebook", Patrimonio: "PC001"},
	}}
	h := &Handler{Equipment: eq}

	c, rec := equipContext(http.MethodPost, "/v1/equipment",
		`{"nome":"Notebook Beto","tipo":"Notebook","patrimonio":"pc-001"}`, model.TierPadrao)
	if err := h.CreateEquipment(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", rec.Code, rec.Body.String())
	}
	if len(eq.created) != 0 {
		t.Fatal("colliding record reached the store")
	}
}

func TestUpdateEquipmentAllowsOwnPatrimony(t *testing.T) {
	eq := &fakeEquipment{items: []model.Equipamento{
		{ID: "e1", Nome: "Notebook Ana", Tipo: "Notebook", Patrimonio: "PC001"},
	}}
	h := &Handler{Equipment: eq}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/v1/equipment/e1", strings.NewReader(`{"patrimonio":"PC001"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("tier", model.TierAdmin)
	c.SetParamNames("id")
	c.SetParamValues("e1")
	if err := h.UpdateEquipment(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
}

func TestVIPCannotWriteEquipment(t *testing.T) {
	h := &Handler{Equipment: &fakeEquipment{}}

	c, rec := equipContext(http.MethodPost, "/v1/equipment",
		`{"nome":"Tablet","tipo":"Tablet"}`, model.TierVIP)
	if err := h.CreateEquipment(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestVIPCanListEquipment(t *testing.T) {
	h := &Handler{Equipment: &fakeEquipment{items: []model.Equipamento{
		{ID: "e1", Nome: "Monitor Dell", Tipo: "Monitor", Patrimonio: "MON-001"},
	}}}

	c, rec := equipContext(http.MethodGet, "/v1/equipment", "", model.TierVIP)
	if err := h.ListEquipment(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestEquipmentCodesSuggestion(t *testing.T) {
	h := &Handler{Equipment: &fakeEquipment{items: []model.Equipamento{
		{ID: "e1", Nome: "Notebook Ana", Tipo: "Notebook", Patrimonio: "PC002"},
		{ID: "e2", Nome: "Desktop Beto", Tipo: "Desktop", Patrimonio: "sem-codigo"},
	}}}

	c, rec := equipContext(http.MethodGet, "/v1/equipment/codes?nome=Notebook+Carla&tipo=Notebook", "", model.TierPadrao)
	if err := h.EquipmentCodes(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		Codes      map[string]string `json:"codes"`
		Suggestion string            `json:"suggestion"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Suggestion != "PC003" {
		t.Fatalf("suggestion = %q, want PC003", out.Suggestion)
	}
	if out.Codes["e1"] != "PC002" {
		t.Fatalf("e1 code = %q, want PC002", out.Codes["e1"])
	}
}

func TestCreateIssuanceInsufficientStock(t *testing.T) {
	iss := &fakeIssuances{stock: map[string]int{"p1": 2}}
	h := &Handler{Issuances: iss}

	c, rec := equipContext(http.MethodPost, "/v1/issuances",
		`{"produto_id":"p1","quantidade":5,"destinatario":"RH"}`, model.TierPadrao)
	if err := h.CreateIssuance(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body %s", rec.Code, rec.Body.String())
	}
	if iss.stock["p1"] != 2 {
		t.Fatalf("stock mutated to %d", iss.stock["p1"])
	}
}
