package model

// Equipment statuses.
const (
	EquipDisponivel = "Disponível"
	EquipEmUso      = "Em Uso"
	EquipManutencao = "Manutenção"
	EquipInativo    = "Inativo"
)

// Equipamento mirrors the 'equipamentos' table. Patrimonio is the
// organization-assigned inventory tag and is unique across all rows.
// The spec-style columns (ram, armazenamento, ...) are free text; only
// some device types populate them.
type Equipamento struct {
	ID            string `json:"id"`
	Nome          string `json:"nome"`
	Tipo          string `json:"tipo"`
	Patrimonio    string `json:"patrimonio"`
	Marca         string `json:"marca,omitempty"`
	Modelo        string `json:"modelo,omitempty"`
	Status        string `json:"status"`
	Usuario       string `json:"usuario,omitempty"`
	Setor         string `json:"setor,omitempty"`
	RAM           string `json:"ram,omitempty"`
	Armazenamento string `json:"armazenamento,omitempty"`
	Processador   string `json:"processador,omitempty"`
	Polegadas     string `json:"polegadas,omitempty"`
	GHz           string `json:"ghz,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// EquipamentoPatch is a partial update for an equipment row.
type EquipamentoPatch struct {
	Nome          *string `json:"nome,omitempty"`
	Tipo          *string `json:"tipo,omitempty"`
	Patrimonio    *string `json:"patrimonio,omitempty"`
	Marca         *string `json:"marca,omitempty"`
	Modelo        *string `json:"modelo,omitempty"`
	Status        *string `json:"status,omitempty"`
	Usuario       *string `json:"usuario,omitempty"`
	Setor         *string `json:"setor,omitempty"`
	RAM           *string `json:"ram,omitempty"`
	Armazenamento *string `json:"armazenamento,omitempty"`
	Processador   *string `json:"processador,omitempty"`
	Polegadas     *string `json:"polegadas,omitempty"`
	GHz           *string `json:"ghz,omitempty"`
}

// ValidEquipStatus reports whether s is a known equipment status.
func ValidEquipStatus(s string) bool {
	return s == EquipDisponivel || s == EquipEmUso || s == EquipManutencao || s == EquipInativo
}
