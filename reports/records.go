// Package reports builds the equipment and training documents rendered by
// the hospreport engine.
package reports

// Ref is a name reference to a related backend entity (sector, location,
// equipment type, document type).
type Ref struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

// Equipment is an equipment record as returned by the backend. Nullable
// backend fields are pointers.
type Equipment struct {
	ID              int64       `json:"id"`
	Nome            *string     `json:"nome"`
	Patrimonio      *string     `json:"patrimonio"`
	NumeroSerie     *string     `json:"numeroSerie"`
	Fabricante      *string     `json:"fabricante"`
	Modelo          *string     `json:"modelo"`
	Status          *string     `json:"status"`
	ValorCompra     *float64    `json:"valorCompra"`
	DataCompra      *string     `json:"dataCompra"`
	NotaFiscal      *string     `json:"notaFiscal"`
	Fornecedor      *string     `json:"fornecedor"`
	InicioGarantia  *string     `json:"inicioGarantia"`
	FimGarantia     *string     `json:"fimGarantia"`
	Observacoes     *string     `json:"observacoes"`
	Setor           *Ref        `json:"setor"`
	Localizacao     *Ref        `json:"localizacao"`
	TipoEquipamento *Ref        `json:"tipoEquipamento"`
	OrdensServico   []WorkOrder `json:"ordensServico"`
	Foto            []byte      `json:"foto,omitempty"` // base64 in JSON
}

// WorkOrder is the summary of a maintenance order attached to equipment.
// Status is displayed verbatim.
type WorkOrder struct {
	ID              int64    `json:"id"`
	Descricao       *string  `json:"descricao"`
	Status          *string  `json:"status"`
	ValorManutencao *float64 `json:"valorManutencao"`
	DataAbertura    *string  `json:"dataAbertura"`
}

// Training is a training (capacitação) event with its attendance list.
type Training struct {
	ID            int64      `json:"id"`
	Titulo        *string    `json:"titulo"`
	Data          *string    `json:"data"`
	Local         *string    `json:"local"`
	Instrutor     *string    `json:"instrutor"`
	TipoDocumento *Ref       `json:"tipoDocumento"`
	CargaHoraria  *float64   `json:"cargaHoraria"`
	Descricao     *string    `json:"descricao"`
	Participantes []Attendee `json:"participantes"`
}

// Attendee is one line of a training attendance list.
type Attendee struct {
	Nome  *string `json:"nome"`
	Cargo *string `json:"cargo"`
}
