package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/lvillar/hospreport"
	"github.com/lvillar/hospreport/format"
)

const (
	equipmentTitle = "Relatório de Equipamento"
	workOrderTitle = "Histórico de Ordens de Serviço"
	photoHeight    = 60
)

var workOrderColumns = []hospreport.Column{
	{Header: "OS", Width: 20},
	{Header: "Descrição", Width: 90},
	{Header: "Status", Width: 35},
	{Header: "Valor", Width: 35, Align: "R"},
}

// EquipmentDocument lays out e as: general data, purchase data, warranty,
// notes, the optional photo and the work order history with its total.
func EquipmentDocument(e Equipment, f *format.Formatter) hospreport.Document {
	doc := hospreport.Document{
		Title:    equipmentTitle,
		Subtitle: subtitle(e.Nome),
		QR:       EquipmentKey(e),
		Contents: []hospreport.Content{
			hospreport.Section{Title: "Dados Gerais", Fields: []hospreport.Field{
				{Label: "Nome", Value: format.Text(e.Nome)},
				{Label: "Patrimônio", Value: format.Text(e.Patrimonio)},
				{Label: "Número de Série", Value: format.Text(e.NumeroSerie)},
				{Label: "Fabricante", Value: format.Text(e.Fabricante)},
				{Label: "Modelo", Value: format.Text(e.Modelo)},
				{Label: "Status", Value: format.Text(e.Status)},
				{Label: "Tipo de Equipamento", Value: refName(e.TipoEquipamento)},
				{Label: "Setor", Value: refName(e.Setor)},
				{Label: "Localização", Value: refName(e.Localizacao)},
			}},
			hospreport.Section{Title: "Dados de Compra", Fields: []hospreport.Field{
				{Label: "Valor de Compra", Value: f.Currency(e.ValorCompra)},
				{Label: "Data de Compra", Value: f.Date(e.DataCompra)},
				{Label: "Nota Fiscal", Value: format.Text(e.NotaFiscal)},
				{Label: "Fornecedor", Value: format.Text(e.Fornecedor)},
			}},
			hospreport.Section{Title: "Garantia", Fields: []hospreport.Field{
				{Label: "Início da Garantia", Value: f.Date(e.InicioGarantia)},
				{Label: "Fim da Garantia", Value: f.Date(e.FimGarantia)},
			}},
			hospreport.Notes{Title: "Observações", Text: format.Text(e.Observacoes)},
		},
	}
	if len(e.Foto) > 0 {
		doc.Contents = append(doc.Contents, hospreport.Photo{Caption: "Foto do equipamento", Data: e.Foto, Height: photoHeight})
	}
	doc.Contents = append(doc.Contents, WorkOrderTable(e.OrdensServico, f))
	return doc
}

// WorkOrderTable lists orders with their maintenance values summed into the
// running total. An empty list yields an empty table, which is not drawn.
func WorkOrderTable(orders []WorkOrder, f *format.Formatter) hospreport.Table {
	return hospreport.TableOf(workOrderTitle, workOrderColumns, orders,
		func(o WorkOrder) []string {
			return []string{
				fmt.Sprint(o.ID),
				format.Text(o.Descricao),
				format.Text(o.Status),
				f.Currency(o.ValorManutencao),
			}
		},
		func(o WorkOrder) *float64 { return o.ValorManutencao },
	)
}

// EquipmentFilename returns equipamento_<patrimônio or id>_<date>.pdf.
func EquipmentFilename(e Equipment, day time.Time) string {
	return hospreport.Filename("equipamento", EquipmentKey(e), day)
}

// EquipmentKey is the patrimony number, falling back to the record ID.
func EquipmentKey(e Equipment) string {
	if e.Patrimonio != nil && strings.TrimSpace(*e.Patrimonio) != "" {
		return strings.TrimSpace(*e.Patrimonio)
	}
	if e.ID > 0 {
		return fmt.Sprint(e.ID)
	}
	return ""
}

func refName(r *Ref) string {
	if r == nil {
		return format.Placeholder
	}
	return format.TextString(r.Nome)
}

func subtitle(s *string) string {
	if t := format.Text(s); t != format.Placeholder {
		return t
	}
	return ""
}
