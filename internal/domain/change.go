package domain

// ChangeDetailKind identifica a forma do payload de detalhe de uma mudança.
// O payload extra_data do log de atividades é um valor JSON opaco cuja forma
// varia por tipo de evento; as quatro variantes abaixo cobrem todas as formas
// observadas, com a variante Raw como degradação final.
type ChangeDetailKind string

const (
	ChangeDetailList   ChangeDetailKind = "list"
	ChangeDetailDiff   ChangeDetailKind = "diff"
	ChangeDetailFields ChangeDetailKind = "fields"
	ChangeDetailRaw    ChangeDetailKind = "raw"
)

// FieldPair é um par rótulo/valor de um payload plano de chave-valor
type FieldPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ChangeDetail é a união etiquetada produzida pelo parse do payload de
// detalhes. Apenas os campos da variante indicada por Kind são preenchidos.
type ChangeDetail struct {
	Kind     ChangeDetailKind `json:"kind"`
	Items    []string         `json:"items,omitempty"`
	OldValue *string          `json:"old_value,omitempty"`
	NewValue *string          `json:"new_value,omitempty"`
	Fields   []FieldPair      `json:"fields,omitempty"`
	Raw      string           `json:"raw,omitempty"`
}
