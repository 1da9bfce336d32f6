package metadomain

import "time"

// eventTimeLayout é o formato de data usado pela API nos eventos do log de
// atividades: ISO 8601 com fuso sem dois-pontos
const eventTimeLayout = "2006-01-02T15:04:05-0700"

// ActivityLogEntry é um evento de auditoria do log de atividades de uma
// conta. O registro é imutável depois de obtido; extra_data é um payload
// JSON opaco cuja forma varia por tipo de evento.
type ActivityLogEntry struct {
	EventTime           string `json:"event_time"`
	EventType           string `json:"event_type"`
	TranslatedEventType string `json:"translated_event_type,omitempty"`
	ActorName           string `json:"actor_name,omitempty"`
	ActorID             string `json:"actor_id,omitempty"`
	ObjectName          string `json:"object_name,omitempty"`
	ObjectID            string `json:"object_id,omitempty"`
	ObjectType          string `json:"object_type,omitempty"`
	ObjectLink          string `json:"object_link,omitempty"`
	ExtraData           string `json:"extra_data,omitempty"`
	ApplicationName     string `json:"application_name,omitempty"`
}

// Timestamp interpreta o event_time da entrada. A API usa fuso sem
// dois-pontos; RFC 3339 fica como segunda tentativa.
func (e ActivityLogEntry) Timestamp() (time.Time, error) {
	ts, err := time.Parse(eventTimeLayout, e.EventTime)
	if err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, e.EventTime)
}

// Cursors são os cursores opacos de paginação retornados pela API
type Cursors struct {
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
}

// Paging é o bloco de paginação de uma resposta paginada por cursor
type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// ActivityPage é uma página do log de atividades
type ActivityPage struct {
	Data   []ActivityLogEntry `json:"data"`
	Paging Paging             `json:"paging"`
}
