package domain

// HealthVerdict é o veredito de saúde de 30 dias de uma conta: saudável
// quando existe uma mudança substantiva dentro da janela
type HealthVerdict struct {
	Healthy  bool   `json:"healthy"`
	LastDate string `json:"last_date"`
}

// ActorActivity é a contagem de atividades atribuída a um autor normalizado,
// na ordem em que cada autor apareceu no log
type ActorActivity struct {
	ActorKey string `json:"actor_key"`
	ActorID  string `json:"actor_id,omitempty"`
	Count    int    `json:"count"`
}
