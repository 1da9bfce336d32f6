package domain

import (
	"fmt"
	"strings"
)

// TeamMember é a representação normalizada de um usuário com acesso à conta.
// Os campos ausentes na API recebem valores padrão na normalização.
type TeamMember struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	AccessLabels []string `json:"access_labels"`
	// ActivityKey é usado para casar o membro com os nomes de autor do log
	// de atividades quando não há correlação por identificador estável
	ActivityKey string `json:"activity_key"`
}

const (
	defaultMemberName  = "Unknown User"
	defaultMemberEmail = "Email not available"
	defaultMemberRole  = "Assigned User"
	defaultAccessLabel = "Authorized User"
)

// NewTeamMember normaliza um registro de usuário vindo da API, aplicando os
// valores padrão quando nome, email ou papel não são informados. O índice é
// usado para sintetizar um identificador quando a API não fornece um.
func NewTeamMember(id, name, email, role string, index int) TeamMember {
	labels := []string{defaultAccessLabel}
	if role != "" {
		labels = []string{role}
	}

	member := TeamMember{
		ID:           id,
		Name:         name,
		Email:        email,
		Role:         role,
		AccessLabels: labels,
	}

	if member.ID == "" {
		member.ID = fmt.Sprintf("member-%d", index)
	}
	if member.Name == "" {
		member.Name = defaultMemberName
	}
	if member.Email == "" {
		member.Email = defaultMemberEmail
	}
	if member.Role == "" {
		member.Role = defaultMemberRole
	}

	switch {
	case name != "":
		member.ActivityKey = name
	case email != "":
		member.ActivityKey = email
	default:
		member.ActivityKey = ""
	}

	return member
}

// NormalizeActorKey normaliza um nome de autor para comparação: espaços
// aparados e caixa baixa
func NormalizeActorKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
