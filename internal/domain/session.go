package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são as claims do token de sessão emitido no login. O token de
// acesso da API externa nunca viaja dentro do JWT; ele fica retido no estado
// da sessão no servidor.
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}
