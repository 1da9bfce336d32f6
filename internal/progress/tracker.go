// Package progress mantém o estado das duas trilhas de carregamento de uma
// sessão: a trilha bloqueante (modal, opcionalmente pulável) e a trilha de
// fundo (persistente, encerrada apenas pela conclusão do trabalho).
package progress

import "sync"

// BlockingState é o estado da trilha bloqueante
type BlockingState struct {
	Active   bool   `json:"active"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	CanSkip  bool   `json:"can_skip"`
}

// BackgroundState é o estado da trilha de fundo
type BackgroundState struct {
	Active   bool   `json:"active"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}

// Tracker coordena as duas trilhas. As trilhas andam em sincronia durante um
// scan de portfólio (mesmo percentual), mas têm ciclos de vida
// independentes: pular a trilha bloqueante nunca interfere na trilha de
// fundo nem cancela trabalho em andamento.
type Tracker struct {
	mu         sync.RWMutex
	blocking   BlockingState
	background BackgroundState
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// BeginBlocking ativa a trilha bloqueante com progresso zerado
func (t *Tracker) BeginBlocking(status string, canSkip bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.blocking = BlockingState{Active: true, Status: status, CanSkip: canSkip}
}

// UpdateBlocking atualiza status e percentual da trilha bloqueante. Não tem
// efeito se a trilha já foi encerrada ou pulada.
func (t *Tracker) UpdateBlocking(status string, percent int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.blocking.Active {
		return
	}
	t.blocking.Status = status
	t.blocking.Progress = percent
}

// EndBlocking desativa a trilha bloqueante
func (t *Tracker) EndBlocking() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.blocking = BlockingState{}
}

// Skip é a transição disparada pelo usuário em uma trilha bloqueante
// pulável. Afeta somente a trilha bloqueante; a trilha de fundo permanece
// intocada. Retorna falso quando a trilha não está ativa ou não é pulável.
func (t *Tracker) Skip() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.blocking.Active || !t.blocking.CanSkip {
		return false
	}
	t.blocking = BlockingState{}
	return true
}

// BeginBackground ativa a trilha de fundo com progresso zerado
func (t *Tracker) BeginBackground(status string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.background = BackgroundState{Active: true, Status: status}
}

// UpdateBackground atualiza status e percentual da trilha de fundo
func (t *Tracker) UpdateBackground(status string, percent int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.background.Active {
		return
	}
	t.background.Status = status
	t.background.Progress = percent
}

// EndBackground desativa a trilha de fundo; só deve ser chamado pela
// conclusão do trabalho, nunca por ação do usuário
func (t *Tracker) EndBackground() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.background = BackgroundState{}
}

// Snapshot devolve uma cópia consistente das duas trilhas
func (t *Tracker) Snapshot() (BlockingState, BackgroundState) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.blocking, t.background
}
