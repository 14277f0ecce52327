// Package health хранит состояние процесса для проб Kubernetes.
//
// State пишет супервизор соединения, читает HTTP-сервер проб. Это
// единственное разделяемое изменяемое состояние воркера.
package health

import "sync/atomic"

// Reader — доступ только на чтение для проб.
type Reader interface {
	Connected() bool
	Alive() bool
}

// State — флаги "connected" и "alive".
type State struct {
	connected atomic.Bool
	alive     atomic.Bool
}

var _ Reader = (*State)(nil)

// NewState создаёт состояние: не подключён, не жив.
func NewState() *State {
	return &State{}
}

// SetConnected выставляет флаг подключения к брокеру.
func (s *State) SetConnected(v bool) {
	s.connected.Store(v)
}

// Connected — есть ли активное потребление из очереди.
func (s *State) Connected() bool {
	return s.connected.Load()
}

// SetAlive выставляет флаг работы цикла потребления.
func (s *State) SetAlive(v bool) {
	s.alive.Store(v)
}

// Alive — выполняется ли цикл потребления (даже без соединения).
func (s *State) Alive() bool {
	return s.alive.Load()
}
