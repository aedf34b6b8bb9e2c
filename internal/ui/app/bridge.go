// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app hosts the Bubble Tea program for the DenimHouse admin console.
package app

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// SESSION BRIDGE
// =============================================================================

// NotifyKind classifies a notification forwarded from the session layer.
type NotifyKind int

const (
	NotifyInfo NotifyKind = iota
	NotifySuccess
	NotifyError
)

// NotifyMsg carries one session-layer notification into the update loop.
type NotifyMsg struct {
	Kind    NotifyKind
	Message string
}

// GotoLoginMsg tells the root model to land on the login screen.
type GotoLoginMsg struct{}

// Bridge adapts the session manager's callback boundaries onto Bubble Tea
// messages. The manager is constructed before the program exists, so the
// bridge queues messages until Attach hands it a running program.
type Bridge struct {
	mu      sync.Mutex
	program *tea.Program
	pending []tea.Msg
}

// NewBridge creates an unattached bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach connects the bridge to a running program and flushes anything that
// queued up during startup (e.g. a forced logout from session restore).
func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	b.program = p
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, msg := range pending {
		p.Send(msg)
	}
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.Lock()
	if b.program == nil {
		b.pending = append(b.pending, msg)
		b.mu.Unlock()
		return
	}
	p := b.program
	b.mu.Unlock()
	p.Send(msg)
}

// Success implements session.Notifier.
func (b *Bridge) Success(message string) {
	b.send(NotifyMsg{Kind: NotifySuccess, Message: message})
}

// Info implements session.Notifier.
func (b *Bridge) Info(message string) {
	b.send(NotifyMsg{Kind: NotifyInfo, Message: message})
}

// Error implements session.Notifier.
func (b *Bridge) Error(message string) {
	b.send(NotifyMsg{Kind: NotifyError, Message: message})
}

// GotoLogin implements session.Navigator.
func (b *Bridge) GotoLogin() {
	b.send(GotoLoginMsg{})
}
