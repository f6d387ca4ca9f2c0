// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package view

// ModalKind identifies a modal surface.
type ModalKind string

const (
	ModalScriptDetail  ModalKind = "script-detail"
	ModalProgramDetail ModalKind = "program-detail"
	ModalGuestUpsell   ModalKind = "guest-upsell"
)

// Modals tracks per-kind modal visibility. Kinds are independent:
// opening one never closes another. Detail modals carry the ID of the
// entity they present; the guest upsell carries none.
type Modals struct {
	open map[ModalKind]string
}

func NewModals() *Modals {
	return &Modals{open: make(map[ModalKind]string)}
}

// Open shows a modal, replacing the entity if the kind is already open.
func (m *Modals) Open(kind ModalKind, entityID string) {
	m.open[kind] = entityID
}

// Close hides a modal. Closing a modal that is not open is a no-op.
func (m *Modals) Close(kind ModalKind) {
	delete(m.open, kind)
}

// CloseAll hides every modal, used on screen teardown.
func (m *Modals) CloseAll() {
	m.open = make(map[ModalKind]string)
}

// IsOpen reports whether a modal kind is visible.
func (m *Modals) IsOpen(kind ModalKind) bool {
	_, ok := m.open[kind]
	return ok
}

// Entity returns the entity ID a detail modal presents, and whether
// the modal is open at all.
func (m *Modals) Entity(kind ModalKind) (string, bool) {
	entityID, ok := m.open[kind]
	return entityID, ok
}
