// Package modal hosts exactly one view surface at a time inside the overlay.
// Switching views is replace-not-stack; there is no back navigation.
package modal

import "github.com/example/storefront/internal/view"

type Host struct {
	open    bool
	content *view.Surface
}

func NewHost() *Host {
	return &Host{}
}

func (h *Host) Open() {
	h.open = true
}

func (h *Host) Close() {
	h.open = false
}

func (h *Host) IsOpen() bool {
	return h.open
}

// SetContent replaces the overlay's single content slot.
func (h *Host) SetContent(s *view.Surface) {
	h.content = s
}

func (h *Host) Content() *view.Surface {
	return h.content
}
