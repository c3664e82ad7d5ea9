package controllers

import "net/http"

// KeepAliveController answers uptime probes with fixed plain text on any
// method. External pingers only care that the process answers at all.
type KeepAliveController struct{}

func NewKeepAliveController() *KeepAliveController {
	return &KeepAliveController{}
}

func (kc *KeepAliveController) KeepAlive(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("sld alive"))
}
