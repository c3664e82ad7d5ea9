package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeepAlive_RespondsOnAnyMethod(t *testing.T) {
	kc := NewKeepAliveController()

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodPost} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/", nil)
			w := httptest.NewRecorder()

			kc.KeepAlive(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "sld alive", w.Body.String())
			assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		})
	}
}
