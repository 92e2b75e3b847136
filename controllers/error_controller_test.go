package controllers

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newErrorTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("error.html").Parse(`<p>{{.message}}</p>`)))
	return r
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		name     string
		handler  gin.HandlerFunc
		wantCode int
		wantBody string
	}{
		{
			name: "caller status is kept",
			handler: func(c *gin.Context) {
				c.Status(http.StatusBadRequest)
				RenderError(c, http.StatusNotFound, "Article not found.")
			},
			wantCode: http.StatusNotFound,
			wantBody: "<p>Article not found.</p>",
		},
		{
			name:     "internal error",
			handler:  InternalError,
			wantCode: http.StatusInternalServerError,
			wantBody: "<p>" + msgInternal + "</p>",
		},
		{
			name: "response already written",
			handler: func(c *gin.Context) {
				c.String(http.StatusOK, "partial")
				RenderError(c, http.StatusInternalServerError, "too late")
			},
			wantCode: http.StatusOK,
			wantBody: "partial",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newErrorTestEngine()
			r.GET("/", tt.handler, func(c *gin.Context) {
				t.Error("handler chain continued after RenderError")
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}
