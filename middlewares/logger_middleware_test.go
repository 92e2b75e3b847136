package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLogger_LevelByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hook := test.NewGlobal()
	out := log.StandardLogger().Out
	log.SetOutput(io.Discard)
	t.Cleanup(func() {
		log.SetOutput(out)
		log.StandardLogger().ReplaceHooks(make(log.LevelHooks))
	})

	r := gin.New()
	r.Use(Logger())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/missing", func(c *gin.Context) { c.String(http.StatusNotFound, "missing") })
	r.GET("/broken", func(c *gin.Context) { c.String(http.StatusInternalServerError, "broken") })

	tests := []struct {
		path   string
		status int
		level  log.Level
	}{
		{"/ok", http.StatusOK, log.InfoLevel},
		{"/missing", http.StatusNotFound, log.WarnLevel},
		{"/broken", http.StatusInternalServerError, log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			hook.Reset()

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			entry := hook.LastEntry()
			if entry == nil {
				t.Fatal("no log entry written")
			}
			if entry.Level != tt.level {
				t.Errorf("level = %v, want %v", entry.Level, tt.level)
			}
			if entry.Data["status"] != tt.status {
				t.Errorf("status field = %v, want %d", entry.Data["status"], tt.status)
			}
			if entry.Data["path"] != tt.path {
				t.Errorf("path field = %v, want %s", entry.Data["path"], tt.path)
			}
		})
	}
}
