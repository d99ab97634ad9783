package conn

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tobsdb/tobsrel/internal/auth"
	"github.com/tobsdb/tobsrel/internal/builder"
	"github.com/tobsdb/tobsrel/pkg"
)

// TobsRel serves one schema over websocket connections.
type TobsRel struct {
	Schema *builder.Schema
	Users  auth.Users
}

func NewTobsRel(schema *builder.Schema, users auth.Users) *TobsRel {
	if len(users) == 0 {
		pkg.WarnLog("no users configured, connections are not authenticated")
	}
	return &TobsRel{schema, users}
}

func (db *TobsRel) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/", db.HandleConnection)
	return mux
}

func (db *TobsRel) Listen(port int) {
	exit := make(chan os.Signal, 2)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

	s := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      db.Handler(),
		ReadTimeout:  0,
		WriteTimeout: 0,
	}

	go func() {
		err := s.ListenAndServe()
		if err != http.ErrServerClosed {
			pkg.FatalLog(err)
		}
	}()

	pkg.InfoLog("TobsRel listening on port", port)
	<-exit
	pkg.DebugLog("Shutting down...")
	s.Shutdown(context.Background())
}
