package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/orchestrator/httpapi"
)

// serveCmd starts the HTTP surface: process_command/process_command_stream
// on gorilla/mux (mirroring the teacher's cmd/server/server.go router
// choice) plus the gin-hosted archive/memory browsing endpoints mounted
// under /api, per SPEC_FULL.md §6's transport split.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the assistant's HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		application, err := buildApp(cfg)
		if err != nil {
			return err
		}
		defer application.Logger.Close()

		addr, _ := cmd.Flags().GetString("addr")

		router := mux.NewRouter()
		router.HandleFunc("/process_command", processCommandHandler(application)).Methods(http.MethodPost)
		router.HandleFunc("/process_command_stream", processCommandStreamHandler(application)).Methods(http.MethodPost)
		router.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)
		router.PathPrefix("/api/").Handler(http.StripPrefix("/api", httpapi.NewRouter(application.Memory, application.Archiver)))

		application.Logger.Infof("listening on %s", addr)
		server := &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		return server.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8090", "address to listen on")
}

type commandRequest struct {
	Text string `json:"text"`
}

func processCommandHandler(application *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req commandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := application.Orchestrator.ProcessCommand(r.Context(), req.Text)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"intent":     result.Intent,
			"transcript": result.Transcript,
		})
	}
}

func processCommandStreamHandler(application *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req commandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		flusher, canFlush := w.(http.Flusher)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		_, err := application.Orchestrator.ProcessCommandStream(ctx, req.Text, func(chunk string) {
			w.Write([]byte(chunk))
			if canFlush {
				flusher.Flush()
			}
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
