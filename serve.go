package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// server exposes scan reports over HTTP. Worlds are scanned on first request
// and cached until a rescan drops them; the mutex serializes scans.
type server struct {
	cfg *Config

	mu      sync.Mutex
	reports map[string]*Report
}

func (s *server) report(world string) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.reports[world]; ok {
		return r, nil
	}
	r, err := scanWorld(s.cfg, world)
	if err != nil {
		return nil, err
	}
	s.reports[world] = r
	return r, nil
}

func (s *server) reportHandler(w http.ResponseWriter, req *http.Request) {
	world := mux.Vars(req)["world"]
	r, err := s.report(world)
	if err != nil {
		log.Printf("scan of %s failed: %v", world, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(r); err != nil {
		log.Printf("encoding report for %s: %v", world, err)
	}
}

func (s *server) worldsHandler(w http.ResponseWriter, req *http.Request) {
	names := []string{}
	for name := range s.cfg.Worlds {
		names = append(names, name)
	}
	sort.Strings(names)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(names)
}

func (s *server) rescanHandler(w http.ResponseWriter, req *http.Request) {
	world := mux.Vars(req)["world"]
	s.mu.Lock()
	delete(s.reports, world)
	s.mu.Unlock()
	w.WriteHeader(http.StatusAccepted)
}

func (s *server) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/worlds", s.worldsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/report/{world}", s.reportHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/rescan/{world}", s.rescanHandler).Methods(http.MethodPost)
	return r
}

func serve(cfg *Config, addr string) error {
	s := &server{cfg: cfg, reports: map[string]*Report{}}

	srv := &http.Server{
		Handler:      s.router(),
		Addr:         addr,
		WriteTimeout: 120 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	log.Println("listening on", srv.Addr)
	return srv.ListenAndServe()
}
