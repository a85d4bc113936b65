// Package tenablefake serves just enough of the Tenable.io and Tenable.sc
// REST APIs to drive scan-smuggler end to end without real consoles.
//
// Both services share one handler since their paths do not overlap:
//
//	/scans/...        Tenable.io history and export
//	/rest/...         Tenable.sc file upload and scanResult import
package tenablefake

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Run describes the most recent run reported for a scan.
type Run struct {
	ID      int64
	Status  string
	TimeEnd time.Time
	Export  []byte
}

// Import records one scanResult/import call together with the uploaded bytes.
type Import struct {
	Request map[string]any
	Data    []byte
}

// Server is an in-memory fake of both consoles. It is safe for concurrent use.
type Server struct {
	mu        sync.Mutex
	runs      map[string]Run
	files     map[string][]byte
	imports   []Import
	downloads []string
	nextFile  int
}

// New returns a fake with no scans.
func New() *Server {
	return &Server{
		runs:  map[string]Run{},
		files: map[string][]byte{},
	}
}

// SetRun registers the latest run of scanID.
func (s *Server) SetRun(scanID string, run Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[scanID] = run
}

// Imports returns the imports received so far.
func (s *Server) Imports() []Import {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Import(nil), s.imports...)
}

// Downloads returns the scan IDs whose exports were downloaded.
func (s *Server) Downloads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.downloads...)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasPrefix(r.URL.Path, "/scans/"):
		s.serveIO(w, r)
	case r.URL.Path == "/rest/file/upload":
		s.serveUpload(w, r)
	case r.URL.Path == "/rest/scanResult/import":
		s.serveImport(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) serveIO(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("X-ApiKeys"), "accessKey=") {
		http.Error(w, `{"error":"Invalid Credentials"}`, http.StatusUnauthorized)
		return
	}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	s.mu.Lock()
	run, ok := s.runs[parts[1]]
	s.mu.Unlock()
	if !ok {
		http.Error(w, `{"error":"The requested file was not found."}`, http.StatusNotFound)
		return
	}

	switch {
	case len(parts) == 3 && parts[2] == "history":
		writeJSON(w, map[string]any{
			"pagination": map[string]any{"total": 1},
			"history": []map[string]any{{
				"id":         run.ID,
				"scan_uuid":  fmt.Sprintf("uuid-%d", run.ID),
				"status":     run.Status,
				"time_start": run.TimeEnd.Add(-time.Hour).Unix(),
				"time_end":   run.TimeEnd.Unix(),
			}},
		})
	case len(parts) == 3 && parts[2] == "export" && r.Method == http.MethodPost:
		writeJSON(w, map[string]any{"file": run.ID})
	case len(parts) == 5 && parts[4] == "status":
		writeJSON(w, map[string]any{"status": "ready"})
	case len(parts) == 5 && parts[4] == "download":
		s.mu.Lock()
		s.downloads = append(s.downloads, parts[1])
		s.mu.Unlock()
		_, _ = w.Write(run.Export)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) serveUpload(w http.ResponseWriter, r *http.Request) {
	f, hdr, err := r.FormFile("Filedata")
	if err != nil {
		writeSC(w, http.StatusBadRequest, nil, 1, err.Error())
		return
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		writeSC(w, http.StatusBadRequest, nil, 1, err.Error())
		return
	}

	s.mu.Lock()
	s.nextFile++
	name := "upload-" + strconv.Itoa(s.nextFile)
	s.files[name] = data
	s.mu.Unlock()

	writeSC(w, http.StatusOK, map[string]string{"filename": name, "originalFilename": hdr.Filename}, 0, "")
}

func (s *Server) serveImport(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSC(w, http.StatusBadRequest, nil, 1, err.Error())
		return
	}
	name, _ := req["filename"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	if !ok {
		writeSC(w, http.StatusForbidden, nil, 1, "File "+name+" not found")
		return
	}
	s.imports = append(s.imports, Import{Request: req, Data: data})
	writeSC(w, http.StatusOK, "", 0, "")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeSC(w http.ResponseWriter, status int, response any, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":       "regular",
		"response":   response,
		"error_code": code,
		"error_msg":  msg,
		"warnings":   []any{},
		"timestamp":  time.Now().Unix(),
	})
}

// Start serves s on listenAddr (e.g., 127.0.0.1:20443) over plain HTTP and
// returns the bound address and a stop function that waits for shutdown.
func Start(listenAddr string, s *Server) (string, func(), error) {
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return "", nil, err
	}
	hs := &http.Server{Handler: s, ReadHeaderTimeout: 5 * time.Second}
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hs.Serve(ln)
	}()
	stop := func() {
		_ = hs.Close()
		<-done
	}
	return ln.Addr().String(), stop, nil
}
