package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

func sendError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{Success: false, Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	out := make([]TableSummary, 0, s.bank.Len())
	for _, name := range s.bank.Names() {
		t, _ := s.bank.Table(name)
		out = append(out, TableSummary{Entry: name, Param: t.Name, Entries: t.Len()})
	}
	sendSuccess(w, out)
}

func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	entry := chi.URLParam(r, "entry")
	t, ok := s.bank.Table(entry)
	if !ok {
		sendError(w, "table not found: "+entry, http.StatusNotFound)
		return
	}

	detail := TableDetail{
		Entry: entry,
		Param: t.Name,
		Magic: t.Magic(),
	}
	for _, f := range t.Def().Fields {
		detail.Fields = append(detail.Fields, f.Name)
	}
	for _, id := range t.IDs() {
		e, _ := t.Get(id)
		detail.Rows = append(detail.Rows, RowSummary{ID: id, Name: e.Name})
	}
	sendSuccess(w, detail)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	entry := chi.URLParam(r, "entry")
	t, ok := s.bank.Table(entry)
	if !ok {
		sendError(w, "table not found: "+entry, http.StatusNotFound)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		sendError(w, "invalid entry id", http.StatusBadRequest)
		return
	}
	e, ok := t.Get(int32(id))
	if !ok {
		sendError(w, "entry not found", http.StatusNotFound)
		return
	}

	detail := EntryDetail{ID: int32(id), Name: e.Name}
	for i := 0; i < e.Len(); i++ {
		name, v, err := e.At(i)
		if err != nil {
			sendError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		detail.Fields = append(detail.Fields, FieldValue{Name: name, Value: v})
	}
	sendSuccess(w, detail)
}
