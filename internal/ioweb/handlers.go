package ioweb

import (
	"io"
	"net/http"
	"strconv"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/breeding"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/attribute"
	"github.com/go-chi/chi/v5"
)

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	kind, err := breeding.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := breeding.Decode(kind, body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.store.Create(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, res)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	kind, id, err := kindAndID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.store.Get(r.Context(), kind, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// update replaces all settable fields of the record. Absent fields are
// reset to their zero value.
func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	kind, id, err := kindAndID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := breeding.Decode(kind, body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.store.Update(r.Context(), id, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// patch changes the fields named in the body and keeps the others.
func (s *Server) patch(w http.ResponseWriter, r *http.Request) {
	kind, id, err := kindAndID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	current, err := s.store.Get(r.Context(), kind, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := breeding.Patch(kind, current, body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.store.Update(r.Context(), id, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	kind, id, err := kindAndID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err = s.store.Delete(r.Context(), kind, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) cachedAttributions(w http.ResponseWriter, r *http.Request) {
	var f breeding.AttributionFilter
	err := breeding.DecodeFilter("cached_attributions", query(r), &f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.store.CachedAttributions(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) attributionsView(w http.ResponseWriter, r *http.Request) {
	var f breeding.AttributionFilter
	err := breeding.DecodeFilter("attributions_view", query(r), &f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.store.AttributionsView(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) marksView(w http.ResponseWriter, r *http.Request) {
	var f breeding.MarkFilter
	err := breeding.DecodeFilter("marks_view", query(r), &f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.store.MarksView(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) refreshAttributionsView(
	w http.ResponseWriter,
	r *http.Request,
) {
	res, err := s.store.RefreshAttributionsView(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.countRefresh("attributions_view", res)
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) refreshMarksView(w http.ResponseWriter, r *http.Request) {
	res, err := s.store.RefreshMarksView(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.countRefresh("marks_view", res)
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) countRefresh(view string, res *breeding.RefreshResult) {
	for action, n := range map[string]int{
		"inserted":  res.Inserted,
		"updated":   res.Updated,
		"deleted":   res.Deleted,
		"unchanged": res.Unchanged,
	} {
		s.metrics.refresh.WithLabelValues(view, action).Add(float64(n))
	}
}

func (s *Server) rebuildCache(w http.ResponseWriter, r *http.Request) {
	n, err := s.store.RebuildCache(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"rows": n})
}

func (s *Server) nextFreeLabelID(w http.ResponseWriter, r *http.Request) {
	res, err := s.store.NextFreeLabelID(r.Context(), r.URL.Query().Get("seed"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"label_id": res})
}

func (s *Server) canChangeDataType(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	dt, err := attribute.ParseDataType(r.URL.Query().Get("data_type"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ok, err := s.store.CanChangeDataType(r.Context(), id, dt)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"can_change": ok})
}

func kindAndID(r *http.Request) (breeding.Kind, uint, error) {
	kind, err := breeding.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		return kind, 0, err
	}
	id, err := parseID(chi.URLParam(r, "id"))
	return kind, id, err
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, BadIDError(s)
	}
	return uint(id), nil
}

func readBody(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	bs, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		return nil, BodyError(err)
	}
	res, err := breeding.DecodeJSON(bs)
	if err != nil || res == nil {
		return nil, BodyError(err)
	}
	return res, nil
}

// query takes the first value of every query parameter.
func query(r *http.Request) map[string]any {
	res := make(map[string]any)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			res[k] = v[0]
		}
	}
	return res
}
