package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/julianstephens/lawnlog/internal/advisory"
	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/dayindex"
	"github.com/julianstephens/lawnlog/internal/growth"
	"github.com/julianstephens/lawnlog/internal/lawn"
	"github.com/julianstephens/lawnlog/internal/models"
	"github.com/julianstephens/lawnlog/internal/storage"
	"github.com/julianstephens/lawnlog/internal/utils"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// day resolves the optional ?date= override of today.
func (s *Server) day(w http.ResponseWriter, req *http.Request) (time.Time, bool) {
	t, err := s.svc.ParseDay(req.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return time.Time{}, false
	}
	return t, true
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.log.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) getDashboard(w http.ResponseWriter, req *http.Request) {
	now, ok := s.day(w, req)
	if !ok {
		return
	}
	d, err := s.svc.Dashboard(req.Context(), now)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type phaseResponse struct {
	Date  string      `json:"date"`
	Phase growth.Info `json:"phase"`
	Tip   string      `json:"tip"`
}

func (s *Server) getPhase(w http.ResponseWriter, req *http.Request) {
	now, ok := s.day(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, phaseResponse{
		Date:  now.Format(constants.DateFormat),
		Phase: growth.Classify(now),
		Tip:   growth.QuickTip(now),
	})
}

func (s *Server) getNextStep(w http.ResponseWriter, req *http.Request) {
	now, ok := s.day(w, req)
	if !ok {
		return
	}
	step, err := s.svc.NextStep(now)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

func (s *Server) getSchedule(w http.ResponseWriter, req *http.Request) {
	now, ok := s.day(w, req)
	if !ok {
		return
	}
	entries, err := s.svc.Schedule(now)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) toggleTask(w http.ResponseWriter, req *http.Request) {
	now, ok := s.day(w, req)
	if !ok {
		return
	}
	key := mux.Vars(req)["key"]
	done, err := s.svc.ToggleTask(key, now)
	if errors.Is(err, lawn.ErrUnknownTask) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": key, "done": done})
}

type adviceResponse struct {
	Weather models.WeatherSnapshot `json:"weather"`
	Advice  advisory.Result        `json:"advice"`
}

func (s *Server) getAdvice(w http.ResponseWriter, req *http.Request) {
	weather, result, err := s.svc.Advice(req.Context())
	if err != nil {
		s.log.Warn("weather unavailable", "error", err)
		writeError(w, http.StatusServiceUnavailable, "weather unavailable: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, adviceResponse{Weather: weather, Advice: result})
}

type calendarDay struct {
	Date       string                `json:"date"`
	Categories []models.ActivityType `json:"categories"`
	More       int                   `json:"more,omitempty"`
}

type calendarResponse struct {
	Month string           `json:"month"`
	Weeks [][]*calendarDay `json:"weeks"`
}

func (s *Server) getCalendar(w http.ResponseWriter, req *http.Request) {
	var month time.Time
	if m := req.URL.Query().Get("month"); m != "" {
		loc, err := s.svc.Location()
		if err != nil {
			s.internalError(w, err)
			return
		}
		month, err = utils.ParseMonthInLocation(m, loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month (expected YYYY-MM)")
			return
		}
	} else {
		today, ok := s.day(w, req)
		if !ok {
			return
		}
		month = utils.StartOfMonth(today)
	}

	idx, err := s.svc.MonthIndex(month)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildCalendar(month, idx))
}

func buildCalendar(month time.Time, idx dayindex.Index) calendarResponse {
	resp := calendarResponse{Month: month.Format(constants.MonthFormat)}
	for _, week := range dayindex.MonthGrid(month) {
		row := make([]*calendarDay, len(week))
		for i, d := range week {
			if d.IsZero() {
				continue
			}
			sample := idx.Sample(d)
			row[i] = &calendarDay{
				Date:       dayindex.Key(d),
				Categories: sample,
				More:       len(idx.Categories(d)) - len(sample),
			}
		}
		resp.Weeks = append(resp.Weeks, row)
	}
	return resp
}

func (s *Server) getStats(w http.ResponseWriter, req *http.Request) {
	now, ok := s.day(w, req)
	if !ok {
		return
	}
	cadence, err := s.svc.Cadence(now)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cadence)
}

func (s *Server) listActivities(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	for _, d := range []string{from, to} {
		if d != "" && !utils.ValidateDateFormat(d) {
			writeError(w, http.StatusBadRequest, "invalid date (expected YYYY-MM-DD)")
			return
		}
	}
	includeDeleted := q.Get("include_deleted") == "true"

	var acts []models.Activity
	var err error
	if from == "" && to == "" {
		acts, err = s.svc.Store.GetAllActivities(includeDeleted)
	} else {
		if to == "" {
			to = "9999-12-31"
		}
		acts, err = s.svc.Store.GetActivities(from, to, includeDeleted)
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	if acts == nil {
		acts = []models.Activity{}
	}
	writeJSON(w, http.StatusOK, acts)
}

type createActivityRequest struct {
	Type  string `json:"type"`
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

func (s *Server) createActivity(w http.ResponseWriter, req *http.Request) {
	var body createActivityRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	typ, err := models.ParseActivityType(body.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Date != "" && !utils.ValidateDateFormat(body.Date) {
		writeError(w, http.StatusBadRequest, "invalid date (expected YYYY-MM-DD)")
		return
	}
	a, err := s.svc.LogActivity(typ, body.Date, body.Notes)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) deleteActivity(w http.ResponseWriter, req *http.Request) {
	s.softDelete(w, mux.Vars(req)["id"], s.svc.Store.DeleteActivity)
}

func (s *Server) restoreActivity(w http.ResponseWriter, req *http.Request) {
	s.softDelete(w, mux.Vars(req)["id"], s.svc.Store.RestoreActivity)
}

func (s *Server) softDelete(w http.ResponseWriter, id string, op func(string) error) {
	err := op(id)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrAlreadyDeleted), errors.Is(err, storage.ErrNotDeleted):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.internalError(w, err)
	}
}
