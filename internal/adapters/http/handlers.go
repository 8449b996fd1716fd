package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/csrf"

	"techfest/internal/adapters/storage"
	"techfest/internal/application/listutil"
	"techfest/internal/application/orchestrators"
	"techfest/internal/application/projections"
	domain "techfest/internal/domain/participant"
)

const templatesDir = "internal/adapters/http/templates"

var (
	participantSortKeys   = []string{"name", "year", "branch", "event", "date"}
	participantFilterKeys = []string{"branch", "event", "year"}
)

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// renderTemplate renders the named page inside layout.html.
func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	funcMap := template.FuncMap{
		"csrfToken": func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"fmtDate": func(t interface{ Format(string) string }) string {
			return t.Format("Jan 2, 2006 15:04")
		},
		"paginationQuery": func(page int, lp listutil.ListParams) template.URL {
			q := fmt.Sprintf("page=%d&per_page=%d", page, lp.PerPage)
			if lp.Sort != "" {
				q += "&sort=" + lp.Sort + "&dir=" + lp.Dir
			}
			if lp.Search != "" {
				q += "&q=" + lp.Search
			}
			for key, v := range lp.Filters {
				q += "&" + key + "=" + v
			}
			return template.URL(q)
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
	}
}

// handleRegistrationPage handles GET / — the public sign-up form.
func (app *App) handleRegistrationPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	app.renderRegistrationPage(w, r, registrationPageData{
		Registered: r.URL.Query().Get("registered") == "1",
	})
}

// registrationPageData feeds register.html.
type registrationPageData struct {
	Registered bool
	Closed     bool
	Message    string
	Errors     map[string]string
	Values     orchestrators.RegisterParticipantInput
}

func (app *App) renderRegistrationPage(w http.ResponseWriter, r *http.Request, data registrationPageData) {
	now := app.Now()
	renderTemplate(w, r, "register.html", map[string]any{
		"EventName":     app.EventName,
		"EventInfo":     app.EventInfo,
		"Years":         domain.Years,
		"Closed":        data.Closed || app.Deadline.Closed(now),
		"DaysRemaining": app.Deadline.DaysRemaining(now),
		"Registered":    data.Registered,
		"Message":       data.Message,
		"Errors":        data.Errors,
		"Values":        data.Values,
	})
}

// handleRegister handles POST /register for both form and JSON submissions.
func (app *App) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	input := orchestrators.RegisterParticipantInput{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Name = r.FormValue("name")
		input.Email = r.FormValue("email")
		input.Phone = r.FormValue("phone")
		input.Year = r.FormValue("year")
		input.Branch = r.FormValue("branch")
		input.Event = r.FormValue("event")
		input.Experience = r.FormValue("experience")
		input.Comments = r.FormValue("comments")
	}

	registered, err := orchestrators.ExecuteRegisterParticipant(ctx, input, orchestrators.RegisterParticipantDeps{
		ParticipantStore: app.ParticipantStore,
		Deadline:         app.Deadline,
		GenerateID:       app.GenerateID,
		Now:              app.Now,
		Sender:           app.Sender,
		EmailFrom:        app.EmailFrom,
		EventName:        app.EventName,
	})
	if err != nil {
		app.respondRegistrationError(w, r, isHTML, input, err)
		return
	}

	app.Metrics.IncrementRegistrations()
	if isHTML {
		http.Redirect(w, r, "/?registered=1", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusCreated, registered)
}

// respondRegistrationError maps the registration error taxonomy onto HTTP
// responses, re-rendering the form for browser submissions.
func (app *App) respondRegistrationError(w http.ResponseWriter, r *http.Request, isHTML bool, input orchestrators.RegisterParticipantInput, err error) {
	var verr domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrRegistrationClosed):
		app.Metrics.IncrementFailures("closed")
		if isHTML {
			app.renderRegistrationPage(w, r, registrationPageData{Closed: true, Message: "Registration is now closed!", Values: input})
			return
		}
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "registration is closed"})

	case errors.As(err, &verr):
		app.Metrics.IncrementFailures("validation")
		if isHTML {
			fieldErrors := make(map[string]string, len(verr))
			for _, fe := range verr {
				fieldErrors[fe.Field] = fe.Reason
			}
			app.renderRegistrationPage(w, r, registrationPageData{Errors: fieldErrors, Values: input})
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": verr})

	case errors.Is(err, domain.ErrDuplicateEmail):
		app.Metrics.IncrementFailures("duplicate_email")
		if isHTML {
			app.renderRegistrationPage(w, r, registrationPageData{Message: "This email is already registered!", Values: input})
			return
		}
		writeJSON(w, http.StatusConflict, map[string]string{"error": "email is already registered"})

	default:
		app.Metrics.IncrementFailures("storage")
		internalError(w, err)
	}
}

// handleAdminDashboard handles GET /admin — the searchable participant table.
func (app *App) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	lp := listutil.ParseListParams(r.URL.Query(), participantSortKeys, participantFilterKeys)

	result, err := projections.QueryListParticipants(ctx, projections.ListParticipantsQuery{
		Params: projections.QueryParams{
			Search:  lp.Search,
			Branch:  lp.Filters["branch"],
			Event:   lp.Filters["event"],
			Year:    lp.Filters["year"],
			SortKey: lp.Sort,
			Dir:     lp.Dir,
			Page:    lp.Page,
			PerPage: lp.PerPage,
		},
	}, projections.ListParticipantsDeps{ParticipantStore: app.ParticipantStore})
	if err != nil {
		app.respondStorageError(w, err)
		return
	}

	stats, err := projections.QueryGetStatistics(ctx, projections.GetStatisticsDeps{
		ParticipantStore: app.ParticipantStore,
		Deadline:         app.Deadline,
		Now:              app.Now,
	})
	if err != nil {
		app.respondStorageError(w, err)
		return
	}
	app.Metrics.SetParticipants(stats.Total)

	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin.html", map[string]any{
			"EventName":      app.EventName,
			"Participants":   result.Items,
			"PageInfo":       result.PageInfo,
			"Params":         lp,
			"Branches":       result.Branches,
			"Events":         result.Events,
			"YearOptions":    domain.Years,
			"Stats":          stats,
			"PerPageOptions": listutil.PerPageOptions,
			"HasFilters":     lp.Search != "" || len(lp.Filters) > 0,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items":      result.Items,
		"totalCount": result.TotalCount,
		"page":       result.PageInfo.Page,
		"totalPages": result.PageInfo.TotalPages,
	})
}

// handleDeleteParticipant handles POST /admin/participants/delete.
// The confirmation dialog lives in the dashboard; by the time the request
// arrives the decision is made.
func (app *App) handleDeleteParticipant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.DeleteParticipantInput{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.ID = r.FormValue("id")
	}

	err := orchestrators.ExecuteDeleteParticipant(r.Context(), input, orchestrators.DeleteParticipantDeps{
		ParticipantStore: app.ParticipantStore,
	})
	if err != nil {
		app.respondStorageError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleClearAll handles POST /admin/clear — the explicit bulk wipe.
func (app *App) handleClearAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	err := orchestrators.ExecuteClearParticipants(r.Context(), orchestrators.DeleteParticipantDeps{
		ParticipantStore: app.ParticipantStore,
	})
	if err != nil {
		app.respondStorageError(w, err)
		return
	}
	app.Metrics.SetParticipants(0)

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExport handles GET /admin/export — streams the JSON snapshot as a
// download.
func (app *App) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snap, err := orchestrators.ExecuteExportSnapshot(r.Context(), orchestrators.ExportSnapshotInput{
		EventName: app.EventName,
	}, orchestrators.ExportSnapshotDeps{
		ParticipantStore: app.ParticipantStore,
		Now:              app.Now,
	})
	if err != nil {
		app.respondStorageError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", snap.Filename))
	w.Write(snap.Payload)
}

// handleStats handles GET /api/stats — the dashboard summary numbers.
func (app *App) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	stats, err := projections.QueryGetStatistics(r.Context(), projections.GetStatisticsDeps{
		ParticipantStore: app.ParticipantStore,
		Deadline:         app.Deadline,
		Now:              app.Now,
	})
	if err != nil {
		app.respondStorageError(w, err)
		return
	}
	app.Metrics.SetParticipants(stats.Total)

	writeJSON(w, http.StatusOK, map[string]int{
		"total":         stats.Total,
		"today":         stats.Today,
		"daysRemaining": stats.DaysRemaining,
	})
}

// respondStorageError distinguishes corrupt data from plain failures so an
// operator sees the real problem instead of a generic 500 log line.
func (app *App) respondStorageError(w http.ResponseWriter, err error) {
	var corrupt *storage.CorruptDataError
	if errors.As(err, &corrupt) {
		slog.Error("corrupt_participant_data", "key", corrupt.Key, "reason", corrupt.Reason)
		http.Error(w, "stored participant data is corrupt; manual intervention required", http.StatusInternalServerError)
		return
	}
	internalError(w, err)
}
