package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"pursuit/internal/adapters/http/middleware"
	contactStoreImport "pursuit/internal/adapters/storage/contact"
	interviewStoreImport "pursuit/internal/adapters/storage/interview"
	referralStoreImport "pursuit/internal/adapters/storage/referral"
	"pursuit/internal/application/orchestrators"
	"pursuit/internal/application/projections"
	"pursuit/internal/domain/followup"
	referralDomain "pursuit/internal/domain/referral"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
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

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	email := ""
	if ok {
		email = sess.Email
	}

	funcMap := template.FuncMap{
		"currentEmail": func() string { return email },
		"isLoggedIn":   func() bool { return email != "" },
		"csrfToken":    func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"urgencyBadge": func(urgency string) string {
			switch urgency {
			case followup.UrgencyHigh:
				return "badge-high"
			case followup.UrgencyMedium:
				return "badge-medium"
			}
			return "badge-low"
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
		return
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// --- auth ---

func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// If already logged in, redirect to dashboard
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Email:    r.FormValue("Email"),
			Password: r.FormValue("Password"),
		}

		deps := orchestrators.LoginDeps{
			AccountStore: stores.AccountStore,
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		// Create session
		token, err := sessions.Create(result.AccountID, result.Email)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cookie, err := r.Cookie("pursuit_session")
	if err == nil {
		sessions.Delete(cookie.Value)
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// --- dashboard ---

// handleDashboard handles GET /dashboard
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetDashboard(r.Context(), dashboardDeps())
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "dashboard.html", result)
		return
	}
	writeJSON(w, result)
}

func dueActionsDeps() projections.GetDueActionsDeps {
	return projections.GetDueActionsDeps{
		ContactStore:   stores.ContactStore,
		InterviewStore: stores.InterviewStore,
		ReferralStore:  stores.ReferralStore,
		Now:            timeNow,
	}
}

func dashboardDeps() projections.GetDashboardDeps {
	return projections.GetDashboardDeps{
		DueActionsDeps: dueActionsDeps(),
		InterviewStore: stores.InterviewStore,
		ReferralStore:  stores.ReferralStore,
	}
}

// --- contacts ---

// handleContacts handles both GET (list) and POST (create) for /contacts
func handleContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method == "GET" {
		q := r.URL.Query()
		contacts, err := stores.ContactStore.List(ctx, contactStoreImport.ListFilter{
			Relationship: q.Get("relationship"),
			Company:      q.Get("company"),
			Search:       q.Get("q"),
		})
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTML {
			renderTemplate(w, r, "contacts.html", map[string]any{
				"Contacts": contacts,
				"Search":   q.Get("q"),
			})
			return
		}
		writeJSON(w, contacts)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.CreateContactInput{}

		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.Name = r.FormValue("Name")
			input.Email = r.FormValue("Email")
			input.Company = r.FormValue("Company")
			input.Position = r.FormValue("Position")
			input.Relationship = r.FormValue("Relationship")
			input.Notes = r.FormValue("Notes")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
		}

		c, err := orchestrators.ExecuteCreateContact(ctx, input, orchestrators.CreateContactDeps{
			ContactStore: stores.ContactStore,
			GenerateID:   generateID,
			Now:          timeNow,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if isHTML {
			http.Redirect(w, r, "/contacts", http.StatusSeeOther)
		} else {
			w.WriteHeader(http.StatusCreated)
			writeJSON(w, map[string]string{"id": c.ID})
		}
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleContactView handles GET /contacts/view?id= with the contact's
// engagement history and markdown notes.
func handleContactView(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	contactID := r.URL.Query().Get("id")
	if contactID == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	c, err := stores.ContactStore.GetByID(ctx, contactID)
	if err != nil {
		http.Error(w, "contact not found", http.StatusNotFound)
		return
	}

	interviews, err := stores.InterviewStore.List(ctx, interviewStoreImport.ListFilter{ContactID: contactID})
	if err != nil {
		internalError(w, err)
		return
	}
	referrals, err := stores.ReferralStore.List(ctx, referralStoreImport.ListFilter{ContactID: contactID})
	if err != nil {
		internalError(w, err)
		return
	}

	data := map[string]any{
		"Contact":    c,
		"Interviews": interviews,
		"Referrals":  referrals,
	}
	if isHTMLRequest(r) {
		renderTemplate(w, r, "contact_view.html", data)
		return
	}
	writeJSON(w, data)
}

// handleContactEdit handles POST /contacts/edit
func handleContactEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.EditContactInput{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.ContactID = r.FormValue("ContactID")
		input.Name = r.FormValue("Name")
		input.Email = r.FormValue("Email")
		input.Company = r.FormValue("Company")
		input.Position = r.FormValue("Position")
		input.Relationship = r.FormValue("Relationship")
		input.Notes = r.FormValue("Notes")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	_, err := orchestrators.ExecuteEditContact(r.Context(), input, orchestrators.EditContactDeps{
		ContactStore: stores.ContactStore,
		Now:          timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/contacts/view?id="+input.ContactID, http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleContactDelete handles POST /contacts/delete
func handleContactDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var contactID string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		contactID = r.FormValue("ContactID")
	} else {
		var body struct {
			ContactID string `json:"contact_id"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		contactID = body.ContactID
	}

	if err := orchestrators.ExecuteDeleteContact(r.Context(), contactID, orchestrators.DeleteContactDeps{
		ContactStore: stores.ContactStore,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/contacts", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// --- interviews ---

// handleInterviews handles both GET (list) and POST (schedule) for /interviews
func handleInterviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		q := r.URL.Query()
		interviews, err := stores.InterviewStore.List(ctx, interviewStoreImport.ListFilter{
			Status:    q.Get("status"),
			ContactID: q.Get("contact_id"),
		})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, interviews)
		return
	}

	if r.Method == "POST" {
		var body struct {
			ContactID   string `json:"contact_id"`
			Company     string `json:"company"`
			Position    string `json:"position"`
			Round       string `json:"round"`
			InterviewAt string `json:"interview_at"` // RFC 3339
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		input := orchestrators.ScheduleInterviewInput{
			ContactID: body.ContactID,
			Company:   body.Company,
			Position:  body.Position,
			Round:     body.Round,
		}
		if body.InterviewAt != "" {
			at, err := time.Parse(time.RFC3339, body.InterviewAt)
			if err != nil {
				http.Error(w, "interview_at must be RFC 3339", http.StatusBadRequest)
				return
			}
			input.InterviewAt = at
		}

		iv, err := orchestrators.ExecuteScheduleInterview(ctx, input, orchestrators.ScheduleInterviewDeps{
			InterviewStore: stores.InterviewStore,
			GenerateID:     generateID,
			Now:            timeNow,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]string{"id": iv.ID})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleInterviewComplete handles POST /interviews/complete
func handleInterviewComplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		InterviewID string `json:"interview_id"`
		InterviewAt string `json:"interview_at"` // optional backfill, RFC 3339
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	input := orchestrators.CompleteInterviewInput{InterviewID: body.InterviewID}
	if body.InterviewAt != "" {
		at, err := time.Parse(time.RFC3339, body.InterviewAt)
		if err != nil {
			http.Error(w, "interview_at must be RFC 3339", http.StatusBadRequest)
			return
		}
		input.InterviewAt = at
	}

	iv, err := orchestrators.ExecuteCompleteInterview(r.Context(), input, orchestrators.CompleteInterviewDeps{
		InterviewStore: stores.InterviewStore,
		Now:            timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]string{"id": iv.ID, "status": iv.Status, "outcome": iv.Outcome})
}

// handleInterviewOutcome handles POST /interviews/outcome
func handleInterviewOutcome(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		InterviewID string `json:"interview_id"`
		Outcome     string `json:"outcome"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	iv, err := orchestrators.ExecuteRecordOutcome(r.Context(), orchestrators.RecordOutcomeInput{
		InterviewID: body.InterviewID,
		Outcome:     body.Outcome,
	}, orchestrators.RecordOutcomeDeps{
		InterviewStore: stores.InterviewStore,
		Now:            timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]string{"id": iv.ID, "outcome": iv.Outcome})
}

// handleInterviewDelete handles POST /interviews/delete
func handleInterviewDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		InterviewID string `json:"interview_id"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := orchestrators.ExecuteDeleteInterview(r.Context(), body.InterviewID, orchestrators.DeleteInterviewDeps{
		InterviewStore: stores.InterviewStore,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- referrals ---

// handleReferrals handles both GET (list) and POST (create) for /referrals
func handleReferrals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		q := r.URL.Query()
		referrals, err := stores.ReferralStore.List(ctx, referralStoreImport.ListFilter{
			Status:    q.Get("status"),
			ContactID: q.Get("contact_id"),
		})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, referrals)
		return
	}

	if r.Method == "POST" {
		var body struct {
			ContactID   string `json:"contact_id"`
			Company     string `json:"company"`
			Position    string `json:"position"`
			RequestDate string `json:"request_date"` // YYYY-MM-DD
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		input := orchestrators.CreateReferralInput{
			ContactID: body.ContactID,
			Company:   body.Company,
			Position:  body.Position,
		}
		if body.RequestDate != "" {
			d, err := time.Parse("2006-01-02", body.RequestDate)
			if err != nil {
				http.Error(w, "request_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			input.RequestDate = d
		}

		ref, err := orchestrators.ExecuteCreateReferral(ctx, input, orchestrators.CreateReferralDeps{
			ReferralStore: stores.ReferralStore,
			GenerateID:    generateID,
			Now:           timeNow,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]string{"id": ref.ID})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleReferralAdvance handles POST /referrals/advance
func handleReferralAdvance(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		ReferralID   string `json:"referral_id"`
		Target       string `json:"target"`
		FollowUpDate string `json:"follow_up_date"` // YYYY-MM-DD
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	input := orchestrators.AdvanceReferralInput{
		ReferralID: body.ReferralID,
		Target:     body.Target,
	}
	if body.FollowUpDate != "" {
		d, err := time.Parse("2006-01-02", body.FollowUpDate)
		if err != nil {
			http.Error(w, "follow_up_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		input.FollowUpDate = d
	}

	ref, err := orchestrators.ExecuteAdvanceReferral(r.Context(), input, orchestrators.AdvanceReferralDeps{
		ReferralStore: stores.ReferralStore,
		Now:           timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]string{"id": ref.ID, "status": ref.Status})
}

// handleReferralDelete handles POST /referrals/delete
func handleReferralDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		ReferralID string `json:"referral_id"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := orchestrators.ExecuteDeleteReferral(r.Context(), body.ReferralID, orchestrators.DeleteReferralDeps{
		ReferralStore: stores.ReferralStore,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- follow-ups ---

// handleFollowUpsDue handles GET /followups/due
func handleFollowUpsDue(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetDueActions(r.Context(), dueActionsDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleFollowUpRecord handles POST /followups/record
func handleFollowUpRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		EntityKind string `json:"entity_kind"`
		EntityID   string `json:"entity_id"`
		Action     string `json:"action"`
		Subkind    string `json:"subkind"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteRecordFollowUp(r.Context(), orchestrators.RecordFollowUpInput{
		EntityKind: body.EntityKind,
		EntityID:   body.EntityID,
		Action:     body.Action,
		Subkind:    body.Subkind,
	}, orchestrators.RecordFollowUpDeps{
		InterviewStore: stores.InterviewStore,
		ReferralStore:  stores.ReferralStore,
		Now:            timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleFollowUpSend handles POST /followups/send
func handleFollowUpSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		EntityKind string `json:"entity_kind"`
		EntityID   string `json:"entity_id"`
		ContactID  string `json:"contact_id"`
		Action     string `json:"action"`
		Subkind    string `json:"subkind"`
		Subject    string `json:"subject"`
		Body       string `json:"body"` // markdown
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteSendFollowUp(r.Context(), orchestrators.SendFollowUpInput{
		EntityKind: body.EntityKind,
		EntityID:   body.EntityID,
		ContactID:  body.ContactID,
		Action:     body.Action,
		Subkind:    body.Subkind,
		Subject:    body.Subject,
		Body:       body.Body,
	}, orchestrators.SendFollowUpDeps{
		InterviewStore: stores.InterviewStore,
		ReferralStore:  stores.ReferralStore,
		ContactStore:   stores.ContactStore,
		Sender:         emailSender,
		From:           emailFromAddress,
		ReplyTo:        emailReplyTo,
		Now:            timeNow,
	})
	if err != nil {
		var de *followup.DispatchError
		if errors.As(err, &de) {
			http.Error(w, de.Error(), http.StatusBadGateway)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- pipeline and export ---

// handlePipeline handles GET /pipeline
func handlePipeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetPipeline(r.Context(), projections.GetPipelineDeps{
		InterviewStore: stores.InterviewStore,
		ReferralStore:  stores.ReferralStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "pipeline.html", map[string]any{
			"Pipeline":         result,
			"ReferralStatuses": referralDomain.ValidStatuses,
		})
		return
	}
	writeJSON(w, result)
}

// handleExport handles GET /export
func handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryExport(r.Context(), projections.ExportDeps{
		ContactStore:   stores.ContactStore,
		InterviewStore: stores.InterviewStore,
		ReferralStore:  stores.ReferralStore,
		Now:            timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="pursuit-export.json"`)
	writeJSON(w, result)
}
