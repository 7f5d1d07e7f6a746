package web

import (
	"net/http"

	"pursuit/internal/adapters/http/middleware"
)

// registerRoutes wires every handler onto the mux. Everything except the
// login page requires an authenticated session.
func registerRoutes(mux *http.ServeMux) {
	// Auth
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)

	// Dashboard
	mux.Handle("/dashboard", middleware.RequireAuth(http.HandlerFunc(handleDashboard)))

	// Contacts
	mux.Handle("/contacts", middleware.RequireAuth(http.HandlerFunc(handleContacts)))
	mux.Handle("/contacts/view", middleware.RequireAuth(http.HandlerFunc(handleContactView)))
	mux.Handle("/contacts/edit", middleware.RequireAuth(http.HandlerFunc(handleContactEdit)))
	mux.Handle("/contacts/delete", middleware.RequireAuth(http.HandlerFunc(handleContactDelete)))

	// Interviews
	mux.Handle("/interviews", middleware.RequireAuth(http.HandlerFunc(handleInterviews)))
	mux.Handle("/interviews/complete", middleware.RequireAuth(http.HandlerFunc(handleInterviewComplete)))
	mux.Handle("/interviews/outcome", middleware.RequireAuth(http.HandlerFunc(handleInterviewOutcome)))
	mux.Handle("/interviews/delete", middleware.RequireAuth(http.HandlerFunc(handleInterviewDelete)))

	// Referrals
	mux.Handle("/referrals", middleware.RequireAuth(http.HandlerFunc(handleReferrals)))
	mux.Handle("/referrals/advance", middleware.RequireAuth(http.HandlerFunc(handleReferralAdvance)))
	mux.Handle("/referrals/delete", middleware.RequireAuth(http.HandlerFunc(handleReferralDelete)))

	// Follow-ups
	mux.Handle("/followups/due", middleware.RequireAuth(http.HandlerFunc(handleFollowUpsDue)))
	mux.Handle("/followups/record", middleware.RequireAuth(http.HandlerFunc(handleFollowUpRecord)))
	mux.Handle("/followups/send", middleware.RequireAuth(http.HandlerFunc(handleFollowUpSend)))

	// Pipeline and export
	mux.Handle("/pipeline", middleware.RequireAuth(http.HandlerFunc(handlePipeline)))
	mux.Handle("/export", middleware.RequireAuth(http.HandlerFunc(handleExport)))
}
