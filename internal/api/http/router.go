package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Church       *ChurchHandler
	Verification *VerificationHandler
	Item         *ItemHandler
	Message      *MessageHandler
	Invitation   *InvitationHandler
	InviteCode   *InviteCodeHandler
	Ping         *PingHandler
	Notification *NotificationHandler
	Cron         *CronHandler
}

// NewRouter builds the full API surface. Routes fall into three tiers:
// public, bearer-token authenticated, and cron-secret guarded.
func NewRouter(h *Handlers, auth *AuthMiddleware, cron *CronMiddleware) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public
	api.HandleFunc("/auth/register", h.Auth.Register).Methods("POST")
	api.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	api.HandleFunc("/invitations/token/{token}", h.Invitation.LookupByToken).Methods("GET")
	api.HandleFunc("/invite-codes/{code}/scan", h.InviteCode.Scan).Methods("POST")

	// Profile
	api.HandleFunc("/me", auth.Require(h.User.GetProfile)).Methods("GET")
	api.HandleFunc("/me", auth.Require(h.User.UpdateProfile)).Methods("PUT")

	// Churches
	api.HandleFunc("/churches", auth.Require(h.Church.Register)).Methods("POST")
	api.HandleFunc("/churches", auth.Require(h.Church.List)).Methods("GET")
	api.HandleFunc("/churches/{id}", auth.Require(h.Church.Get)).Methods("GET")
	api.HandleFunc("/churches/{id}", auth.Require(h.Church.Update)).Methods("PUT")
	api.HandleFunc("/churches/{id}/approve", auth.Require(h.Church.Approve)).Methods("POST")
	api.HandleFunc("/churches/{id}/reject", auth.Require(h.Church.Reject)).Methods("POST")
	api.HandleFunc("/churches/{id}/join", auth.Require(h.Church.Join)).Methods("POST")

	// Verification
	api.HandleFunc("/verifications/pending", auth.Require(h.Verification.PendingQueue)).Methods("GET")
	api.HandleFunc("/verifications/vouch", auth.Require(h.Verification.Vouch)).Methods("POST")
	api.HandleFunc("/verifications/progress", auth.Require(h.Verification.Progress)).Methods("GET")
	api.HandleFunc("/verifications/{id}/reject", auth.Require(h.Verification.Reject)).Methods("POST")

	// Items
	api.HandleFunc("/items", auth.Require(h.Item.Add)).Methods("POST")
	api.HandleFunc("/items/{id}", auth.Require(h.Item.Get)).Methods("GET")
	api.HandleFunc("/items/{id}", auth.Require(h.Item.Delete)).Methods("DELETE")
	api.HandleFunc("/items/{id}/claim", auth.Require(h.Item.Claim)).Methods("POST")
	api.HandleFunc("/items/{id}/unclaim", auth.Require(h.Item.Unclaim)).Methods("POST")
	api.HandleFunc("/items/{id}/complete", auth.Require(h.Item.Complete)).Methods("POST")
	api.HandleFunc("/items/{id}/offer", auth.Require(h.Item.SetOffer)).Methods("PUT")
	api.HandleFunc("/items/{id}/requests", auth.Require(h.Item.Request)).Methods("POST")
	api.HandleFunc("/item-requests/{id}/received", auth.Require(h.Item.MarkRequestReceived)).Methods("POST")
	api.HandleFunc("/item-requests/{id}/cancel", auth.Require(h.Item.CancelRequest)).Methods("POST")
	api.HandleFunc("/churches/{id}/items", auth.Require(h.Item.ListByChurch)).Methods("GET")

	// Messages
	api.HandleFunc("/churches/{id}/messages", auth.Require(h.Message.Create)).Methods("POST")
	api.HandleFunc("/churches/{id}/messages", auth.Require(h.Message.ListByChurch)).Methods("GET")
	api.HandleFunc("/churches/{id}/shares", auth.Require(h.Message.CreateShare)).Methods("POST")
	api.HandleFunc("/messages/{id}", auth.Require(h.Message.Get)).Methods("GET")
	api.HandleFunc("/messages/{id}", auth.Require(h.Message.Delete)).Methods("DELETE")
	api.HandleFunc("/messages/{id}/publish", auth.Require(h.Message.Publish)).Methods("POST")
	api.HandleFunc("/messages/{id}/archive", auth.Require(h.Message.Archive)).Methods("POST")

	// Church invitations
	api.HandleFunc("/invitations", auth.Require(h.Invitation.Invite)).Methods("POST")
	api.HandleFunc("/invitations/{id}", auth.Require(h.Invitation.Get)).Methods("GET")
	api.HandleFunc("/invitations/{id}/resend", auth.Require(h.Invitation.Resend)).Methods("POST")
	api.HandleFunc("/invitations/{id}/cancel", auth.Require(h.Invitation.Cancel)).Methods("POST")
	api.HandleFunc("/invitations/{id}/analytics", auth.Require(h.Invitation.Analytics)).Methods("GET")

	// Invite codes
	api.HandleFunc("/invite-codes/mine", auth.Require(h.InviteCode.Mine)).Methods("GET")
	api.HandleFunc("/invite-codes/expire", auth.Require(h.InviteCode.Expire)).Methods("POST")

	// Pings
	api.HandleFunc("/pings", auth.Require(h.Ping.Send)).Methods("POST")
	api.HandleFunc("/pings/{id}", auth.Require(h.Ping.Get)).Methods("GET")
	api.HandleFunc("/pings/{id}/accept", auth.Require(h.Ping.Accept)).Methods("POST")
	api.HandleFunc("/pings/{id}/reject", auth.Require(h.Ping.Reject)).Methods("POST")

	// Notifications
	api.HandleFunc("/notifications", auth.Require(h.Notification.List)).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", auth.Require(h.Notification.MarkAsRead)).Methods("POST")

	// Cron-triggered sweeps
	api.HandleFunc("/cron/sweeps", cron.Require(h.Cron.RunAllSweeps)).Methods("POST")
	api.HandleFunc("/cron/sweeps/{entity}", cron.Require(h.Cron.RunSweep)).Methods("POST")

	return r
}
