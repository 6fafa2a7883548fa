package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/birikio/birikio/internal/billing"
	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/env"
	"github.com/birikio/birikio/internal/model"
	"github.com/birikio/birikio/internal/route/alert"
	"github.com/birikio/birikio/internal/route/api"
	"github.com/birikio/birikio/internal/route/asset"
	"github.com/birikio/birikio/internal/route/auth"
	billingroute "github.com/birikio/birikio/internal/route/billing"
	"github.com/birikio/birikio/internal/route/dashboard"
	"github.com/birikio/birikio/internal/route/history"
	"github.com/birikio/birikio/internal/route/settings"
	"github.com/birikio/birikio/internal/session"
	"github.com/birikio/birikio/internal/snapshot"
	"github.com/birikio/birikio/internal/store"
	"github.com/birikio/birikio/internal/template"
	"github.com/birikio/birikio/pkg/log"
)

type routeHandler = func(*database.Conn, http.ResponseWriter, *http.Request)

func connectHandler(conn *database.Conn, handler routeHandler) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		handler(conn, writer, request)
	}
}

func handleIndex(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var user model.User
	found, err := session.LoadUserFromSession(conn, request, &user)

	if err != nil {
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	if found {
		dashboard.HandleDashboard(conn, writer, request)
	} else {
		http.Redirect(writer, request, "/login", http.StatusFound)
	}
}

func main() {
	env.LoadEnvironmentVariables()
	session.InitSessionStorage()
	template.Init()

	conn, err := database.Connect()

	if err != nil {
		log.Errorf("connection error: %s", err)
		os.Exit(1)
	}

	defer conn.Close()

	snapshotConn, err := snapshot.Connect()

	if err != nil {
		// The wealth chart is the only thing that needs ClickHouse,
		// so the server still runs without it.
		log.Warnf("snapshot history unavailable: %s", err)
		snapshotConn = nil
	}

	billingService := &billing.Service{
		Store:    store.New(conn),
		Provider: billing.NewStripeProvider(env.Require("STRIPE_SECRET_KEY")),
		NotFound: store.IsNotFound,
	}

	dashboard.Init(billingService, snapshotConn)
	asset.Init(billingService)
	alert.Init(billingService)
	billingroute.Init(billingService)

	router := mux.NewRouter().StrictSlash(true)

	router.HandleFunc("/", connectHandler(conn, handleIndex)).Methods("GET")
	router.HandleFunc("/login", auth.HandleViewLoginForm).Methods("GET")
	router.HandleFunc("/login", connectHandler(conn, auth.HandleLogin)).Methods("POST")
	router.HandleFunc("/logout", auth.HandleLogout).Methods("GET", "POST")
	router.HandleFunc("/unlock", connectHandler(conn, auth.HandleViewUnlockForm)).Methods("GET")
	router.HandleFunc("/unlock", connectHandler(conn, auth.HandleUnlock)).Methods("POST")

	router.HandleFunc("/asset", connectHandler(conn, asset.HandleAssetList)).Methods("GET")
	router.HandleFunc("/asset", connectHandler(conn, asset.HandleSubmitAsset)).Methods("POST")
	router.HandleFunc("/asset/new", connectHandler(conn, asset.HandleViewNewAssetForm)).Methods("GET")
	router.HandleFunc("/asset/{id}", connectHandler(conn, asset.HandleViewAssetForm)).Methods("GET")
	router.HandleFunc("/asset/{id}", connectHandler(conn, asset.HandleUpdateAsset)).Methods("POST")
	router.HandleFunc("/asset/{id}", connectHandler(conn, asset.HandleDeleteAsset)).Methods("DELETE")
	router.HandleFunc("/asset/{id}/sell", connectHandler(conn, asset.HandleSellAsset)).Methods("POST")

	router.HandleFunc("/alert", connectHandler(conn, alert.HandleAlertList)).Methods("GET")
	router.HandleFunc("/alert", connectHandler(conn, alert.HandleSubmitAlert)).Methods("POST")
	router.HandleFunc("/alert/{id}/toggle", connectHandler(conn, alert.HandleToggleAlert)).Methods("POST")
	router.HandleFunc("/alert/{id}", connectHandler(conn, alert.HandleDeleteAlert)).Methods("DELETE")

	router.HandleFunc("/history", connectHandler(conn, history.HandleHistory)).Methods("GET")

	router.HandleFunc("/settings", connectHandler(conn, settings.HandleViewSettings)).Methods("GET")
	router.HandleFunc("/settings", connectHandler(conn, settings.HandleUpdateSettings)).Methods("POST")

	router.HandleFunc("/pro", connectHandler(conn, billingroute.HandleViewProPage)).Methods("GET")
	router.HandleFunc("/billing/checkout", connectHandler(conn, billingroute.HandleCheckout)).Methods("POST")
	router.HandleFunc("/billing/cancel", connectHandler(conn, billingroute.HandleCancel)).Methods("POST")
	router.HandleFunc("/payment/success", connectHandler(conn, billingroute.HandlePaymentReturn)).Methods("GET")

	router.Handle("/api/asset", api.HandleAssetList(conn)).Methods("GET")
	router.Handle("/api/portfolio", api.HandlePortfolio(conn)).Methods("GET")

	fileServer := http.FileServer(http.Dir("./static/"))
	router.PathPrefix("/static/").
		Handler(http.StripPrefix("/static/", fileServer))

	server := http.Server{
		Addr:    ":" + env.Default("PORT", "8000"),
		Handler: router,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("server error: %s", err)
			os.Exit(1)
		}
	}()

	log.Info("Server started")
	<-done

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Server shut down failed: %+v", err)
		os.Exit(1)
	}

	log.Info("Server shut down successfully")
}
