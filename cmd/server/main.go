package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"

	"github.com/jrsteele09/go-product-admin/internal/config"
	"github.com/jrsteele09/go-product-admin/productapi"
	"github.com/jrsteele09/go-product-admin/server"
	"github.com/jrsteele09/go-product-admin/session"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()

	c := config.New()
	displayAppname(c.GetAppName())

	sessions, err := newSessionManager(c)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}

	api := productapi.New(c.GetAPIBaseURL())

	httpServer := &http.Server{Addr: c.GetPort(), Handler: server.New(c, sessions, api)}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func newSessionManager(c config.Config) (*session.Manager, error) {
	switch c.GetSessionBackend() {
	case "sqlite":
		repo, err := session.OpenSQLiteRepo(c.GetSessionDatabasePath())
		if err != nil {
			return nil, err
		}
		return session.NewManager(repo), nil
	default:
		return session.NewManager(session.NewInMemoryRepo()), nil
	}
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
