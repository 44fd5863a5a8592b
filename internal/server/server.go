// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"github.com/sirupsen/logrus"

	"ethiowork-backend/internal/auth"
	"ethiowork-backend/internal/blob"
	"ethiowork-backend/internal/database"
	"ethiowork-backend/internal/mailer"
	"ethiowork-backend/internal/service"
	"ethiowork-backend/internal/store"
)

// MyServer bundles everything the route handlers need. DB may be nil
// when the in-memory backend is active.
type MyServer struct {
	DB         *database.DBInstance
	Service    *service.Service
	Identity   store.IdentityStore
	Storage    blob.Storage
	Revocation auth.JwtRevocationStore
	Mailer     mailer.Mailer
	Log        *logrus.Logger
}

// NewHTTPServer wraps the route handler in an http.Server with sane
// timeouts. Port comes from the PORT environment variable.
func (s *MyServer) NewHTTPServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
