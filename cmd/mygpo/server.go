package main

import (
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/mxpv/mygpo/pkg/config"
)

type Server struct {
	http.Server
}

func NewServer(cfg config.Server, storage http.FileSystem) *Server {
	port := cfg.Port
	if port == 0 {
		port = 8080
	}

	bindAddress := cfg.BindAddress
	if bindAddress == "*" {
		bindAddress = ""
	}

	srv := Server{}

	srv.Addr = fmt.Sprintf("%s:%d", bindAddress, port)
	log.Debugf("using address: %s", srv.Addr)

	prefix := "/"
	if path := strings.Trim(cfg.Path, "/"); path != "" {
		prefix = "/" + path + "/"
	}

	mux := http.NewServeMux()
	mux.Handle(prefix, http.StripPrefix(strings.TrimSuffix(prefix, "/"), http.FileServer(storage)))

	log.Debugf("handle path: %s", prefix)
	srv.Handler = mux

	return &srv
}
