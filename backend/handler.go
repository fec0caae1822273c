// Package backend is the HTTP boundary of the registration service.
package backend

import (
	log "github.com/hashicorp/go-hclog"

	"github.com/regdesk/regdesk/usecase"
)

type Handler struct {
	logger  log.Logger
	service *usecase.Service
}

func NewHandler(service *usecase.Service, parentLogger log.Logger) *Handler {
	return &Handler{
		logger:  parentLogger.Named("backend"),
		service: service,
	}
}
