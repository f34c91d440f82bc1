package api

import (
	"github.com/flowspace/flowspace-backend/service"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(svc *service.Service) *routeHandlers {
	return &routeHandlers{
		accountHandler: newAccountHandler(svc),
		projectHandler: newProjectHandler(svc),
		flowHandler:    newFlowHandler(svc),
		imageHandler:   newImageHandler(svc),
	}
}
