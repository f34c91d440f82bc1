package desk

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/flowspace/flowspace-backend/errs"
	"github.com/flowspace/flowspace-backend/models"
	"github.com/flowspace/flowspace-backend/service"
)

type registerPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateEmailPayload struct {
	Email string `json:"email"`
}

type projectIDPayload struct {
	ProjectID uuid.UUID `json:"projectId"`
}

type updateProjectPayload struct {
	ProjectID uuid.UUID `json:"projectId"`
	service.UpdateProjectInput
}

type saveFlowPayload struct {
	ProjectID uuid.UUID `json:"projectId"`
	Flow      string    `json:"flow"`
}

type uploadImagePayload struct {
	NodeID    string `json:"nodeId"`
	ImageData string `json:"imageData"`
}

// dispatch executes one command and builds its reply.
func (b *Bridge) dispatch(req request) response {
	data, err := b.execute(req)
	if err != nil {
		return errorResponse(req.ID, err)
	}
	return response{ID: req.ID, OK: true, Data: data}
}

func (b *Bridge) execute(req request) (any, error) {
	switch req.Command {
	case "register":
		var p registerPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return b.svc.Register(p.Username, p.Email, p.Password)

	case "login":
		var p loginPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return b.svc.Login(p.Email, p.Password)
	}

	// Everything below requires the acting user.
	user, err := b.svc.Authenticate(req.Token)
	if err != nil {
		return nil, err
	}

	switch req.Command {
	case "getProfile":
		return user.Public(), nil

	case "updateEmail":
		var p updateEmailPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return b.svc.UpdateEmail(user.ID, p.Email)

	case "deleteAccount":
		if err := b.svc.DeleteAccount(user.ID); err != nil {
			return nil, err
		}
		return map[string]string{"message": "Account deleted successfully"}, nil

	case "listProjects":
		return b.svc.ListProjects(user.ID)

	case "createProject":
		var p service.CreateProjectInput
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return b.svc.CreateProject(user.ID, p)

	case "getProject":
		var p projectIDPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return b.svc.GetProject(user.ID, p.ProjectID)

	case "updateProject":
		var p updateProjectPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return b.svc.UpdateProject(user.ID, p.ProjectID, p.UpdateProjectInput)

	case "deleteProject":
		var p projectIDPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		if err := b.svc.DeleteProject(user.ID, p.ProjectID); err != nil {
			return nil, err
		}
		return map[string]string{"message": "Project deleted successfully"}, nil

	case "getFlow":
		var p projectIDPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		var flow *models.ProjectFlow
		flow, err = b.svc.GetFlow(user.ID, p.ProjectID)
		if err != nil {
			return nil, err
		}
		if flow == nil {
			return nil, nil
		}
		return flow, nil

	case "saveFlow":
		var p saveFlowPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		if err := b.svc.SaveFlow(user.ID, p.ProjectID, p.Flow); err != nil {
			return nil, err
		}
		return map[string]string{"message": "Flow saved successfully"}, nil

	case "uploadImage":
		var p uploadImagePayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return nil, err
		}
		if err := b.svc.UploadImage(user.ID, p.NodeID, p.ImageData); err != nil {
			return nil, err
		}
		return map[string]string{"message": "Image uploaded successfully", "data": p.ImageData}, nil
	}

	return nil, badRequest("unknown command: " + req.Command)
}

func decodePayload(raw json.RawMessage, into any) error {
	if len(raw) == 0 {
		return badRequest("missing payload")
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return badRequest("malformed payload")
	}
	return nil
}

func badRequest(message string) error {
	return errs.NewValidationError("payload", message)
}

func errorResponse(id int64, err error) response {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		return response{ID: id, OK: false, Error: &commandError{
			Message: "internal error",
			Status:  http.StatusInternalServerError,
		}}
	}

	message := apiErr.Error()
	if apiErr.StatusCode >= http.StatusInternalServerError {
		// Internal detail stays on the server side of the bridge.
		message = "internal error"
	}
	return response{ID: id, OK: false, Error: &commandError{
		Message: message,
		Status:  apiErr.StatusCode,
		Field:   apiErr.Field,
	}}
}
