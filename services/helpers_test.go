package services

import (
	"io"
	"net/http"

	"airhotel-web/models"

	"github.com/goccy/go-json"
)

func decodeBody(req *http.Request, target interface{}) error {
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

type recordedToast struct {
	severity string
	message  string
}

type fakeNotifier struct {
	toasts []recordedToast
}

func (n *fakeNotifier) Success(message string) models.Toast {
	n.toasts = append(n.toasts, recordedToast{"success", message})
	return models.Toast{Message: message, Severity: "success"}
}

func (n *fakeNotifier) Error(message string) models.Toast {
	n.toasts = append(n.toasts, recordedToast{"error", message})
	return models.Toast{Message: message, Severity: "error"}
}
