package contract

import "github.com/alexanderramin/scurve/internal/app"

type StatusRequest = app.StatusRequest

func NewStatusRequest() StatusRequest {
	return app.NewStatusRequest()
}

type PackageStatusView = app.PackageStatusView

type StatusSummary = app.StatusSummary

type StatusResponse = app.StatusResponse

type StatusErrorCode = app.StatusErrorCode

const (
	StatusErrInvalidScope StatusErrorCode = app.StatusErrInvalidScope
)

type StatusError = app.StatusError
