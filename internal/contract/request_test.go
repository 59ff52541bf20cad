package contract

import (
	"testing"

	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewCurveRequest_SetsScopeAndID(t *testing.T) {
	req := NewCurveRequest(domain.ScopePackage, "pkg-1")

	assert.Equal(t, domain.ScopePackage, req.Scope)
	assert.Equal(t, "pkg-1", req.ID)
	assert.Nil(t, req.On)
	assert.Nil(t, req.Location)
}

func TestNewStatusRequest_SetsDefaults(t *testing.T) {
	req := NewStatusRequest()

	assert.Nil(t, req.Now)
	assert.Nil(t, req.PackageScope)
	assert.Nil(t, req.Location)
}

func TestNewManualEntryRequest_PreservesPercent(t *testing.T) {
	// Out-of-range values are preserved; the service layer validates.
	req := NewManualEntryRequest("svc", 120)

	assert.Equal(t, "svc", req.ServiceID)
	assert.Equal(t, 120.0, req.Percent)
	assert.Nil(t, req.Day)
	assert.Nil(t, req.At)
}

func TestStatusError_Error(t *testing.T) {
	err := &StatusError{Code: StatusErrInvalidScope, Message: "unknown package x"}
	assert.Equal(t, "INVALID_SCOPE: unknown package x", err.Error())
}
