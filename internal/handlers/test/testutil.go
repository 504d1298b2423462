package test

import (
	"testing"

	"hanoibak/internal/handlers"
	"hanoibak/mocks"

	"go.uber.org/mock/gomock"
)

// APIToken is the bearer token the test handler is configured with.
const APIToken = "test-api-token"

type ServiceMocks struct {
	BackupServiceMock *mocks.MockBackupService
}

func GetHandlerTest(t *testing.T) (m ServiceMocks, handler *handlers.BackupHandler, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)
	m = ServiceMocks{
		BackupServiceMock: mocks.NewMockBackupService(ctrl),
	}

	handler = handlers.New(m.BackupServiceMock, APIToken)

	return
}
