package service

import (
	"testing"

	"hanoibak/internal/config"
	"hanoibak/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type allMocks struct {
	mockDataManager *mocks.MockDataManager
	mockRunRepo     *mocks.MockRunRepo
	mockSlotRepo    *mocks.MockSlotRepo
	mockMounter     *mocks.MockMounter
	mockSyncer      *mocks.MockSyncer
	mockDisk        *mocks.MockDisk
	mockNotifier    *mocks.MockNotifier
}

func newServiceTestMock(t *testing.T, cfg *config.Config) (m allMocks, svc *backupService, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	runRepo := mocks.NewMockRunRepo(ctrl)
	dm.EXPECT().Runs().Return(runRepo).AnyTimes()

	slotRepo := mocks.NewMockSlotRepo(ctrl)
	dm.EXPECT().Slots().Return(slotRepo).AnyTimes()

	mounter := mocks.NewMockMounter(ctrl)
	syncer := mocks.NewMockSyncer(ctrl)
	disk := mocks.NewMockDisk(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)

	m = allMocks{
		mockDataManager: dm,
		mockRunRepo:     runRepo,
		mockSlotRepo:    slotRepo,
		mockMounter:     mounter,
		mockSyncer:      syncer,
		mockDisk:        disk,
		mockNotifier:    notifier,
	}

	svc = newBackup(dm, mounter, syncer, disk, notifier, cfg)
	require.NotNil(t, svc)

	return
}
