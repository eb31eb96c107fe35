package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/BarenJ/AplikasiPanti/internal/database/dbtest"
	"github.com/BarenJ/AplikasiPanti/internal/model"
	"github.com/BarenJ/AplikasiPanti/internal/notifier"
	"github.com/BarenJ/AplikasiPanti/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type fakeFiles struct {
	mu      sync.Mutex
	removed []string
}

func (f *fakeFiles) Remove(paths ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range paths {
		if p != "" {
			f.removed = append(f.removed, p)
		}
	}
}

func (f *fakeFiles) Removed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.removed...)
}

type fakeNotifier struct {
	mu     sync.Mutex
	alerts []notifier.Alert
	err    error
	// release, bila diisi, menahan pengiriman sampai ditutup
	release chan struct{}
}

func (n *fakeNotifier) NotifyGuardian(ctx context.Context, alert notifier.Alert) error {
	if n.release != nil {
		select {
		case <-n.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
	return n.err
}

func (n *fakeNotifier) Alerts() []notifier.Alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifier.Alert(nil), n.alerts...)
}

// fixture menyatukan database seeded dan semua usecase yang memakainya.
type fixture struct {
	db           *gorm.DB
	files        *fakeFiles
	notifier     *fakeNotifier
	residents    *ResidentUsecase
	rooms        *RoomUsecase
	records      *RecordUsecase
	transactions *TransactionUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Seeded(t)
	log := zap.NewNop()
	files := &fakeFiles{}
	notif := &fakeNotifier{}

	residentRepo := repository.NewResidentRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	recordRepo := repository.NewDailyRecordRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	seqRepo := repository.NewSequenceRepository(db)

	f := &fixture{
		db:           db,
		files:        files,
		notifier:     notif,
		residents:    NewResidentUsecase(db, residentRepo, roomRepo, recordRepo, seqRepo, files, log),
		rooms:        NewRoomUsecase(db, roomRepo, residentRepo, log),
		records:      NewRecordUsecase(recordRepo, residentRepo, referenceRepo, notif, log),
		transactions: NewTransactionUsecase(db, repository.NewTransactionRepository(db), referenceRepo, seqRepo, files, log),
	}
	f.residents.now = fixedClock
	f.records.now = fixedClock
	f.transactions.now = fixedClock
	return f
}

func residentInput(name string) ResidentInput {
	return ResidentInput{
		Name:      name,
		Gender:    model.GenderMale,
		BirthDate: "1950-01-10",
		JoinDate:  "2024-01-02",
		Condition: model.ConditionSehat,
	}
}

func (f *fixture) createResident(t *testing.T, in ResidentInput) *CreatedResident {
	t.Helper()
	created, err := f.residents.Create(context.Background(), in)
	require.NoError(t, err)
	return created
}

func (f *fixture) room(t *testing.T, name string) model.Room {
	t.Helper()
	var room model.Room
	require.NoError(t, f.db.Where("room_name = ?", name).First(&room).Error)
	return room
}

func (f *fixture) resident(t *testing.T, id uint) model.Resident {
	t.Helper()
	var res model.Resident
	require.NoError(t, f.db.First(&res, id).Error)
	return res
}

func (f *fixture) count(t *testing.T, value interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	tx := f.db.Model(value)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	require.NoError(t, tx.Count(&n).Error)
	return n
}

func (f *fixture) activity(t *testing.T, name string) model.ActivityType {
	t.Helper()
	var act model.ActivityType
	require.NoError(t, f.db.Where("name = ?", name).First(&act).Error)
	return act
}

func (f *fixture) category(t *testing.T, name string) model.DonationCategory {
	t.Helper()
	var cat model.DonationCategory
	require.NoError(t, f.db.Where("name = ?", name).First(&cat).Error)
	return cat
}

func uintPtr(v uint) *uint { return &v }
