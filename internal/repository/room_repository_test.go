package repository_test

import (
	"testing"

	"github.com/BarenJ/AplikasiPanti/internal/database/dbtest"
	"github.com/BarenJ/AplikasiPanti/internal/model"
	"github.com/BarenJ/AplikasiPanti/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestDecrementOccupantsFloorsAtZero(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `rooms` SET `current_occupants`=CASE WHEN current_occupants > 0 THEN current_occupants - 1 ELSE 0 END WHERE id = \\?").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repository.NewRoomRepository(db).DecrementOccupants(3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDForUpdateLocksRow(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "room_name", "room_type", "capacity", "current_occupants", "status"}).
		AddRow(2, "Kenari", "shared", 2, 1, "available")
	mock.ExpectQuery("SELECT \\* FROM `rooms` WHERE `rooms`.`id` = \\? ORDER BY `rooms`.`id` LIMIT .+ FOR UPDATE").
		WillReturnRows(rows)

	room, err := repository.NewRoomRepository(db).FindByIDForUpdate(2)
	require.NoError(t, err)
	assert.Equal(t, "Kenari", room.RoomName)
	assert.Equal(t, 2, room.Capacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingRoom(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `rooms` WHERE `rooms`.`id` = \\?").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repository.NewRoomRepository(db).Delete(99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentCountsAndOccupants(t *testing.T) {
	db := dbtest.New(t)
	kenari := model.Room{RoomName: "Kenari", RoomType: model.RoomShared, Capacity: 2, Status: model.RoomAvailable}
	require.NoError(t, db.Create(&kenari).Error)

	insertResident(t, db, "R-001")
	insertResident(t, db, "R-002")
	insertResident(t, db, "R-003")
	require.NoError(t, db.Model(&model.Resident{}).Where("resident_id IN ?", []string{"R-001", "R-002"}).Update("room_id", kenari.ID).Error)
	require.NoError(t, db.Model(&model.Resident{}).Where("resident_id = ?", "R-002").Update("status", model.ResidentKeluar).Error)

	rooms := repository.NewRoomRepository(db)
	counts, err := rooms.ResidentCounts()
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{kenari.ID: 2}, counts)

	active, err := rooms.Occupants(model.ResidentAktif)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Penghuni R-001", active[0].Name)

	n, err := rooms.CountResidents(kenari.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
