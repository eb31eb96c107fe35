package usecase

import (
	"context"
	"testing"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"
	"github.com/BarenJ/AplikasiPanti/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertOccupancyInvariant: current_occupants setiap kamar sama dengan jumlah resident di kamar itu.
func assertOccupancyInvariant(t *testing.T, f *fixture) {
	t.Helper()
	var rooms []model.Room
	require.NoError(t, f.db.Find(&rooms).Error)
	for _, room := range rooms {
		n := f.count(t, &model.Resident{}, "room_id = ?", room.ID)
		assert.Equal(t, int(n), room.CurrentOccupants, "kamar %s", room.RoomName)
	}
}

func TestAssignAndReassignRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kenari := f.room(t, "Kenari")
	pipit := f.room(t, "Pipit")
	a := f.createResident(t, residentInput("Opa A"))
	b := f.createResident(t, residentInput("Opa B"))

	res, err := f.rooms.AssignRoom(ctx, a.ID, &kenari.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, res.RoomID)
	_, err = f.rooms.AssignRoom(ctx, b.ID, &kenari.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, f.room(t, "Kenari").CurrentOccupants)
	assertOccupancyInvariant(t, f)

	// pindah kamar: kamar asal diambil dari data resident
	_, err = f.rooms.AssignRoom(ctx, a.ID, &pipit.ID, &kenari.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.room(t, "Kenari").CurrentOccupants)
	assert.Equal(t, 1, f.room(t, "Pipit").CurrentOccupants)
	assertOccupancyInvariant(t, f)

	// lepas kamar
	_, err = f.rooms.AssignRoom(ctx, b.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, f.room(t, "Kenari").CurrentOccupants)
	assert.Nil(t, f.resident(t, b.ID).RoomID)
	assertOccupancyInvariant(t, f)
}

func TestAssignSameRoomTwiceDoesNotDoubleCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kenari := f.room(t, "Kenari")
	a := f.createResident(t, residentInput("Opa A"))

	for i := 0; i < 2; i++ {
		_, err := f.rooms.AssignRoom(ctx, a.ID, &kenari.ID, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, f.room(t, "Kenari").CurrentOccupants)
	assertOccupancyInvariant(t, f)
}

func TestAssignRoomWithWrongPreviousRoomUsesStoredRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kenari := f.room(t, "Kenari")
	pipit := f.room(t, "Pipit")
	merpati := f.room(t, "Merpati")
	a := f.createResident(t, residentInput("Opa A"))

	_, err := f.rooms.AssignRoom(ctx, a.ID, &kenari.ID, nil)
	require.NoError(t, err)

	// klien mengirim previous_room_id yang salah
	_, err = f.rooms.AssignRoom(ctx, a.ID, &pipit.ID, &merpati.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, f.room(t, "Kenari").CurrentOccupants)
	assert.Equal(t, 0, f.room(t, "Merpati").CurrentOccupants)
	assert.Equal(t, 1, f.room(t, "Pipit").CurrentOccupants)
	assertOccupancyInvariant(t, f)
}

func TestAssignRoomCapacityExceeded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	merpati := f.room(t, "Merpati")
	a := f.createResident(t, residentInput("Opa A"))
	b := f.createResident(t, residentInput("Opa B"))

	_, err := f.rooms.AssignRoom(ctx, a.ID, &merpati.ID, nil)
	require.NoError(t, err)

	_, err = f.rooms.AssignRoom(ctx, b.ID, &merpati.ID, nil)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindCapacityExceeded))
	assert.Nil(t, f.resident(t, b.ID).RoomID)
	assert.Equal(t, 1, f.room(t, "Merpati").CurrentOccupants)
}

func TestAssignRoomUnknownRoomOrResident(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.createResident(t, residentInput("Opa A"))

	_, err := f.rooms.AssignRoom(ctx, a.ID, uintPtr(999), nil)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	kenari := f.room(t, "Kenari")
	_, err = f.rooms.AssignRoom(ctx, 999, &kenari.ID, nil)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDeleteRoomWithResidentsIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kenari := f.room(t, "Kenari")
	in := residentInput("Opa A")
	in.RoomID = kenari.ID
	a := f.createResident(t, in)

	err := f.rooms.Delete(ctx, kenari.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	assert.Equal(t, 1, f.room(t, "Kenari").CurrentOccupants)
	require.NotNil(t, f.resident(t, a.ID).RoomID)
	assert.Equal(t, kenari.ID, *f.resident(t, a.ID).RoomID)
}

func TestDeleteRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	murai := f.room(t, "Murai")

	require.NoError(t, f.rooms.Delete(ctx, murai.ID))
	assert.Equal(t, int64(0), f.count(t, &model.Room{}, "room_name = ?", "Murai"))

	err := f.rooms.Delete(ctx, murai.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCreateRoom(t *testing.T) {
	f := newFixture(t)

	room, err := f.rooms.Create(RoomInput{RoomName: "Rajawali", RoomType: model.RoomShared, Capacity: 3})
	require.NoError(t, err)
	assert.Equal(t, model.RoomAvailable, room.Status)
	assert.Equal(t, 0, room.CurrentOccupants)

	_, err = f.rooms.Create(RoomInput{RoomName: "Rajawali", RoomType: model.RoomShared, Capacity: 2})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	_, err = f.rooms.Create(RoomInput{RoomName: "Nol", RoomType: model.RoomShared, Capacity: 0})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = f.rooms.Create(RoomInput{RoomName: "Aneh", RoomType: "suite", Capacity: 1})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestUpdateRoomCapacityBelowOccupants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kenari := f.room(t, "Kenari")
	for _, name := range []string{"Opa A", "Opa B"} {
		in := residentInput(name)
		in.RoomID = kenari.ID
		f.createResident(t, in)
	}

	_, err := f.rooms.Update(ctx, kenari.ID, RoomInput{RoomName: "Kenari", RoomType: model.RoomShared, Capacity: 1})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, 2, f.room(t, "Kenari").Capacity)

	room, err := f.rooms.Update(ctx, kenari.ID, RoomInput{RoomName: "Kenari Besar", RoomType: model.RoomShared, Capacity: 4, Notes: "diperluas"})
	require.NoError(t, err)
	assert.Equal(t, 4, room.Capacity)
	assert.Equal(t, "Kenari Besar", f.room(t, "Kenari Besar").RoomName)
	assert.Equal(t, 2, f.room(t, "Kenari Besar").CurrentOccupants)

	_, err = f.rooms.Update(ctx, kenari.ID, RoomInput{RoomName: "Pipit", RoomType: model.RoomShared, Capacity: 4})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestListRoomsAndAvailability(t *testing.T) {
	f := newFixture(t)
	merpati := f.room(t, "Merpati")
	in := residentInput("Opa Merpati")
	in.RoomID = merpati.ID
	f.createResident(t, in)

	rooms, err := f.rooms.List()
	require.NoError(t, err)
	require.Len(t, rooms, 10)
	for _, v := range rooms {
		if v.RoomName == "Merpati" {
			assert.Equal(t, int64(1), v.ResidentCount)
			assert.Equal(t, []string{"Opa Merpati"}, v.ResidentNames)
			assert.Equal(t, int64(0), v.AvailableBeds)
			assert.False(t, v.IsAvailable)
		}
	}

	available, err := f.rooms.ListAvailable()
	require.NoError(t, err)
	assert.Len(t, available, 9)
}

func TestOccupancyReportCountsActiveResidentsOnly(t *testing.T) {
	f := newFixture(t)
	kenari := f.room(t, "Kenari")
	active := residentInput("Opa Aktif")
	active.RoomID = kenari.ID
	f.createResident(t, active)
	gone := residentInput("Opa Keluar")
	gone.RoomID = kenari.ID
	gone.Status = model.ResidentKeluar
	f.createResident(t, gone)

	report, err := f.rooms.OccupancyReport()
	require.NoError(t, err)
	for _, row := range report {
		switch row.RoomName {
		case "Kenari":
			assert.Equal(t, int64(1), row.CurrentOccupants)
			assert.Equal(t, "partially_occupied", row.OccupancyStatus)
			assert.Equal(t, []string{"Opa Aktif"}, row.ResidentNames)
		case "Merpati":
			assert.Equal(t, "empty", row.OccupancyStatus)
		}
	}
}

func TestReconcileOccupancyFixesDrift(t *testing.T) {
	f := newFixture(t)
	kenari := f.room(t, "Kenari")
	in := residentInput("Opa A")
	in.RoomID = kenari.ID
	f.createResident(t, in)

	// simulasikan drift dari penulisan di luar aplikasi
	require.NoError(t, f.db.Model(&model.Room{}).Where("id = ?", kenari.ID).Update("current_occupants", 5).Error)
	require.NoError(t, f.db.Model(&model.Room{}).Where("room_name = ?", "Murai").Update("current_occupants", 1).Error)

	corrections, err := f.rooms.ReconcileOccupancy(context.Background())
	require.NoError(t, err)
	require.Len(t, corrections, 2)
	for _, c := range corrections {
		switch c.RoomName {
		case "Kenari":
			assert.Equal(t, 5, c.Stored)
			assert.Equal(t, 1, c.Actual)
		case "Murai":
			assert.Equal(t, 1, c.Stored)
			assert.Equal(t, 0, c.Actual)
		default:
			t.Fatalf("koreksi tak terduga untuk kamar %s", c.RoomName)
		}
	}
	assertOccupancyInvariant(t, f)

	again, err := f.rooms.ReconcileOccupancy(context.Background())
	require.NoError(t, err)
	assert.Empty(t, again)
}
