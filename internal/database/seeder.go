package database

import (
	"fmt"

	"github.com/BarenJ/AplikasiPanti/internal/model"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var activityTypes = []model.ActivityType{
	{Name: "Kegiatan Rutin", Category: model.ActivityRoutine, ColorCode: "#007bff", Icon: "fa-calendar-check"},
	{Name: "Konsumsi Obat", Category: model.ActivityMedical, ColorCode: "#dc3545", Icon: "fa-pills"},
	{Name: "Pemeriksaan Medis", Category: model.ActivityMedical, ColorCode: "#17a2b8", Icon: "fa-stethoscope"},
	{Name: "Kunjungan Keluarga", Category: model.ActivityVisit, ColorCode: "#28a745", Icon: "fa-users"},
	{Name: "Kegiatan Khusus", Category: model.ActivitySpecial, ColorCode: "#ffc107", Icon: "fa-star"},
	{Name: "Makan", Category: model.ActivityRoutine, ColorCode: "#fd7e14", Icon: "fa-utensils"},
	{Name: "Istirahat", Category: model.ActivityRoutine, ColorCode: "#6f42c1", Icon: "fa-bed"},
	{Name: "Fisioterapi", Category: model.ActivityMedical, ColorCode: "#20c997", Icon: "fa-hands-helping"},
	{Name: "Konseling", Category: model.ActivityMedical, ColorCode: "#e83e8c", Icon: "fa-comments"},
}

var donationCategories = []model.DonationCategory{
	{Name: "Donasi Umum", Type: model.CategoryIncome, Description: "Donasi dari masyarakat umum"},
	{Name: "Donasi Keluarga", Type: model.CategoryIncome, Description: "Donasi dari keluarga penghuni"},
	{Name: "Donasi Yayasan", Type: model.CategoryIncome, Description: "Donasi dari yayasan/organisasi"},
	{Name: "Donasi Perusahaan", Type: model.CategoryIncome, Description: "Donasi dari perusahaan"},
	{Name: "Bantuan Pemerintah", Type: model.CategoryIncome, Description: "Bantuan dari pemerintah"},
	{Name: "Lainnya (Pemasukan)", Type: model.CategoryIncome, Description: "Pemasukan lainnya"},
	{Name: "Medis & Obat-obatan", Type: model.CategoryExpense, Description: "Biaya pengobatan dan obat"},
	{Name: "Makanan & Konsumsi", Type: model.CategoryExpense, Description: "Biaya makanan sehari-hari"},
	{Name: "Gaji Staff", Type: model.CategoryExpense, Description: "Gaji pegawai dan perawat"},
	{Name: "Utilitas", Type: model.CategoryExpense, Description: "Listrik, air, gas, internet"},
	{Name: "Perawatan Gedung", Type: model.CategoryExpense, Description: "Perbaikan dan perawatan"},
	{Name: "Transportasi", Type: model.CategoryExpense, Description: "Biaya transportasi"},
	{Name: "Administrasi", Type: model.CategoryExpense, Description: "Biaya administrasi"},
	{Name: "Lainnya (Pengeluaran)", Type: model.CategoryExpense, Description: "Pengeluaran lainnya"},
}

var defaultRooms = []model.Room{
	{RoomName: "Merpati", RoomType: model.RoomPrivate, Capacity: 1, Notes: "Kamar dengan AC dan kamar mandi dalam"},
	{RoomName: "Kakatua", RoomType: model.RoomPrivate, Capacity: 1, Notes: "Kamar dengan jendela besar dan taman view"},
	{RoomName: "Elang", RoomType: model.RoomPrivate, Capacity: 1, Notes: "Kamar untuk lansia dengan kebutuhan khusus"},
	{RoomName: "Kenari", RoomType: model.RoomShared, Capacity: 2, Notes: "Kamar bersama dengan 2 tempat tidur"},
	{RoomName: "Cendrawasih", RoomType: model.RoomShared, Capacity: 2, Notes: "Kamar bersama dengan fasilitas lengkap"},
	{RoomName: "Jalak", RoomType: model.RoomPrivate, Capacity: 1, Notes: "Kamar standar dengan ventilasi baik"},
	{RoomName: "Kutilang", RoomType: model.RoomPrivate, Capacity: 1, Notes: "Kamar nyaman dengan akses mudah"},
	{RoomName: "Murai", RoomType: model.RoomSpecial, Capacity: 1, Notes: "Kamar untuk perawatan intensif"},
	{RoomName: "Pipit", RoomType: model.RoomShared, Capacity: 2, Notes: "Kamar ekonomi untuk 2 orang"},
	{RoomName: "Perkutut", RoomType: model.RoomPrivate, Capacity: 1, Notes: "Kamar dengan akses ke teras"},
}

type seedUser struct {
	user     model.User
	password string
}

var defaultUsers = []seedUser{
	{model.User{Username: "admin", FullName: "Administrator Utama", Role: model.RoleAdmin, Email: "admin@pantiwk.com", IsActive: true}, "admin123"},
	{model.User{Username: "staff", FullName: "Staff Demo", Role: model.RoleStaff, Email: "staff@pantiwk.com", IsActive: true}, "staff123"},
}

// SeedAll mengisi data referensi dengan kebijakan insert-if-absent berdasarkan kunci unik:
// baris yang sudah ada tidak pernah diduplikasi atau ditimpa.
func SeedAll(db *gorm.DB, log *zap.Logger) error {
	// 1. Jenis aktivitas
	for _, a := range activityTypes {
		if err := db.Where(model.ActivityType{Name: a.Name}).FirstOrCreate(&a).Error; err != nil {
			return fmt.Errorf("seed activity type %q: %w", a.Name, err)
		}
	}
	log.Info("jenis aktivitas siap", zap.Int("count", len(activityTypes)))

	// 2. Kategori donasi
	for _, c := range donationCategories {
		if err := db.Where(model.DonationCategory{Name: c.Name}).FirstOrCreate(&c).Error; err != nil {
			return fmt.Errorf("seed donation category %q: %w", c.Name, err)
		}
	}
	log.Info("kategori donasi siap", zap.Int("count", len(donationCategories)))

	// 3. Kamar default
	for _, r := range defaultRooms {
		r.Status = model.RoomAvailable
		if err := db.Where(model.Room{RoomName: r.RoomName}).FirstOrCreate(&r).Error; err != nil {
			return fmt.Errorf("seed room %q: %w", r.RoomName, err)
		}
	}
	log.Info("kamar default siap", zap.Int("count", len(defaultRooms)))

	// 4. Akun admin & staff demo
	for _, s := range defaultUsers {
		var count int64
		if err := db.Model(&model.User{}).Where("username = ?", s.user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			log.Info("user sudah ada", zap.String("username", s.user.Username))
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u := s.user
		u.PasswordHash = string(hashed)
		if err := db.Create(&u).Error; err != nil {
			return fmt.Errorf("seed user %q: %w", u.Username, err)
		}
		log.Info("user default dibuat", zap.String("username", u.Username), zap.String("role", u.Role))
	}

	return nil
}
