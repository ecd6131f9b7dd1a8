package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"

	"tourapp/internal/repositories"
	"tourapp/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService menghasilkan PDF manifest kendaraan & rooming list hotel.
type DocsService struct {
	VehicleRepo repositories.VehicleRepository
	HotelRepo   repositories.HotelRepository
	RequestID   string
}

// GenerateVehicleManifest membuat PDF daftar penumpang satu kendaraan.
func (s DocsService) GenerateVehicleManifest(vehicleID int64) ([]byte, string, error) {
	vehicle, err := s.VehicleRepo.GetByID(vehicleID)
	if err != nil {
		return nil, "", err
	}
	occupants, err := s.VehicleRepo.ListOccupants(vehicleID)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "docs", "generate_manifest", fmt.Sprintf("vehicle_id=%d occupants=%d", vehicleID, len(occupants)))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Manifest Kendaraan", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "MANIFEST KENDARAAN")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Kendaraan : %s (%s)", safe(vehicle.VehicleCode, "-"), safe(vehicle.PlateNumber, "-")),
		fmt.Sprintf("Driver    : %s %s", safe(vehicle.DriverName, "-"), phoneSuffix(vehicle.DriverPhone)),
		fmt.Sprintf("Ketua     : %s", safe(vehicle.LeaderName, "-")),
		fmt.Sprintf("Kapasitas : %d (terisi %d)", vehicle.Capacity, vehicle.Occupied),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(12, 8, "No", "1", 0, "C", false, 0, "")
	pdf.CellFormat(98, 8, "Nama Peserta", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, "No HP", "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for i, o := range occupants {
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(98, 7, safe(o.Name, "-"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, safe(o.Phone, "-"), "1", 1, "L", false, 0, "")
	}
	if len(occupants) == 0 {
		pdf.CellFormat(160, 7, "Belum ada peserta ditempatkan", "1", 1, "C", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Manifest ini dicetak dari data penempatan terbaru. Periksa ulang sebelum keberangkatan.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("MANIFEST_%s.pdf", safeFilenamePart(vehicle.VehicleCode))
	return buf.Bytes(), filename, nil
}

// GenerateRoomingList membuat PDF daftar kamar + penghuni satu hotel.
func (s DocsService) GenerateRoomingList(hotelID int64) ([]byte, string, error) {
	hotel, err := s.HotelRepo.GetByID(hotelID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", sql.ErrNoRows
		}
		return nil, "", err
	}
	entries, err := s.HotelRepo.RoomingList(hotelID)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "docs", "generate_rooming_list", fmt.Sprintf("hotel_id=%d entries=%d", hotelID, len(entries)))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Rooming List", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "ROOMING LIST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Hotel    : "+safe(hotel.Name, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Alamat   : "+safe(hotel.Address, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Menginap : %s s/d %s", safe(hotel.CheckinDate, "-"), safe(hotel.CheckoutDate, "-")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(30, 8, "Kamar", "1", 0, "L", false, 0, "")
	pdf.CellFormat(90, 8, "Peserta", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Tanggal", "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, e := range entries {
		pdf.CellFormat(30, 7, safe(e.RoomNumber, "-"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, 7, safe(e.TravelerName, "-"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, safe(e.AllotDate, "-"), "1", 1, "L", false, 0, "")
	}
	if len(entries) == 0 {
		pdf.CellFormat(160, 7, "Belum ada penempatan kamar", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ROOMING_%s.pdf", safeFilenamePart(hotel.Name))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}

func phoneSuffix(phone string) string {
	if strings.TrimSpace(phone) == "" {
		return ""
	}
	return "(" + strings.TrimSpace(phone) + ")"
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "X"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "*", "", "?", "", "\"", "", "<", "", ">", "", "|", "")
	return replacer.Replace(s)
}
