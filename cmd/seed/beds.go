package main

import (
	"fmt"
	"time"

	"bed-admission-service/internal/domain/entity"

	"github.com/brianvoe/gofakeit/v7"
	"gorm.io/datatypes"
)

type seedWard struct {
	Name      string
	Type      entity.BedType
	FirstRoom int
}

var seedWards = []seedWard{
	{Name: "ICU", Type: entity.BedTypeICU, FirstRoom: 101},
	{Name: "Cardiology", Type: entity.BedTypeGeneral, FirstRoom: 201},
	{Name: "General Medicine", Type: entity.BedTypeGeneral, FirstRoom: 301},
	{Name: "Surgery", Type: entity.BedTypeGeneral, FirstRoom: 401},
	{Name: "Private Wing", Type: entity.BedTypePrivate, FirstRoom: 501},
}

var equipmentByType = map[entity.BedType][]string{
	entity.BedTypeICU:     {"Ventilator", "Cardiac Monitor", "Infusion Pump", "Defibrillator", "Oxygen Supply"},
	entity.BedTypeGeneral: {"Oxygen Supply", "Cardiac Monitor", "IV Stand", "Suction Unit"},
	entity.BedTypePrivate: {"Cardiac Monitor", "Oxygen Supply", "Television", "Isolation Curtain"},
}

var bedLetters = []string{"A", "B", "C", "D"}

// planBeds lays out rooms per ward with two to four beds each. Beds are never
// Occupied since no admissions are seeded.
func planBeds(faker *gofakeit.Faker, roomsPerWard int, now time.Time) []entity.Bed {
	var beds []entity.Bed

	for _, ward := range seedWards {
		for r := 0; r < roomsPerWard; r++ {
			room := fmt.Sprintf("%d", ward.FirstRoom+r)
			bedsInRoom := faker.Number(2, len(bedLetters))

			for _, letter := range bedLetters[:bedsInRoom] {
				beds = append(beds, entity.Bed{
					Ward:        ward.Name,
					RoomNumber:  room,
					BedNumber:   letter,
					Type:        ward.Type,
					Status:      seedStatus(faker),
					Equipment:   seedEquipment(faker, ward.Type),
					IsActive:    true,
					LastUpdated: now,
				})
			}
		}
	}
	return beds
}

func seedStatus(faker *gofakeit.Faker) entity.BedStatus {
	switch n := faker.Number(1, 100); {
	case n <= 80:
		return entity.BedStatusAvailable
	case n <= 90:
		return entity.BedStatusCleaning
	case n <= 95:
		return entity.BedStatusReserved
	default:
		return entity.BedStatusMaintenance
	}
}

func seedEquipment(faker *gofakeit.Faker, bedType entity.BedType) datatypes.JSONSlice[entity.BedEquipment] {
	names := equipmentByType[bedType]
	count := faker.Number(1, len(names))

	equipment := make(datatypes.JSONSlice[entity.BedEquipment], 0, count)
	for _, name := range names[:count] {
		status := entity.EquipmentWorking
		if faker.Number(1, 10) == 1 {
			status = entity.EquipmentMaintenance
		}
		equipment = append(equipment, entity.BedEquipment{Name: name, Status: status})
	}
	return equipment
}
