package converter

import (
	"bed-admission-service/internal/allocator"
	"bed-admission-service/internal/delivery/dto"
	"bed-admission-service/internal/domain/entity"
)

// BedToResponse converts a Bed entity to BedResponse DTO
func BedToResponse(bed *entity.Bed) *dto.BedResponse {
	if bed == nil {
		return nil
	}

	equipment := make([]dto.EquipmentResponse, len(bed.Equipment))
	for i, eq := range bed.Equipment {
		equipment[i] = dto.EquipmentResponse{
			Name:   eq.Name,
			Status: string(eq.Status),
		}
	}

	return &dto.BedResponse{
		ID:                bed.ID,
		Ward:              bed.Ward,
		RoomNumber:        bed.RoomNumber,
		BedNumber:         bed.BedNumber,
		Type:              string(bed.Type),
		Status:            string(bed.Status),
		AssignedPatientID: bed.AssignedPatientID,
		Equipment:         equipment,
		Notes:             bed.Notes,
		IsActive:          bed.IsActive,
		LastUpdated:       bed.LastUpdated,
		CreatedAt:         bed.CreatedAt,
		UpdatedAt:         bed.UpdatedAt,
	}
}

// BedsToResponses converts a slice of Bed entities to slice of BedResponse DTOs
func BedsToResponses(beds []entity.Bed) []dto.BedResponse {
	responses := make([]dto.BedResponse, len(beds))
	for i := range beds {
		responses[i] = *BedToResponse(&beds[i])
	}
	return responses
}

// EquipmentFromRequests converts equipment request DTOs to entities
func EquipmentFromRequests(reqs []dto.EquipmentRequest) []entity.BedEquipment {
	equipment := make([]entity.BedEquipment, len(reqs))
	for i, req := range reqs {
		equipment[i] = entity.BedEquipment{
			Name:   req.Name,
			Status: entity.EquipmentStatus(req.Status),
		}
	}
	return equipment
}

// BedsToMapping groups beds as ward -> room -> beds, preserving input order
func BedsToMapping(beds []entity.Bed) dto.BedMappingResponse {
	mapping := dto.BedMappingResponse{}
	for i := range beds {
		bed := &beds[i]
		if _, ok := mapping[bed.Ward]; !ok {
			mapping[bed.Ward] = map[string][]dto.BedResponse{}
		}
		mapping[bed.Ward][bed.RoomNumber] = append(mapping[bed.Ward][bed.RoomNumber], *BedToResponse(bed))
	}
	return mapping
}

// AlternativesToResponses converts allocator alternatives to DTOs
func AlternativesToResponses(alternatives []allocator.Alternative) []dto.AlternativeResponse {
	responses := make([]dto.AlternativeResponse, len(alternatives))
	for i, alt := range alternatives {
		responses[i] = dto.AlternativeResponse{
			BedType:        string(alt.BedType),
			AvailableCount: alt.AvailableCount,
			Beds:           BedsToResponses(alt.Beds),
		}
	}
	return responses
}
