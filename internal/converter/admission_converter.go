package converter

import (
	"bed-admission-service/internal/delivery/dto"
	"bed-admission-service/internal/domain/entity"
)

// AdmissionToResponse converts an Admission entity to AdmissionResponse DTO
func AdmissionToResponse(admission *entity.Admission) *dto.AdmissionResponse {
	if admission == nil {
		return nil
	}

	specialRequirements := []string(admission.SpecialRequirements)
	if specialRequirements == nil {
		specialRequirements = []string{}
	}

	transfers := make([]dto.TransferResponse, len(admission.TransferHistory))
	for i, t := range admission.TransferHistory {
		transfers[i] = dto.TransferResponse{
			FromBedID:    t.FromBedID,
			ToBedID:      t.ToBedID,
			TransferDate: t.TransferDate,
			Reason:       t.Reason,
			AuthorizedBy: t.AuthorizedBy,
		}
	}

	response := &dto.AdmissionResponse{
		ID:                    admission.ID,
		PatientID:             admission.PatientID,
		PatientName:           admission.PatientName,
		PatientCategory:       string(admission.PatientCategory),
		Priority:              string(admission.Priority),
		BedID:                 admission.BedID,
		Ward:                  admission.Ward,
		RoomNumber:            admission.RoomNumber,
		BedNumber:             admission.BedNumber,
		AdmissionDate:         admission.AdmissionDate,
		ExpectedDischargeDate: admission.ExpectedDischargeDate,
		ActualDischargeDate:   admission.ActualDischargeDate,
		Status:                string(admission.Status),
		WorkflowStatus:        string(admission.WorkflowStatus),
		AdmissionReason:       admission.AdmissionReason,
		Diagnosis:             admission.Diagnosis,
		AttendingPhysician:    admission.AttendingPhysician,
		SpecialRequirements:   specialRequirements,
		InsuranceInfo: dto.InsuranceInfoResponse{
			Provider:     admission.InsuranceInfo.Provider,
			PolicyNumber: admission.InsuranceInfo.PolicyNumber,
			CoverageType: admission.InsuranceInfo.CoverageType,
		},
		EmergencyContact: dto.EmergencyContactResponse{
			Name:         admission.EmergencyContact.Name,
			Relationship: admission.EmergencyContact.Relationship,
			Phone:        admission.EmergencyContact.Phone,
		},
		Notes:           admission.Notes,
		TransferHistory: transfers,
		CreatedAt:       admission.CreatedAt,
		UpdatedAt:       admission.UpdatedAt,
	}

	// Discharge info only exists once discharged
	if admission.IsDischarged() {
		response.DischargeInfo = &dto.DischargeInfoResponse{
			DischargeType:         string(*admission.DischargeInfo.Type),
			DischargeInstructions: admission.DischargeInfo.Instructions,
			FollowUpRequired:      admission.DischargeInfo.FollowUpRequired,
			FollowUpDate:          admission.DischargeInfo.FollowUpDate,
		}
	}

	return response
}

// AdmissionsToResponses converts a slice of Admission entities to slice of AdmissionResponse DTOs
func AdmissionsToResponses(admissions []entity.Admission) []dto.AdmissionResponse {
	responses := make([]dto.AdmissionResponse, len(admissions))
	for i := range admissions {
		responses[i] = *AdmissionToResponse(&admissions[i])
	}
	return responses
}

// AdmissionToExisting converts an Admission to the conflict payload of a duplicate admission attempt
func AdmissionToExisting(admission *entity.Admission) *dto.ExistingAdmissionResponse {
	if admission == nil {
		return nil
	}
	return &dto.ExistingAdmissionResponse{
		AdmissionID: admission.ID,
		BedID:       admission.BedID,
		Ward:        admission.Ward,
		RoomNumber:  admission.RoomNumber,
		BedNumber:   admission.BedNumber,
	}
}
