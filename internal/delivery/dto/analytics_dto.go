package dto

type UtilizationStatsResponse struct {
	TotalBeds       int64   `json:"total_beds"`
	OccupiedBeds    int64   `json:"occupied_beds"`
	AvailableBeds   int64   `json:"available_beds"`
	MaintenanceBeds int64   `json:"maintenance_beds"`
	CleaningBeds    int64   `json:"cleaning_beds"`
	ReservedBeds    int64   `json:"reserved_beds"`
	UtilizationRate float64 `json:"utilization_rate"`
}

type DayPredictionResponse struct {
	Date                     string  `json:"date"`
	ExpectedDischarges       int64   `json:"expected_discharges"`
	PredictedAvailableBeds   int64   `json:"predicted_available_beds"`
	PredictedUtilizationRate float64 `json:"predicted_utilization_rate"`
}

type PredictionResponse struct {
	Ward        string                  `json:"ward,omitempty"`
	Days        int                     `json:"days"`
	Predictions []DayPredictionResponse `json:"predictions"`
}
