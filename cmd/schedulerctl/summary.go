package main

import (
	"encoding/json"
	"fmt"
	"os"

	"appointment-scheduler/internal/delivery/dto"
)

// intakeSummary is the subset of the intake pipeline's final summary the
// booker reads.
type intakeSummary struct {
	PatientData struct {
		Email string `json:"email"`
	} `json:"patient_data"`
	RecommendedSpecialist []string `json:"recommended_specialist"`
}

func loadSummary(path string) (*dto.AutoBookRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read intake summary: %w", err)
	}

	var summary intakeSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("parse intake summary %s: %w", path, err)
	}

	return &dto.AutoBookRequest{
		PatientEmail:           summary.PatientData.Email,
		RecommendedSpecialists: summary.RecommendedSpecialist,
	}, nil
}
