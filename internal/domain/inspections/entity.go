package inspections

import (
	"fmt"
	"time"
)

// Prediction enum
type Prediction string

const (
	PredictionOK Prediction = "OK"
	PredictionKO Prediction = "KO"
)

// Timestamp wraps time.Time so it marshals in the "2006-01-02 15:04:05"
// format the dashboard consumers expect.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.Format("2006-01-02 15:04:05"))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Inspection is one quality-control record produced by the upstream
// ingestion pipeline. Records are immutable and read-only here.
type Inspection struct {
	InspectionID    string     `json:"inspection_id"`
	FactoryID       string     `json:"factory_id"`
	CameraID        string     `json:"camera_id"`
	Timestamp       Timestamp  `json:"timestamp"`
	ImagePath       string     `json:"image_path"`
	Prediction      Prediction `json:"prediction"`
	ConfidenceScore float64    `json:"confidence_score"`
	DefectType      *string    `json:"defect_type"`
	InferenceTimeMS int64      `json:"inference_time_ms"`
	ModelVersion    string     `json:"model_version"`
	Date            string     `json:"date"`
}
