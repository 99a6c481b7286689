package http

import (
	"time"

	"github.com/salesmlstack/revenue-predictor/internal/errors"
	"github.com/salesmlstack/revenue-predictor/internal/feature"
)

const orderDateLayout = "2006-01-02"

// PredictionInput is one order line as submitted by the caller. Field names
// mirror the training tables, so payloads line up one-to-one with the raw
// records the pipeline was fit on.
type PredictionInput struct {
	PersonType        string  `json:"PersonType" binding:"required,oneof=SC IN SP EM VC GC"`
	OrderQty          int     `json:"OrderQty" binding:"required,gte=1,lte=1000"`
	Name              string  `json:"Name" binding:"required"`
	ProductLine       *string `json:"ProductLine" binding:"omitempty,oneof=M R T S"`
	NameTerritory     string  `json:"Name_territory" binding:"required"`
	CountryRegionCode string  `json:"CountryRegionCode" binding:"required"`
	Group             string  `json:"Group" binding:"required"`
	OrderDate         string  `json:"OrderDate" binding:"required,datetime=2006-01-02"`
}

// ToRecord converts the validated payload into the typed record the feature
// transform consumes.
func (in *PredictionInput) ToRecord() (feature.RawRecord, error) {
	orderDate, err := time.Parse(orderDateLayout, in.OrderDate)
	if err != nil {
		return feature.RawRecord{}, &errors.ValidationError{
			Field:    feature.FieldOrderDate,
			ErrorMsg: "must be a calendar date in YYYY-MM-DD form",
		}
	}
	return feature.RawRecord{
		PersonType:  in.PersonType,
		OrderQty:    in.OrderQty,
		ProductName: in.Name,
		ProductLine: in.ProductLine,
		Territory:   in.NameTerritory,
		CountryCode: in.CountryRegionCode,
		Group:       in.Group,
		OrderDate:   &orderDate,
	}, nil
}

// PredictionOutput echoes the input next to the prediction for traceability.
type PredictionOutput struct {
	Success    bool            `json:"success"`
	Prediction float64         `json:"prediction"`
	InputData  PredictionInput `json:"input_data"`
	Timestamp  string          `json:"timestamp"`
	ModelName  string          `json:"model_name"`
}

type BatchPredictionInput struct {
	Data []PredictionInput `json:"data" binding:"required,min=1,max=100,dive"`
}

type BatchPredictionItem struct {
	Index      int             `json:"index"`
	Prediction float64         `json:"prediction"`
	InputData  PredictionInput `json:"input_data"`
}

type BatchPredictionOutput struct {
	Success      bool                  `json:"success"`
	TotalRecords int                   `json:"total_records"`
	Predictions  []BatchPredictionItem `json:"predictions"`
	Timestamp    string                `json:"timestamp"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	ModelName   string `json:"model_name,omitempty"`
	Timestamp   string `json:"timestamp"`
}
