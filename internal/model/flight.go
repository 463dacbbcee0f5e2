package model

import "time"

// FlightImportData is the API-shaped representation of one spreadsheet row
// after field mapping and reference resolution.
type FlightImportData struct {
	AirlinesID        int    `json:"airlinesId"`
	AcTypeID          int    `json:"acTypeId"`
	AcReg             string `json:"acReg"`
	ArrivalFlightNo   string `json:"arrivalFlightNo"`
	DepartureFlightNo string `json:"departureFlightNo"`
	RouteFrom         string `json:"routeFrom"`
	RouteTo           string `json:"routeTo"`
	ArrivalStaDate    string `json:"arrivalStaDate"`
	DepartureStdDate  string `json:"departureStdDate"`
	EtaDate           string `json:"etaDate"`
	BayNo             string `json:"bayNo"`
	CsIDList          []int  `json:"csIdList"`
	MechIDList        []int  `json:"mechIdList"`
	CheckStatusID     int    `json:"checkStatusId"`
	Note              string `json:"note"`
}

// ValidateItem is one row of the batch-validate request. RowID is a
// globally unique 1-based sequence over all sheets of the session.
type ValidateItem struct {
	RowID int `json:"rowId"`
	FlightImportData
}

// InsertItem is one row of the batch-insert request. RowID here is a fresh
// 1-based index over only the uploaded subset.
type InsertItem struct {
	RowID    int    `json:"rowId"`
	UserName string `json:"userName"`
	FlightImportData
}

type ValidateResponse struct {
	ResponseData struct {
		FlagPass           bool                `json:"flagPass"`
		ValidateFilghtList []ValidateRowResult `json:"validateFilghtList"`
	} `json:"responseData"`
}

// ValidateRowResult carries the server verdict for one rowId. An empty
// StatusText means the row passed.
type ValidateRowResult struct {
	RowID      int    `json:"rowId"`
	StatusText string `json:"statusText"`
}

// Flight is a row of the shared flights table, written by the core system
// behind the insert endpoint and read here for the flight list.
type Flight struct {
	ID                int64     `json:"id" db:"id"`
	AirlinesID        int       `json:"airlinesId" db:"airlines_id"`
	AcTypeID          int       `json:"acTypeId" db:"ac_type_id"`
	AcReg             string    `json:"acReg" db:"ac_reg"`
	ArrivalFlightNo   string    `json:"arrivalFlightNo" db:"arrival_flight_no"`
	DepartureFlightNo string    `json:"departureFlightNo" db:"departure_flight_no"`
	RouteFrom         string    `json:"routeFrom" db:"route_from"`
	RouteTo           string    `json:"routeTo" db:"route_to"`
	ArrivalStaDate    string    `json:"arrivalStaDate" db:"arrival_sta_date"`
	DepartureStdDate  string    `json:"departureStdDate" db:"departure_std_date"`
	BayNo             string    `json:"bayNo" db:"bay_no"`
	CheckStatusID     int       `json:"checkStatusId" db:"check_status_id"`
	Note              string    `json:"note" db:"note"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}
