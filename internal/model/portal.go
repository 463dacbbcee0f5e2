package model

import "time"

type StaffType string

const (
	StaffTypeCS   StaffType = "CS"
	StaffTypeMech StaffType = "MECH"
)

// Staff is one line-maintenance staff member. Code is what appears in
// spreadsheet staff columns and feeds the staff option list.
type Staff struct {
	ID        int       `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Name      string    `json:"name" db:"name"`
	Type      StaffType `json:"type" db:"type"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ContractRate is one pricing line of a contract, e.g. a per-check or
// per-hour rate for an aircraft type.
type ContractRate struct {
	ID          int64   `json:"id" db:"id"`
	ContractID  int64   `json:"contractId" db:"contract_id"`
	ServiceType string  `json:"serviceType" db:"service_type"`
	AcTypeID    int     `json:"acTypeId" db:"ac_type_id"`
	Currency    string  `json:"currency" db:"currency"`
	Amount      float64 `json:"amount" db:"amount"`
}

type ContractContact struct {
	ID         int64  `json:"id" db:"id"`
	ContractID int64  `json:"contractId" db:"contract_id"`
	Name       string `json:"name" db:"name"`
	Role       string `json:"role" db:"role"`
	Email      string `json:"email" db:"email"`
	Phone      string `json:"phone" db:"phone"`
}

// ContractDocument is attachment metadata; the bytes live in object storage
// under S3Key.
type ContractDocument struct {
	ID         int64     `json:"id" db:"id"`
	ContractID int64     `json:"contractId" db:"contract_id"`
	FileName   string    `json:"fileName" db:"file_name"`
	S3Key      string    `json:"s3Key" db:"s3_key"`
	UploadedAt time.Time `json:"uploadedAt" db:"uploaded_at"`
}

type Contract struct {
	ID         int64              `json:"id" db:"id"`
	AirlinesID int                `json:"airlinesId" db:"airlines_id"`
	Title      string             `json:"title" db:"title"`
	ValidFrom  string             `json:"validFrom" db:"valid_from"`
	ValidTo    string             `json:"validTo" db:"valid_to"`
	Rates      []ContractRate     `json:"rates"`
	Contacts   []ContractContact  `json:"contacts"`
	Documents  []ContractDocument `json:"documents"`
	CreatedAt  time.Time          `json:"createdAt" db:"created_at"`
}

// THF is a Technical Handling Form, the per-flight maintenance record.
// The wizard sections (equipment, parts/tools, services, fluids) are
// free-form JSON documents stored as-is.
type THF struct {
	ID          int64            `json:"id" db:"id"`
	FlightID    int64            `json:"flightId" db:"flight_id"`
	Equipment   map[string]any   `json:"equipment"`
	Parts       []map[string]any `json:"parts"`
	Services    []map[string]any `json:"services"`
	Fluids      map[string]any   `json:"fluids"`
	Attachments []THFAttachment  `json:"attachments"`
	CreatedBy   string           `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
}

type THFAttachment struct {
	ID         int64     `json:"id" db:"id"`
	THFID      int64     `json:"thfId" db:"thf_id"`
	FileName   string    `json:"fileName" db:"file_name"`
	S3Key      string    `json:"s3Key" db:"s3_key"`
	UploadedAt time.Time `json:"uploadedAt" db:"uploaded_at"`
}
