package db

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/triple-tgg/sams-sub001/internal/model"
)

type Repository interface {
	ListAirlineOptions(ctx context.Context) ([]model.Option, error)
	ListStationOptions(ctx context.Context) ([]model.Option, error)
	ListAircraftTypeOptions(ctx context.Context) ([]model.Option, error)
	ListStaffOptions(ctx context.Context) ([]model.Option, error)
	ListCheckStatusOptions(ctx context.Context) ([]model.Option, error)

	ListFlights(ctx context.Context, limit int) ([]model.Flight, error)

	CreateStaff(ctx context.Context, staff *model.Staff) error
	ListStaff(ctx context.Context) ([]model.Staff, error)

	CreateContract(ctx context.Context, contract *model.Contract) error
	ListContracts(ctx context.Context) ([]model.Contract, error)
	AddContractDocument(ctx context.Context, doc *model.ContractDocument) error

	CreateTHF(ctx context.Context, thf *model.THF) error
	ListTHFByFlight(ctx context.Context, flightID int64) ([]model.THF, error)
	AddTHFAttachment(ctx context.Context, att *model.THFAttachment) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) listOptions(ctx context.Context, query string) ([]model.Option, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []model.Option
	for rows.Next() {
		var opt model.Option
		if err := rows.Scan(&opt.ID, &opt.Value, &opt.Label); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

func (r *repository) ListAirlineOptions(ctx context.Context) ([]model.Option, error) {
	return r.listOptions(ctx, `SELECT id, iata_code, name FROM airlines WHERE is_active = 1 ORDER BY name`)
}

func (r *repository) ListStationOptions(ctx context.Context) ([]model.Option, error) {
	return r.listOptions(ctx, `SELECT id, iata_code, name FROM stations WHERE is_active = 1 ORDER BY iata_code`)
}

func (r *repository) ListAircraftTypeOptions(ctx context.Context) ([]model.Option, error) {
	return r.listOptions(ctx, `SELECT id, code, name FROM aircraft_types WHERE is_active = 1 ORDER BY code`)
}

func (r *repository) ListStaffOptions(ctx context.Context) ([]model.Option, error) {
	return r.listOptions(ctx, `SELECT id, code, name FROM staff WHERE is_active = 1 ORDER BY code`)
}

func (r *repository) ListCheckStatusOptions(ctx context.Context) ([]model.Option, error) {
	return r.listOptions(ctx, `SELECT id, code, name FROM check_statuses ORDER BY id`)
}

func (r *repository) ListFlights(ctx context.Context, limit int) ([]model.Flight, error) {
	query := `SELECT id, airlines_id, ac_type_id, ac_reg, arrival_flight_no, departure_flight_no,
			  route_from, route_to, arrival_sta_date, departure_std_date, bay_no,
			  check_status_id, note, created_at
			  FROM flights ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flights []model.Flight
	for rows.Next() {
		var f model.Flight
		err := rows.Scan(&f.ID, &f.AirlinesID, &f.AcTypeID, &f.AcReg, &f.ArrivalFlightNo,
			&f.DepartureFlightNo, &f.RouteFrom, &f.RouteTo, &f.ArrivalStaDate,
			&f.DepartureStdDate, &f.BayNo, &f.CheckStatusID, &f.Note, &f.CreatedAt)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *repository) CreateStaff(ctx context.Context, staff *model.Staff) error {
	query := `INSERT INTO staff (code, name, type, is_active) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, staff.Code, staff.Name, staff.Type, staff.IsActive)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	staff.ID = int(id)
	return nil
}

func (r *repository) ListStaff(ctx context.Context) ([]model.Staff, error) {
	query := `SELECT id, code, name, type, is_active, created_at FROM staff ORDER BY code`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []model.Staff
	for rows.Next() {
		var s model.Staff
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Type, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

func (r *repository) CreateContract(ctx context.Context, contract *model.Contract) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO contracts (airlines_id, title, valid_from, valid_to) VALUES (?, ?, ?, ?)`,
		contract.AirlinesID, contract.Title, contract.ValidFrom, contract.ValidTo)
	if err != nil {
		return err
	}
	contractID, err := result.LastInsertId()
	if err != nil {
		return err
	}
	contract.ID = contractID

	for i := range contract.Rates {
		rate := &contract.Rates[i]
		rate.ContractID = contractID
		_, err := tx.ExecContext(ctx,
			`INSERT INTO contract_rates (contract_id, service_type, ac_type_id, currency, amount)
			 VALUES (?, ?, ?, ?, ?)`,
			contractID, rate.ServiceType, rate.AcTypeID, rate.Currency, rate.Amount)
		if err != nil {
			return err
		}
	}

	for i := range contract.Contacts {
		contact := &contract.Contacts[i]
		contact.ContractID = contractID
		_, err := tx.ExecContext(ctx,
			`INSERT INTO contract_contacts (contract_id, name, role, email, phone)
			 VALUES (?, ?, ?, ?, ?)`,
			contractID, contact.Name, contact.Role, contact.Email, contact.Phone)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) ListContracts(ctx context.Context) ([]model.Contract, error) {
	query := `SELECT id, airlines_id, title, valid_from, valid_to, created_at
			  FROM contracts ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []model.Contract
	for rows.Next() {
		var c model.Contract
		if err := rows.Scan(&c.ID, &c.AirlinesID, &c.Title, &c.ValidFrom, &c.ValidTo, &c.CreatedAt); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range contracts {
		c := &contracts[i]
		if c.Rates, err = r.listContractRates(ctx, c.ID); err != nil {
			return nil, err
		}
		if c.Contacts, err = r.listContractContacts(ctx, c.ID); err != nil {
			return nil, err
		}
		if c.Documents, err = r.listContractDocuments(ctx, c.ID); err != nil {
			return nil, err
		}
	}
	return contracts, nil
}

func (r *repository) listContractRates(ctx context.Context, contractID int64) ([]model.ContractRate, error) {
	query := `SELECT id, contract_id, service_type, ac_type_id, currency, amount
			  FROM contract_rates WHERE contract_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []model.ContractRate
	for rows.Next() {
		var rate model.ContractRate
		if err := rows.Scan(&rate.ID, &rate.ContractID, &rate.ServiceType, &rate.AcTypeID, &rate.Currency, &rate.Amount); err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, rows.Err()
}

func (r *repository) listContractContacts(ctx context.Context, contractID int64) ([]model.ContractContact, error) {
	query := `SELECT id, contract_id, name, role, email, phone
			  FROM contract_contacts WHERE contract_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []model.ContractContact
	for rows.Next() {
		var contact model.ContractContact
		if err := rows.Scan(&contact.ID, &contact.ContractID, &contact.Name, &contact.Role, &contact.Email, &contact.Phone); err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

func (r *repository) listContractDocuments(ctx context.Context, contractID int64) ([]model.ContractDocument, error) {
	query := `SELECT id, contract_id, file_name, s3_key, uploaded_at
			  FROM contract_documents WHERE contract_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []model.ContractDocument
	for rows.Next() {
		var doc model.ContractDocument
		if err := rows.Scan(&doc.ID, &doc.ContractID, &doc.FileName, &doc.S3Key, &doc.UploadedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *repository) AddContractDocument(ctx context.Context, doc *model.ContractDocument) error {
	query := `INSERT INTO contract_documents (contract_id, file_name, s3_key) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, doc.ContractID, doc.FileName, doc.S3Key)
	if err != nil {
		return err
	}
	doc.ID, err = result.LastInsertId()
	return err
}

func (r *repository) CreateTHF(ctx context.Context, thf *model.THF) error {
	equipment, err := json.Marshal(thf.Equipment)
	if err != nil {
		return err
	}
	parts, err := json.Marshal(thf.Parts)
	if err != nil {
		return err
	}
	services, err := json.Marshal(thf.Services)
	if err != nil {
		return err
	}
	fluids, err := json.Marshal(thf.Fluids)
	if err != nil {
		return err
	}

	query := `INSERT INTO thf (flight_id, equipment, parts, services, fluids, created_by)
			  VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, thf.FlightID, equipment, parts, services, fluids, thf.CreatedBy)
	if err != nil {
		return err
	}
	thf.ID, err = result.LastInsertId()
	return err
}

func (r *repository) ListTHFByFlight(ctx context.Context, flightID int64) ([]model.THF, error) {
	query := `SELECT id, flight_id, equipment, parts, services, fluids, created_by, created_at
			  FROM thf WHERE flight_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forms []model.THF
	for rows.Next() {
		var thf model.THF
		var equipment, parts, services, fluids []byte
		err := rows.Scan(&thf.ID, &thf.FlightID, &equipment, &parts, &services, &fluids,
			&thf.CreatedBy, &thf.CreatedAt)
		if err != nil {
			return nil, err
		}
		if len(equipment) > 0 {
			if err := json.Unmarshal(equipment, &thf.Equipment); err != nil {
				return nil, err
			}
		}
		if len(parts) > 0 {
			if err := json.Unmarshal(parts, &thf.Parts); err != nil {
				return nil, err
			}
		}
		if len(services) > 0 {
			if err := json.Unmarshal(services, &thf.Services); err != nil {
				return nil, err
			}
		}
		if len(fluids) > 0 {
			if err := json.Unmarshal(fluids, &thf.Fluids); err != nil {
				return nil, err
			}
		}
		forms = append(forms, thf)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range forms {
		atts, err := r.listTHFAttachments(ctx, forms[i].ID)
		if err != nil {
			return nil, err
		}
		forms[i].Attachments = atts
	}
	return forms, nil
}

func (r *repository) listTHFAttachments(ctx context.Context, thfID int64) ([]model.THFAttachment, error) {
	query := `SELECT id, thf_id, file_name, s3_key, uploaded_at
			  FROM thf_attachments WHERE thf_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, thfID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var atts []model.THFAttachment
	for rows.Next() {
		var att model.THFAttachment
		if err := rows.Scan(&att.ID, &att.THFID, &att.FileName, &att.S3Key, &att.UploadedAt); err != nil {
			return nil, err
		}
		atts = append(atts, att)
	}
	return atts, rows.Err()
}

func (r *repository) AddTHFAttachment(ctx context.Context, att *model.THFAttachment) error {
	query := `INSERT INTO thf_attachments (thf_id, file_name, s3_key) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, att.THFID, att.FileName, att.S3Key)
	if err != nil {
		return err
	}
	att.ID, err = result.LastInsertId()
	return err
}
