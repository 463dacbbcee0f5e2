package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/triple-tgg/sams-sub001/internal/cache"
	"github.com/triple-tgg/sams-sub001/internal/model"
	"github.com/triple-tgg/sams-sub001/internal/storage"
)

const flightListLimit = 500

func (h *Handler) GetMasterData(c *gin.Context) {
	options, err := h.master.Options(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load master data")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	switch c.Param("list") {
	case "airlines":
		c.JSON(http.StatusOK, options.Airlines)
	case "stations":
		c.JSON(http.StatusOK, options.Stations)
	case "aircraft-types":
		c.JSON(http.StatusOK, options.AircraftTypes)
	case "staff":
		c.JSON(http.StatusOK, options.Staff)
	case "check-status":
		c.JSON(http.StatusOK, options.CheckStatuses)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown master data list"})
	}
}

// ListFlights serves the flight list from the Redis cache; a successful
// import deletes the cached key so the next read sees the new rows.
func (h *Handler) ListFlights(c *gin.Context) {
	ctx := c.Request.Context()

	var flights []model.Flight
	if h.cache != nil {
		if hit, err := h.cache.GetJSON(ctx, cache.FlightListKey, &flights); err == nil && hit {
			c.JSON(http.StatusOK, flights)
			return
		}
	}

	flights, err := h.repo.ListFlights(ctx, flightListLimit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list flights")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if h.cache != nil {
		if err := h.cache.SetJSON(ctx, cache.FlightListKey, flights, h.cfg.MasterData.CacheTTL); err != nil {
			h.log.Warn().Err(err).Msg("Failed to cache flight list")
		}
	}
	c.JSON(http.StatusOK, flights)
}

func (h *Handler) CreateStaff(c *gin.Context) {
	var staff model.Staff
	if err := c.ShouldBindJSON(&staff); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if staff.Code == "" || staff.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code and name are required"})
		return
	}

	if err := h.repo.CreateStaff(c.Request.Context(), &staff); err != nil {
		h.log.Error().Err(err).Msg("Failed to create staff")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, staff)
}

func (h *Handler) ListStaff(c *gin.Context) {
	staff, err := h.repo.ListStaff(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list staff")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *Handler) CreateContract(c *gin.Context) {
	var contract model.Contract
	if err := c.ShouldBindJSON(&contract); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if contract.Title == "" || contract.AirlinesID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and airlinesId are required"})
		return
	}

	if err := h.repo.CreateContract(c.Request.Context(), &contract); err != nil {
		h.log.Error().Err(err).Msg("Failed to create contract")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *Handler) ListContracts(c *gin.Context) {
	contracts, err := h.repo.ListContracts(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list contracts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (h *Handler) UploadContractDocument(c *gin.Context) {
	contractID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contract ID"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}
	defer file.Close()

	key := storage.DocumentKey("contracts", header.Filename)
	if err := h.store.Upload(c.Request.Context(), key, file); err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("Failed to store document")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store document"})
		return
	}

	doc := model.ContractDocument{
		ContractID: contractID,
		FileName:   header.Filename,
		S3Key:      key,
	}
	if err := h.repo.AddContractDocument(c.Request.Context(), &doc); err != nil {
		h.log.Error().Err(err).Msg("Failed to record document")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h *Handler) CreateTHF(c *gin.Context) {
	var thf model.THF
	if err := c.ShouldBindJSON(&thf); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if thf.FlightID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "flightId is required"})
		return
	}

	if err := h.repo.CreateTHF(c.Request.Context(), &thf); err != nil {
		h.log.Error().Err(err).Msg("Failed to create THF")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, thf)
}

func (h *Handler) UploadTHFAttachment(c *gin.Context) {
	thfID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid THF ID"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}
	defer file.Close()

	key := storage.DocumentKey("thf", header.Filename)
	if err := h.store.Upload(c.Request.Context(), key, file); err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("Failed to store attachment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store attachment"})
		return
	}

	att := model.THFAttachment{
		THFID:    thfID,
		FileName: header.Filename,
		S3Key:    key,
	}
	if err := h.repo.AddTHFAttachment(c.Request.Context(), &att); err != nil {
		h.log.Error().Err(err).Msg("Failed to record attachment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, att)
}

func (h *Handler) ListTHF(c *gin.Context) {
	flightID, err := strconv.ParseInt(c.Query("flightId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "flightId query parameter is required"})
		return
	}

	forms, err := h.repo.ListTHFByFlight(c.Request.Context(), flightID)
	if err != nil {
		h.log.Error().Err(err).Int64("flight_id", flightID).Msg("Failed to list THF")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, forms)
}
