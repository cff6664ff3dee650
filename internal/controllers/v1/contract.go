package v1

import (
	"net/http"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterContractRoutes registers the routes for contracts with
// the RouterGroup that is passed.
func RegisterContractRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsContractList)
		r.GET("", GetContracts)
		r.POST("", CreateContracts)
	}

	// Contract with ID
	{
		r.OPTIONS("/:id", OptionsContractDetail)
		r.GET("/:id", GetContract)
		r.PATCH("/:id", UpdateContract)
		r.DELETE("/:id", DeleteContract)
		r.POST("/:id/refresh-status", RefreshContractStatus)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Contracts
// @Success		204
// @Router			/v1/contracts [options]
func OptionsContractList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Contracts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/contracts/{id} [options]
func OptionsContractDetail(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Contract{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create contract
// @Description	Creates a new contract with its installment schedule. The budget of the (sector, line item) pair is checked before the contract is committed.
// @Tags			Contracts
// @Produce		json
// @Success		201			{object}	ContractCreateResponse
// @Failure		400			{object}	ContractCreateResponse
// @Failure		404			{object}	ContractCreateResponse
// @Failure		500			{object}	ContractCreateResponse
// @Param			contracts	body		[]v1.ContractEditable	true	"Contracts"
// @Router			/v1/contracts [post]
func CreateContracts(c *gin.Context) {
	var contracts []ContractEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &contracts)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ContractCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ContractCreateResponse{}

	for _, editable := range contracts {
		contract := editable.model()

		err = models.CreateContract(models.DB, &contract, actorID(c))
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newContract(c, contract)
		r.Data = append(r.Data, ContractResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get contracts
// @Description	Returns a list of contracts
// @Tags			Contracts
// @Produce		json
// @Success		200	{object}	ContractListResponse
// @Failure		400	{object}	ContractListResponse
// @Failure		500	{object}	ContractListResponse
// @Router			/v1/contracts [get]
// @Param			sector		query	string	false	"Filter by sector ID"
// @Param			lineItem	query	string	false	"Filter by line item ID"
// @Param			vendor		query	string	false	"Filter by vendor ID"
// @Param			recipient	query	string	false	"Filter by recipient ID"
// @Param			status		query	string	false	"Filter by status"
// @Param			type		query	string	false	"Filter by type"
// @Param			search		query	string	false	"Search for this text in number and object"
// @Param			offset		query	uint	false	"The offset of the first contract returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of contracts to return. Defaults to 50."
func GetContracts(c *gin.Context) {
	var filter ContractQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("start_date DESC, number ASC").
		Where(&model, queryFields...)

	// Searching contracts matches the process number and the object
	if filter.Search != "" {
		q = q.Where(
			models.DB.Where("number LIKE ?", "%"+filter.Search+"%").
				Or("object LIKE ?", "%"+filter.Search+"%"),
		)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 contracts and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var contracts []models.Contract
	err = q.Find(&contracts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ContractListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Contract, 0, len(contracts))
	for _, contract := range contracts {
		data = append(data, newContract(c, contract))
	}

	c.JSON(http.StatusOK, ContractListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get contract
// @Description	Returns a specific contract, including values derived from its installments
// @Tags			Contracts
// @Produce		json
// @Success		200	{object}	ContractResponse
// @Failure		400	{object}	ContractResponse
// @Failure		404	{object}	ContractResponse
// @Failure		500	{object}	ContractResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/contracts/{id} [get]
func GetContract(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	var contract models.Contract
	err = models.DB.First(&contract, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	var paidCount int64
	err = models.DB.
		Model(&models.Installment{}).
		Where("contract_id = ? AND paid = ?", contract.ID, true).
		Count(&paidCount).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	data := newContract(c, contract)
	computed := newContractComputed(contract, paidCount)
	data.Computed = &computed

	c.JSON(http.StatusOK, ContractResponse{Data: &data})
}

// @Summary		Update contract
// @Description	Updates an existing contract. Only values to be updated need to be specified. A status history entry is recorded when the status changes.
// @Tags			Contracts
// @Accept			json
// @Produce		json
// @Success		200			{object}	ContractResponse
// @Failure		400			{object}	ContractResponse
// @Failure		404			{object}	ContractResponse
// @Failure		500			{object}	ContractResponse
// @Param			id			path		string				true	"ID formatted as string"
// @Param			contract	body		v1.ContractEditable	true	"Contract"
// @Router			/v1/contracts/{id} [patch]
func UpdateContract(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	var contract models.Contract
	err = models.DB.First(&contract, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ContractEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	var data ContractEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	// Apply only the fields that were part of the request body to the
	// loaded contract, then validate and persist the whole row
	previousStatus := contract.Status
	update := data.model()

	for _, field := range updateFields {
		switch field {
		case "Number":
			contract.Number = update.Number
		case "Object":
			contract.Object = update.Object
		case "Responsible":
			contract.Responsible = update.Responsible
		case "Type":
			contract.Type = update.Type
		case "Status":
			contract.Status = update.Status
		case "SectorID":
			contract.SectorID = update.SectorID
		case "LineItemID":
			contract.LineItemID = update.LineItemID
		case "VendorID":
			contract.VendorID = update.VendorID
		case "RecipientID":
			contract.RecipientID = update.RecipientID
		case "StartDate":
			contract.StartDate = update.StartDate
		case "EndDate":
			contract.EndDate = update.EndDate
		case "TotalValue":
			contract.TotalValue = update.TotalValue
		case "InstallmentCount":
			contract.InstallmentCount = update.InstallmentCount
		}
	}

	err = models.UpdateContract(models.DB, &contract, previousStatus, actorID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	apiResource := newContract(c, contract)
	c.JSON(http.StatusOK, ContractResponse{Data: &apiResource})
}

// @Summary		Delete contract
// @Description	Deletes a contract with its installments
// @Tags			Contracts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/contracts/{id} [delete]
func DeleteContract(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var contract models.Contract
	err = models.DB.First(&contract, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&contract).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Re-evaluate contract status
// @Description	Applies the automatic status rules to the contract and records a status history entry when the status changes
// @Tags			Contracts
// @Produce		json
// @Success		200	{object}	ContractResponse
// @Failure		400	{object}	ContractResponse
// @Failure		404	{object}	ContractResponse
// @Failure		500	{object}	ContractResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/contracts/{id}/refresh-status [post]
func RefreshContractStatus(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	var contract models.Contract
	err = models.DB.First(&contract, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	_, err = models.RefreshContractStatus(models.DB, &contract)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	data := newContract(c, contract)
	c.JSON(http.StatusOK, ContractResponse{Data: &data})
}
