package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ct-price-predictor/internal/adapters/primary/http/dto"
	"ct-price-predictor/internal/core/domain"
)

type formPage struct {
	Options dto.OptionsResponse
	Values  formValues
	Result  *formResult
}

type formValues struct {
	AssessedValue string
	SaleDate      string
	PropertyType  string
	Town          string
	Model         string
}

type formResult struct {
	OK      bool
	Model   string
	Price   string
	Message string
}

func defaultFormValues() formValues {
	return formValues{
		AssessedValue: strconv.Itoa(domain.MinAssessedValue),
		SaleDate:      domain.DefaultSaleDate,
		PropertyType:  domain.PropertyTypes[0],
		Town:          domain.Towns[0],
		Model:         string(domain.ModelChoices[0]),
	}
}

func (h *Handler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", formPage{
		Options: dto.NewOptionsResponse(),
		Values:  defaultFormValues(),
	})
}

// SubmitForm runs one prediction and re-renders the form with either the
// price or the error. The page itself always renders with 200 so the form
// stays usable.
func (h *Handler) SubmitForm(c *gin.Context) {
	page := formPage{
		Options: dto.NewOptionsResponse(),
		Values: formValues{
			AssessedValue: c.PostForm("assessed_value"),
			SaleDate:      c.PostForm("sale_date"),
			PropertyType:  c.PostForm("property_type"),
			Town:          c.PostForm("town"),
			Model:         c.PostForm("model"),
		},
	}

	var req dto.PredictionRequest
	if err := c.ShouldBind(&req); err != nil {
		page.Result = &formResult{Message: "Please check the form: " + err.Error()}
		c.HTML(http.StatusOK, "index.html", page)
		return
	}

	res := h.predictionSvc.Evaluate(c.Request.Context(), req.ToDomain())
	if res.OK() {
		page.Result = &formResult{OK: true, Model: string(res.Model), Price: dto.FormatPrice(res.Price)}
	} else {
		page.Result = &formResult{Model: string(res.Model), Message: res.Err.Error()}
	}
	c.HTML(http.StatusOK, "index.html", page)
}
