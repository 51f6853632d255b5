package api

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"TechAnalyst/internal/domain/models"
	xhttp "TechAnalyst/pkg/http"
)

var registerOnce sync.Once

// registerValidations installs the ohlc rule on bar inputs.
func registerValidations() {
	registerOnce.Do(func() {
		xhttp.RegisterStructValidation(validateOHLC, models.BarInput{})
	})
}

func validateOHLC(sl validator.StructLevel) {
	b, ok := sl.Current().Interface().(models.BarInput)
	if !ok {
		return
	}
	if b.High < b.Low {
		sl.ReportError(b.High, "high", "High", "ohlc", "")
		return
	}
	if b.Open < b.Low || b.Open > b.High {
		sl.ReportError(b.Open, "open", "Open", "ohlc", "")
	}
	if b.Close < b.Low || b.Close > b.High {
		sl.ReportError(b.Close, "close", "Close", "ohlc", "")
	}
}
