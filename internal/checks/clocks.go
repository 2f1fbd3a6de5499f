package checks

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stm32-platform/ioc-check/internal/rulebook"
)

// clockConfig maps the RCC frequency keys onto integers for range
// validation. The validate tags carry the same bounds as the rulebook
// clock constants.
type clockConfig struct {
	APB1 int `ioc:"RCC.APB1Freq_Value" validate:"min=42000000,max=50000000"`
	APB2 int `ioc:"RCC.APB2Freq_Value" validate:"min=80000000,max=100000000"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their .ioc key instead of the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("ioc"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// checkClocks validates the APB1/APB2 bus frequencies. A value that fails
// to parse as an integer records a single error and aborts only this
// check; the remaining checks still run.
func (c *checker) checkClocks() {
	s := c.rep.AddSection("Clock Configuration")

	apb1, err1 := strconv.Atoi(c.cfg.GetOr(rulebook.KeyAPB1Freq, "0"))
	apb2, err2 := strconv.Atoi(c.cfg.GetOr(rulebook.KeyAPB2Freq, "0"))
	if err1 != nil || err2 != nil {
		c.rep.Errorf("Failed to parse clock frequencies from IOC file")
		return
	}

	outOfRange := make(map[string]bool)
	if err := validate.Struct(clockConfig{APB1: apb1, APB2: apb2}); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				outOfRange[fe.Field()] = true
			}
		}
	}

	// APB1 feeds the CAN bit timing, so a violation is an error; APB2 is
	// only a recommendation.
	if outOfRange[rulebook.KeyAPB1Freq] {
		c.rep.Errorf("APB1 frequency out of range: %.1f MHz (expected %.0f-%.0f MHz)",
			mhz(apb1), mhz(rulebook.APB1FreqMin), mhz(rulebook.APB1FreqMax))
	} else {
		s.Confirmf("APB1 frequency: %.1f MHz", mhz(apb1))
	}

	if outOfRange[rulebook.KeyAPB2Freq] {
		c.rep.Warnf("APB2 frequency out of optimal range: %.1f MHz (recommended %.0f-%.0f MHz)",
			mhz(apb2), mhz(rulebook.APB2FreqMin), mhz(rulebook.APB2FreqMax))
	} else {
		s.Confirmf("APB2 frequency: %.1f MHz", mhz(apb2))
	}
}

func mhz(hz int) float64 {
	return float64(hz) / 1e6
}
