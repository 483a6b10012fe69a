package handler

import (
	"encoding/json"
	"errors"
	"io"
	"sync"

	"leave-api/internal/apperror"
	"leave-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules to gin's validator
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("leavedate", validLeaveDate)
	})
}

// validLeaveDate accepts YYYY-MM-DD or RFC3339; empty values are left to "required"
func validLeaveDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := service.ParseLeaveDate(value)
	return err == nil
}

// bindJSON decodes the body into req and turns binding failures into
// validation errors. A failed "required" rule reports missingMsg.
func bindJSON(c *gin.Context, req any, missingMsg string) error {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return apperror.Validation(missingMsg)
			}
		}
		fe := verrs[0]
		if fe.Tag() == "leavedate" {
			return apperror.Validationf("Invalid %s %q, expected YYYY-MM-DD", fe.Field(), fe.Value())
		}
		return apperror.Validationf("Invalid value for %s", fe.Field())
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperror.Validationf("Invalid value for %s", typeErr.Field)
	}
	if errors.Is(err, io.EOF) {
		return apperror.Validation(missingMsg)
	}
	return apperror.Validation("Invalid request payload")
}
