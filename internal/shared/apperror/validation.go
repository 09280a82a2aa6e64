package apperror

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FromValidation đổi lỗi ozzo-validation thành *Error KindInvalidRequest
// với map field → message. Lỗi không phải validation được trả lại nguyên vẹn.
func FromValidation(code string, err error) error {
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}

	var errs validation.Errors
	if errors.As(err, &errs) {
		fields := make(map[string]string, len(errs))
		for field, fieldErr := range errs {
			if fieldErr != nil {
				fields[field] = fieldErr.Error()
			}
		}
		return Validation(code, fields)
	}

	return InvalidRequest(code, err.Error())
}
