package logbook

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate
var once sync.Once

func validateStruct(v any) error {
	if v == nil {
		return fmt.Errorf("%s", errMsgNilConfig)
	}

	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%s %w", errMsgConfigInvalid, err)
	}

	return nil
}
